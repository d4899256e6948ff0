package domain

import (
	"encoding/json"
	"time"
)

type TicketStatus string

const (
	TicketActive    TicketStatus = "active"
	TicketScanned   TicketStatus = "scanned"
	TicketCancelled TicketStatus = "cancelled"
)

type Ticket struct {
	ID          uint         `json:"id"`
	TicketID    string       `json:"ticket_id"`
	UserID      uint         `json:"user_id"`
	EventID     uint         `json:"event_id"`
	PassName    *string      `json:"pass_name,omitempty"` // nil means general admission
	Quantity    int          `json:"quantity"`
	UnitPrice   float64      `json:"unit_price"`
	TotalAmount float64      `json:"total_amount"`
	PaymentID   string       `json:"payment_id"`
	QRCode      string       `json:"qr_code"` // base64 PNG of the canonical payload
	Status      TicketStatus `json:"status"`
	ScannedAt   *time.Time   `json:"scanned_at,omitempty"`
	ScannedBy   *string      `json:"scanned_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// TicketView is a ticket denormalized with the event and owner details the
// clients render. Produced by the lookup layer; never written back.
type TicketView struct {
	Ticket
	EventName     string    `json:"event_name"`
	EventDate     time.Time `json:"event_date"`
	EventTime     string    `json:"event_time"`
	EventLocation string    `json:"event_location"`
	EventImage    string    `json:"event_image"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
}

// GeneralAdmission is the pass label used in the QR payload when no tier was
// selected. Presentation only; the stored ticket keeps PassName nil.
const GeneralAdmission = "General"

// TicketPayload is the canonical set of fields encoded into the QR image.
// It is self-describing for offline verification; the persisted Ticket
// remains the system of record.
type TicketPayload struct {
	TicketID     string  `json:"ticketId"`
	UserID       uint    `json:"userId"`
	UserName     string  `json:"userName"`
	UserEmail    string  `json:"userEmail"`
	EventID      uint    `json:"eventId"`
	EventName    string  `json:"eventName"`
	PassName     string  `json:"passName"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalAmount  float64 `json:"totalAmount"`
	PurchaseDate string  `json:"purchaseDate"`
}

// Serialize renders the payload in its canonical JSON form.
func (p TicketPayload) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
