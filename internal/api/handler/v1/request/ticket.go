package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const maxTicketsPerPurchase = 10

type IssueTicketRequest struct {
	EventID   uint    `json:"event_id"`
	PassName  *string `json:"pass_name,omitempty"`
	Quantity  int     `json:"quantity"`
	PaymentID string  `json:"payment_id"`
}

func (req *IssueTicketRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.PassName, validation.NilOrNotEmpty),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1), validation.Max(maxTicketsPerPurchase)),
		validation.Field(&req.PaymentID, validation.Required, validation.Length(1, 255)),
	)
}
