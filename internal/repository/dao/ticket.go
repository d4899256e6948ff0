package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTicketNotFound           = errors.New("ticket not found")
	ErrInsufficientAvailability = errors.New("insufficient availability")
	ErrDuplicatePayment         = errors.New("payment reference already consumed")
	ErrTicketIDTaken            = errors.New("ticket id already taken")
	ErrTicketNotActive          = errors.New("ticket is not active")
	ErrPoolOverflow             = errors.New("inventory release exceeds pool capacity")
)

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	TicketID string `gorm:"not null;uniqueIndex:idx_tickets_ticket_id"`

	UserID  uint `gorm:"not null;index"`
	EventID uint `gorm:"not null;index"`

	PassName *string // nil means the general pool was reserved

	Quantity    int     `gorm:"not null"`
	UnitPrice   float64 `gorm:"not null"`
	TotalAmount float64 `gorm:"not null"`

	PaymentID string `gorm:"not null;uniqueIndex:idx_tickets_payment_id"`

	QRCode string `gorm:"not null;type:text"`

	Status    string `gorm:"not null;default:'active'"`
	ScannedAt *time.Time
	ScannedBy *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reservation names the pool an issuance decrements: the event's general
// availability when PassName is nil, otherwise the tier's own pool.
type Reservation struct {
	EventID  uint
	PassName *string
	Quantity int
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// InsertWithReservation decrements the reserved pool and inserts the ticket
// in one transaction. The decrement is a single conditional UPDATE, so
// concurrent issuances against the same pool can never oversell regardless of
// how many server instances run; when the guard fails the whole operation
// reports ErrInsufficientAvailability without touching any row.
func (d *TicketDAO) InsertWithReservation(ctx context.Context, ticket Ticket, res Reservation) (Ticket, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := decrementPool(tx, res); err != nil {
			return err
		}

		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case "idx_tickets_payment_id":
				return Ticket{}, ErrDuplicatePayment
			case "idx_tickets_ticket_id":
				return Ticket{}, ErrTicketIDTaken
			}
		}

		return Ticket{}, err
	}

	return ticket, nil
}

func decrementPool(tx *gorm.DB, res Reservation) error {
	var result *gorm.DB
	if res.PassName != nil {
		result = tx.Model(&EventPass{}).
			Where("event_id = ? AND name = ? AND available >= ?", res.EventID, *res.PassName, res.Quantity).
			UpdateColumn("available", gorm.Expr("available - ?", res.Quantity))
	} else {
		result = tx.Model(&Event{}).
			Where("id = ? AND availability >= ?", res.EventID, res.Quantity).
			UpdateColumn("availability", gorm.Expr("availability - ?", res.Quantity))
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientAvailability
	}

	return nil
}

// incrementPool is the release counterpart of decrementPool, capped at the
// pool's original size so a stray double-release can never inflate inventory.
func incrementPool(tx *gorm.DB, res Reservation) error {
	var result *gorm.DB
	if res.PassName != nil {
		result = tx.Model(&EventPass{}).
			Where("event_id = ? AND name = ? AND available + ? <= initial_allocation", res.EventID, *res.PassName, res.Quantity).
			UpdateColumn("available", gorm.Expr("available + ?", res.Quantity))
	} else {
		result = tx.Model(&Event{}).
			Where("id = ? AND availability + ? <= max_capacity", res.EventID, res.Quantity).
			UpdateColumn("availability", gorm.Expr("availability + ?", res.Quantity))
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPoolOverflow
	}

	return nil
}

func (d *TicketDAO) FindByTicketID(ctx context.Context, ticketID string) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, "ticket_id = ?", ticketID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

// FindOwned folds the ownership check into the query itself. A ticket owned
// by someone else is indistinguishable from a missing one, so ticket ids
// cannot be enumerated across users.
func (d *TicketDAO) FindOwned(ctx context.Context, userID uint, ticketID string) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, "ticket_id = ? AND user_id = ?", ticketID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByPaymentID(ctx context.Context, paymentID string) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, "payment_id = ?", paymentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByUserID(ctx context.Context, userID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// MarkScanned performs the active → scanned transition as one conditional
// UPDATE. A second scan matches zero rows and leaves the original scan
// metadata untouched.
func (d *TicketDAO) MarkScanned(ctx context.Context, ticketID, scannedBy string, at time.Time) (Ticket, error) {
	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Where("ticket_id = ? AND status = ?", ticketID, "active").
		Updates(map[string]interface{}{
			"status":     "scanned",
			"scanned_at": at,
			"scanned_by": scannedBy,
		})
	if result.Error != nil {
		return Ticket{}, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByTicketID(ctx, ticketID); err != nil {
			return Ticket{}, err
		}
		return Ticket{}, ErrTicketNotActive
	}

	return d.FindByTicketID(ctx, ticketID)
}

// CancelWithRelease transitions an owned active ticket to cancelled and
// returns its quantity to the reserved pool, both inside one transaction.
func (d *TicketDAO) CancelWithRelease(ctx context.Context, userID uint, ticketID string) (Ticket, error) {
	var cancelled Ticket

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Ticket{}).
			Where("ticket_id = ? AND user_id = ? AND status = ?", ticketID, userID, "active").
			UpdateColumn("status", "cancelled")
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var existing Ticket
			if err := tx.First(&existing, "ticket_id = ? AND user_id = ?", ticketID, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTicketNotFound
				}
				return err
			}
			return ErrTicketNotActive
		}

		if err := tx.First(&cancelled, "ticket_id = ?", ticketID).Error; err != nil {
			return err
		}

		return incrementPool(tx, Reservation{
			EventID:  cancelled.EventID,
			PassName: cancelled.PassName,
			Quantity: cancelled.Quantity,
		})
	})
	if err != nil {
		return Ticket{}, err
	}

	return cancelled, nil
}

// Stats are the admin dashboard aggregates.
type Stats struct {
	Events           int64
	TicketsIssued    int64
	TicketsScanned   int64
	TicketsCancelled int64
	GrossRevenue     float64
}

func (d *TicketDAO) CollectStats(ctx context.Context) (Stats, error) {
	var stats Stats

	db := d.db.WithContext(ctx)

	if err := db.Model(&Event{}).Count(&stats.Events).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Model(&Ticket{}).Count(&stats.TicketsIssued).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Model(&Ticket{}).Where("status = ?", "scanned").Count(&stats.TicketsScanned).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Model(&Ticket{}).Where("status = ?", "cancelled").Count(&stats.TicketsCancelled).Error; err != nil {
		return Stats{}, err
	}

	row := db.Model(&Ticket{}).
		Where("status <> ?", "cancelled").
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&stats.GrossRevenue); err != nil {
		return Stats{}, err
	}

	return stats, nil
}
