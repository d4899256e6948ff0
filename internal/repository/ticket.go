package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/eventhive/ticketing-api/internal/domain"
	"github.com/eventhive/ticketing-api/internal/repository/dao"
)

var (
	ErrTicketNotFound           = dao.ErrTicketNotFound
	ErrInsufficientAvailability = dao.ErrInsufficientAvailability
	ErrDuplicatePayment         = dao.ErrDuplicatePayment
	ErrTicketIDTaken            = dao.ErrTicketIDTaken
	ErrTicketNotActive          = dao.ErrTicketNotActive
)

type TicketDAO interface {
	InsertWithReservation(ctx context.Context, ticket dao.Ticket, res dao.Reservation) (dao.Ticket, error)
	FindOwned(ctx context.Context, userID uint, ticketID string) (dao.Ticket, error)
	FindByPaymentID(ctx context.Context, paymentID string) (dao.Ticket, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Ticket, error)
	MarkScanned(ctx context.Context, ticketID, scannedBy string, at time.Time) (dao.Ticket, error)
	CancelWithRelease(ctx context.Context, userID uint, ticketID string) (dao.Ticket, error)
	CollectStats(ctx context.Context) (dao.Stats, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

// CreateWithReservation persists the ticket and the pool decrement as one
// atomic unit.
func (r *TicketRepository) CreateWithReservation(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.dao.InsertWithReservation(ctx, r.domainToDao(ticket), dao.Reservation{
		EventID:  ticket.EventID,
		PassName: ticket.PassName,
		Quantity: ticket.Quantity,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.InsertWithReservation -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TicketRepository) FindOwned(ctx context.Context, userID uint, ticketID string) (domain.Ticket, error) {
	found, err := r.dao.FindOwned(ctx, userID, ticketID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindOwned -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) FindByPaymentID(ctx context.Context, paymentID string) (domain.Ticket, error) {
	found, err := r.dao.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindByPaymentID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TicketRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	tickets := make([]domain.Ticket, len(found))
	for i, t := range found {
		tickets[i] = r.daoToDomain(t)
	}

	return tickets, nil
}

func (r *TicketRepository) MarkScanned(ctx context.Context, ticketID, scannedBy string, at time.Time) (domain.Ticket, error) {
	scanned, err := r.dao.MarkScanned(ctx, ticketID, scannedBy, at)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.MarkScanned -> %w", err)
	}

	return r.daoToDomain(scanned), nil
}

func (r *TicketRepository) CancelWithRelease(ctx context.Context, userID uint, ticketID string) (domain.Ticket, error) {
	cancelled, err := r.dao.CancelWithRelease(ctx, userID, ticketID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.CancelWithRelease -> %w", err)
	}

	return r.daoToDomain(cancelled), nil
}

func (r *TicketRepository) CollectStats(ctx context.Context) (domain.Stats, error) {
	stats, err := r.dao.CollectStats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("r.dao.CollectStats -> %w", err)
	}

	return domain.Stats{
		Events:           stats.Events,
		TicketsIssued:    stats.TicketsIssued,
		TicketsScanned:   stats.TicketsScanned,
		TicketsCancelled: stats.TicketsCancelled,
		GrossRevenue:     stats.GrossRevenue,
	}, nil
}

func (r *TicketRepository) domainToDao(t domain.Ticket) dao.Ticket {
	return dao.Ticket{
		ID:          t.ID,
		TicketID:    t.TicketID,
		UserID:      t.UserID,
		EventID:     t.EventID,
		PassName:    t.PassName,
		Quantity:    t.Quantity,
		UnitPrice:   t.UnitPrice,
		TotalAmount: t.TotalAmount,
		PaymentID:   t.PaymentID,
		QRCode:      t.QRCode,
		Status:      string(t.Status),
		ScannedAt:   t.ScannedAt,
		ScannedBy:   t.ScannedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *TicketRepository) daoToDomain(t dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:          t.ID,
		TicketID:    t.TicketID,
		UserID:      t.UserID,
		EventID:     t.EventID,
		PassName:    t.PassName,
		Quantity:    t.Quantity,
		UnitPrice:   t.UnitPrice,
		TotalAmount: t.TotalAmount,
		PaymentID:   t.PaymentID,
		QRCode:      t.QRCode,
		Status:      domain.TicketStatus(t.Status),
		ScannedAt:   t.ScannedAt,
		ScannedBy:   t.ScannedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
