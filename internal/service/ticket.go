package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventhive/ticketing-api/internal/domain"
	"github.com/eventhive/ticketing-api/internal/pkg/payment"
	"github.com/eventhive/ticketing-api/internal/pkg/policy"
	"github.com/eventhive/ticketing-api/internal/pkg/qr"
	"github.com/eventhive/ticketing-api/internal/pkg/ticketid"
	"github.com/eventhive/ticketing-api/internal/repository"
)

var (
	ErrEventNotFound            = repository.ErrEventNotFound
	ErrPassNotFound             = repository.ErrPassNotFound
	ErrTicketNotFound           = repository.ErrTicketNotFound
	ErrInsufficientAvailability = repository.ErrInsufficientAvailability
	ErrTicketAlreadyScanned     = errors.New("ticket already scanned")
	ErrPaymentNotVerified       = errors.New("payment not verified")
	ErrScanNotAllowed           = errors.New("caller may not scan tickets")
)

// ticketIDAttempts bounds the retry loop on a ticket id collision. The id
// carries 9 random base36 characters, so a second collision in a row is not
// a realistic operating condition.
const ticketIDAttempts = 3

type TicketRepository interface {
	CreateWithReservation(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	FindOwned(ctx context.Context, userID uint, ticketID string) (domain.Ticket, error)
	FindByPaymentID(ctx context.Context, paymentID string) (domain.Ticket, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Ticket, error)
	MarkScanned(ctx context.Context, ticketID, scannedBy string, at time.Time) (domain.Ticket, error)
	CancelWithRelease(ctx context.Context, userID uint, ticketID string) (domain.Ticket, error)
	CollectStats(ctx context.Context) (domain.Stats, error)
}

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	FindAll(ctx context.Context) ([]domain.Event, error)
}

type TicketService struct {
	repo      TicketRepository
	eventRepo EventRepository
	userRepo  UserRepository
	verifier  payment.Verifier
	policy    *policy.Policy
}

func NewTicketService(repo TicketRepository, eventRepo EventRepository, userRepo UserRepository, verifier payment.Verifier, pol *policy.Policy) *TicketService {
	return &TicketService{
		repo:      repo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		verifier:  verifier,
		policy:    pol,
	}
}

// IssueRequest is the validated input to an issuance. PassName nil selects
// the event's general pool.
type IssueRequest struct {
	EventID   uint
	PassName  *string
	Quantity  int
	PaymentID string
}

// IssueTicket reserves inventory and mints exactly one ticket for a verified
// payment. A payment reference that already produced a ticket is an
// idempotent success: the original ticket is returned and nothing is
// reserved twice.
func (s *TicketService) IssueTicket(ctx context.Context, userID uint, req IssueRequest) (domain.TicketView, error) {
	verification, err := s.verifier.Verify(ctx, req.PaymentID)
	if err != nil {
		return domain.TicketView{}, fmt.Errorf("s.verifier.Verify -> %w", err)
	}
	if !verification.Verified {
		return domain.TicketView{}, ErrPaymentNotVerified
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.TicketView{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, req.EventID)
	if err != nil {
		return domain.TicketView{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	unitPrice := event.Price
	if req.PassName != nil {
		pass, ok := event.FindPass(*req.PassName)
		if !ok {
			return domain.TicketView{}, ErrPassNotFound
		}
		unitPrice = pass.Price
	}
	totalAmount := unitPrice * float64(req.Quantity)

	// Cheap idempotence pre-check; the payment_id unique constraint below is
	// what actually closes the race.
	if existing, err := s.repo.FindByPaymentID(ctx, req.PaymentID); err == nil {
		return s.view(existing, event, user), nil
	} else if !errors.Is(err, ErrTicketNotFound) {
		return domain.TicketView{}, fmt.Errorf("s.repo.FindByPaymentID -> %w", err)
	}

	purchasedAt := time.Now().UTC()

	var created domain.Ticket
	for attempt := 0; ; attempt++ {
		id, err := ticketid.New()
		if err != nil {
			return domain.TicketView{}, fmt.Errorf("ticketid.New -> %w", err)
		}

		qrImage, err := s.encodePayload(id, user, event, req, unitPrice, totalAmount, purchasedAt)
		if err != nil {
			return domain.TicketView{}, err
		}

		created, err = s.repo.CreateWithReservation(ctx, domain.Ticket{
			TicketID:    id,
			UserID:      user.ID,
			EventID:     event.ID,
			PassName:    req.PassName,
			Quantity:    req.Quantity,
			UnitPrice:   unitPrice,
			TotalAmount: totalAmount,
			PaymentID:   req.PaymentID,
			QRCode:      qrImage,
			Status:      domain.TicketActive,
			CreatedAt:   purchasedAt,
		})
		if err == nil {
			break
		}

		switch {
		case errors.Is(err, repository.ErrDuplicatePayment):
			// Lost the insert race to a concurrent retry of the same payment.
			existing, findErr := s.repo.FindByPaymentID(ctx, req.PaymentID)
			if findErr != nil {
				return domain.TicketView{}, fmt.Errorf("s.repo.FindByPaymentID -> %w", findErr)
			}
			return s.view(existing, event, user), nil
		case errors.Is(err, repository.ErrTicketIDTaken) && attempt < ticketIDAttempts-1:
			continue
		default:
			return domain.TicketView{}, fmt.Errorf("s.repo.CreateWithReservation -> %w", err)
		}
	}

	return s.view(created, event, user), nil
}

func (s *TicketService) encodePayload(id string, user domain.User, event domain.Event, req IssueRequest, unitPrice, totalAmount float64, purchasedAt time.Time) (string, error) {
	passName := domain.GeneralAdmission
	if req.PassName != nil {
		passName = *req.PassName
	}

	payload := domain.TicketPayload{
		TicketID:     id,
		UserID:       user.ID,
		UserName:     user.Name,
		UserEmail:    user.Email,
		EventID:      event.ID,
		EventName:    event.Name,
		PassName:     passName,
		Quantity:     req.Quantity,
		UnitPrice:    unitPrice,
		TotalAmount:  totalAmount,
		PurchaseDate: purchasedAt.Format(time.RFC3339),
	}

	serialized, err := payload.Serialize()
	if err != nil {
		return "", fmt.Errorf("payload.Serialize -> %w", err)
	}

	image, err := qr.EncodeBase64(serialized, qr.DefaultOptions())
	if err != nil {
		return "", fmt.Errorf("qr.EncodeBase64 -> %w", err)
	}

	return image, nil
}

// GetOwnedTicket fails closed: a ticket belonging to another user reports
// plain not-found, so ids cannot be probed across accounts.
func (s *TicketService) GetOwnedTicket(ctx context.Context, userID uint, ticketID string) (domain.TicketView, error) {
	ticket, err := s.repo.FindOwned(ctx, userID, ticketID)
	if err != nil {
		return domain.TicketView{}, fmt.Errorf("s.repo.FindOwned -> %w", err)
	}

	return s.assembleView(ctx, ticket)
}

func (s *TicketService) ListOwnedTickets(ctx context.Context, userID uint) ([]domain.TicketView, error) {
	tickets, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUserID -> %w", err)
	}

	views := make([]domain.TicketView, 0, len(tickets))
	for _, t := range tickets {
		view, err := s.assembleView(ctx, t)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

// ScanTicket performs the active → scanned entrance transition. Re-scanning
// is rejected without touching the recorded scan metadata.
func (s *TicketService) ScanTicket(ctx context.Context, scannerID uint, ticketID string) (domain.TicketView, error) {
	scanner, err := s.userRepo.FindByID(ctx, scannerID)
	if err != nil {
		return domain.TicketView{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if !s.policy.Allows(scanner.Role, policy.CapScanTickets) {
		return domain.TicketView{}, ErrScanNotAllowed
	}

	scanned, err := s.repo.MarkScanned(ctx, ticketID, scanner.Email, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotActive) {
			return domain.TicketView{}, ErrTicketAlreadyScanned
		}
		return domain.TicketView{}, fmt.Errorf("s.repo.MarkScanned -> %w", err)
	}

	return s.assembleView(ctx, scanned)
}

// CancelTicket releases the ticket's reservation back to the pool it was
// drawn from.
func (s *TicketService) CancelTicket(ctx context.Context, userID uint, ticketID string) (domain.TicketView, error) {
	cancelled, err := s.repo.CancelWithRelease(ctx, userID, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotActive) {
			return domain.TicketView{}, ErrTicketAlreadyScanned
		}
		return domain.TicketView{}, fmt.Errorf("s.repo.CancelWithRelease -> %w", err)
	}

	return s.assembleView(ctx, cancelled)
}

func (s *TicketService) CollectStats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.repo.CollectStats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("s.repo.CollectStats -> %w", err)
	}

	return stats, nil
}

func (s *TicketService) assembleView(ctx context.Context, ticket domain.Ticket) (domain.TicketView, error) {
	event, err := s.eventRepo.FindByID(ctx, ticket.EventID)
	if err != nil {
		return domain.TicketView{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	owner, err := s.userRepo.FindByID(ctx, ticket.UserID)
	if err != nil {
		return domain.TicketView{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return s.view(ticket, event, owner), nil
}

func (s *TicketService) view(ticket domain.Ticket, event domain.Event, owner domain.User) domain.TicketView {
	return domain.TicketView{
		Ticket:        ticket,
		EventName:     event.Name,
		EventDate:     event.Date,
		EventTime:     event.Time,
		EventLocation: event.LocationName,
		EventImage:    event.Image,
		UserName:      owner.Name,
		UserEmail:     owner.Email,
	}
}
