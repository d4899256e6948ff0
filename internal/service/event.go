package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventhive/ticketing-api/internal/domain"
)

var ErrInvalidEvent = errors.New("invalid event")

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) GetEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return events, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

// CreateEvent validates the capacity layout once, at creation: the general
// pool starts full and tier allocations are carved out of max capacity, so
// the pools can be decremented independently afterwards without re-checking
// the cross-event sum on every sale.
func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.MaxCapacity < 1 {
		return domain.Event{}, fmt.Errorf("%w: max capacity must be at least 1", ErrInvalidEvent)
	}

	allocated := 0
	seen := make(map[string]bool, len(event.Passes))
	for i, pass := range event.Passes {
		if pass.Name == "" {
			return domain.Event{}, fmt.Errorf("%w: pass tier name required", ErrInvalidEvent)
		}
		if seen[pass.Name] {
			return domain.Event{}, fmt.Errorf("%w: duplicate pass tier %q", ErrInvalidEvent, pass.Name)
		}
		seen[pass.Name] = true

		if pass.InitialAllocation < 0 {
			return domain.Event{}, fmt.Errorf("%w: pass tier %q allocation negative", ErrInvalidEvent, pass.Name)
		}
		allocated += pass.InitialAllocation
		event.Passes[i].Available = pass.InitialAllocation
	}
	if allocated > event.MaxCapacity {
		return domain.Event{}, fmt.Errorf("%w: pass allocations exceed max capacity", ErrInvalidEvent)
	}

	event.Availability = event.MaxCapacity - allocated

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// SeedDemoEvents inserts a handful of demo events when the catalogue is
// empty. Idempotent: a non-empty catalogue is left alone.
func (s *EventService) SeedDemoEvents(ctx context.Context) ([]domain.Event, error) {
	existing, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	seeds := []domain.Event{
		{
			Name:            "Art Modern - Exhibition",
			Description:     "A curated walk through contemporary art.",
			Category:        "art",
			Organizer:       "Modern Art Gallery",
			LocationName:    "Modern Art Gallery",
			LocationAddress: "12 Gallery Lane",
			Date:            time.Now().AddDate(0, 1, 0),
			Time:            "18:00",
			Price:           3300,
			MaxCapacity:     200,
		},
		{
			Name:            "Startup Pitch Night",
			Description:     "Early-stage founders pitch to a live audience.",
			Category:        "business",
			Organizer:       "Innovation Hub",
			LocationName:    "Innovation Hub",
			LocationAddress: "4 Foundry Street",
			Date:            time.Now().AddDate(0, 2, 0),
			Time:            "19:30",
			Price:           3300,
			MaxCapacity:     120,
			Passes: []domain.PassTier{
				{Name: "Investor Pass", Price: 5000, Description: "Front row and networking hour", InitialAllocation: 20},
			},
		},
		{
			Name:            "Food & Wine Festival",
			Description:     "Tastings from two dozen local kitchens.",
			Category:        "food",
			Organizer:       "Grand Hotel",
			LocationName:    "Grand Hotel Ballroom",
			LocationAddress: "1 Grand Plaza",
			Date:            time.Now().AddDate(0, 3, 0),
			Time:            "12:00",
			Price:           1400,
			MaxCapacity:     300,
			Passes: []domain.PassTier{
				{Name: "Chef's Table", Price: 2500, Description: "Seated tasting with the chefs", InitialAllocation: 40},
			},
		},
	}

	created := make([]domain.Event, 0, len(seeds))
	for _, seed := range seeds {
		event, err := s.CreateEvent(ctx, seed)
		if err != nil {
			return nil, fmt.Errorf("s.CreateEvent -> %w", err)
		}
		created = append(created, event)
	}

	return created, nil
}
