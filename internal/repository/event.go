package repository

import (
	"context"
	"fmt"

	"github.com/eventhive/ticketing-api/internal/domain"
	"github.com/eventhive/ticketing-api/internal/repository/dao"
)

var (
	ErrEventNotFound = dao.ErrEventNotFound
	ErrPassNotFound  = dao.ErrPassNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = r.daoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	passes := make([]dao.EventPass, len(e.Passes))
	for i, p := range e.Passes {
		passes[i] = dao.EventPass{
			ID:                p.ID,
			EventID:           p.EventID,
			Name:              p.Name,
			Price:             p.Price,
			Description:       p.Description,
			InitialAllocation: p.InitialAllocation,
			Available:         p.Available,
		}
	}

	return dao.Event{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		Category:        e.Category,
		Organizer:       e.Organizer,
		Image:           e.Image,
		LocationName:    e.LocationName,
		LocationAddress: e.LocationAddress,
		Lat:             e.Lat,
		Lng:             e.Lng,
		Date:            e.Date,
		Time:            e.Time,
		Price:           e.Price,
		MaxCapacity:     e.MaxCapacity,
		Availability:    e.Availability,
		Passes:          passes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	passes := make([]domain.PassTier, len(e.Passes))
	for i, p := range e.Passes {
		passes[i] = domain.PassTier{
			ID:                p.ID,
			EventID:           p.EventID,
			Name:              p.Name,
			Price:             p.Price,
			Description:       p.Description,
			InitialAllocation: p.InitialAllocation,
			Available:         p.Available,
		}
	}
	if len(passes) == 0 {
		passes = nil
	}

	return domain.Event{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		Category:        e.Category,
		Organizer:       e.Organizer,
		Image:           e.Image,
		LocationName:    e.LocationName,
		LocationAddress: e.LocationAddress,
		Lat:             e.Lat,
		Lng:             e.Lng,
		Date:            e.Date,
		Time:            e.Time,
		Price:           e.Price,
		MaxCapacity:     e.MaxCapacity,
		Availability:    e.Availability,
		Passes:          passes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
