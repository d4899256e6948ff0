package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrPassNotFound  = errors.New("pass tier not found")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Description string
	Category    string
	Organizer   string
	Image       string

	LocationName    string
	LocationAddress string
	Lat             float64
	Lng             float64

	Date time.Time `gorm:"not null"`
	Time string

	Price        float64 `gorm:"not null"`
	MaxCapacity  int     `gorm:"not null"`
	Availability int     `gorm:"not null"`

	Passes []EventPass `gorm:"foreignKey:EventID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventPass holds a tier's price and its own availability pool. The pair
// (event_id, name) is unique so tier resolution by exact name is unambiguous.
type EventPass struct {
	ID uint `gorm:"primaryKey"`

	EventID uint   `gorm:"not null;uniqueIndex:idx_event_passes_event_name"`
	Name    string `gorm:"not null;uniqueIndex:idx_event_passes_event_name"`

	Price       float64 `gorm:"not null"`
	Description string

	InitialAllocation int `gorm:"not null"`
	Available         int `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).Preload("Passes").First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Preload("Passes").Order("date asc").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}
