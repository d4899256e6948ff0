package domain

import "time"

type Event struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Organizer       string     `json:"organizer"`
	Image           string     `json:"image"`
	LocationName    string     `json:"location_name"`
	LocationAddress string     `json:"location_address"`
	Lat             float64    `json:"lat"`
	Lng             float64    `json:"lng"`
	Date            time.Time  `json:"date"`
	Time            string     `json:"time"`
	Price           float64    `json:"price"`
	MaxCapacity     int        `json:"max_capacity"`
	Availability    int        `json:"availability"`
	Passes          []PassTier `json:"passes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// PassTier is a named ticket class with its own price and an availability
// count independent of the event's general pool.
type PassTier struct {
	ID                uint    `json:"id"`
	EventID           uint    `json:"event_id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Description       string  `json:"description"`
	InitialAllocation int     `json:"initial_allocation"`
	Available         int     `json:"available"`
}

// FindPass returns the tier matching name exactly, if any.
func (e *Event) FindPass(name string) (PassTier, bool) {
	for _, p := range e.Passes {
		if p.Name == name {
			return p, true
		}
	}
	return PassTier{}, false
}
