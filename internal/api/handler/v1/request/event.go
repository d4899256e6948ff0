package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreatePassTierRequest struct {
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Description       string  `json:"description,omitempty"`
	InitialAllocation int     `json:"initial_allocation"`
}

func (req CreatePassTierRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.InitialAllocation, validation.Required, validation.Min(1)),
	)
}

type CreateEventRequest struct {
	Name            string                  `json:"name"`
	Description     string                  `json:"description,omitempty"`
	Category        string                  `json:"category,omitempty"`
	Organizer       string                  `json:"organizer,omitempty"`
	Image           string                  `json:"image,omitempty"`
	LocationName    string                  `json:"location_name"`
	LocationAddress string                  `json:"location_address,omitempty"`
	Lat             float64                 `json:"lat,omitempty"`
	Lng             float64                 `json:"lng,omitempty"`
	Date            string                  `json:"date"`
	Time            string                  `json:"time,omitempty"`
	Price           float64                 `json:"price"`
	MaxCapacity     int                     `json:"max_capacity"`
	Passes          []CreatePassTierRequest `json:"passes,omitempty"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.LocationName, validation.Required),
		validation.Field(&req.Date, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&req.Time, validation.Date("15:04").Error("must be a valid time in HH:MM format")),
		validation.Field(&req.Price, validation.Min(0.0)),
		validation.Field(&req.MaxCapacity, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return err
	}

	for _, pass := range req.Passes {
		if err := pass.Validate(); err != nil {
			return err
		}
	}

	return nil
}
