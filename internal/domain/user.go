package domain

import "time"

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Provider  string    `json:"provider"` // "password" or "phone"
	Role      string    `json:"role"`     // "attendee", "scanner" or "admin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OTPChallenge is the pending one-time-code state for the phone login flow.
// Cleared as soon as the code is verified.
type OTPChallenge struct {
	Code      string
	ExpiresAt time.Time
}

func (c OTPChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
