package response

import (
	"github.com/eventhive/ticketing-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type OTPRequestedResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expires_in_seconds"`
}
