package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestValidate(t *testing.T) {
	valid := SignupRequest{
		Email:           "alice@example.com",
		Password:        "hunter2abc",
		ConfirmPassword: "hunter2abc",
		Name:            "Alice",
		Phone:           "+33612345678",
	}

	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*SignupRequest) {}},
		{name: "valid without phone", mutate: func(r *SignupRequest) { r.Phone = "" }},
		{name: "bad email", mutate: func(r *SignupRequest) { r.Email = "not-an-email" }, wantErr: true},
		{name: "password too short", mutate: func(r *SignupRequest) { r.Password = "ab1"; r.ConfirmPassword = "ab1" }, wantErr: true},
		{name: "password without digit", mutate: func(r *SignupRequest) { r.Password = "abcdefghij"; r.ConfirmPassword = "abcdefghij" }, wantErr: true},
		{name: "password without letter", mutate: func(r *SignupRequest) { r.Password = "1234567890"; r.ConfirmPassword = "1234567890" }, wantErr: true},
		{name: "confirm mismatch", mutate: func(r *SignupRequest) { r.ConfirmPassword = "different1" }, wantErr: true},
		{name: "bad phone", mutate: func(r *SignupRequest) { r.Phone = "abc" }, wantErr: true},
		{name: "name too short", mutate: func(r *SignupRequest) { r.Name = "A" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIssueTicketRequestValidate(t *testing.T) {
	pass := "Chef's Table"
	empty := ""

	valid := IssueTicketRequest{
		EventID:   1,
		Quantity:  2,
		PaymentID: "pi_123",
	}

	tests := []struct {
		name    string
		mutate  func(*IssueTicketRequest)
		wantErr bool
	}{
		{name: "valid general admission", mutate: func(*IssueTicketRequest) {}},
		{name: "valid with pass", mutate: func(r *IssueTicketRequest) { r.PassName = &pass }},
		{name: "missing event", mutate: func(r *IssueTicketRequest) { r.EventID = 0 }, wantErr: true},
		{name: "zero quantity", mutate: func(r *IssueTicketRequest) { r.Quantity = 0 }, wantErr: true},
		{name: "quantity above cap", mutate: func(r *IssueTicketRequest) { r.Quantity = 11 }, wantErr: true},
		{name: "empty pass name", mutate: func(r *IssueTicketRequest) { r.PassName = &empty }, wantErr: true},
		{name: "missing payment", mutate: func(r *IssueTicketRequest) { r.PaymentID = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateEventRequestValidate(t *testing.T) {
	valid := CreateEventRequest{
		Name:         "Startup Pitch Night",
		LocationName: "Innovation Hub",
		Date:         "2026-10-01",
		Time:         "19:30",
		Price:        3300,
		MaxCapacity:  120,
		Passes: []CreatePassTierRequest{
			{Name: "Investor Pass", Price: 5000, InitialAllocation: 20},
		},
	}

	tests := []struct {
		name    string
		mutate  func(*CreateEventRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(*CreateEventRequest) {}},
		{name: "valid without passes", mutate: func(r *CreateEventRequest) { r.Passes = nil }},
		{name: "missing name", mutate: func(r *CreateEventRequest) { r.Name = "" }, wantErr: true},
		{name: "bad date", mutate: func(r *CreateEventRequest) { r.Date = "01/10/2026" }, wantErr: true},
		{name: "bad time", mutate: func(r *CreateEventRequest) { r.Time = "7pm" }, wantErr: true},
		{name: "zero capacity", mutate: func(r *CreateEventRequest) { r.MaxCapacity = 0 }, wantErr: true},
		{name: "unnamed pass", mutate: func(r *CreateEventRequest) { r.Passes[0].Name = "" }, wantErr: true},
		{name: "zero allocation pass", mutate: func(r *CreateEventRequest) { r.Passes[0].InitialAllocation = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			req.Passes = append([]CreatePassTierRequest(nil), valid.Passes...)
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
