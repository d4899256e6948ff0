// Package payment is the boundary to the payment gateway. The issuer only
// ever sees a Verifier: given the payment reference from the client, it
// reports whether the gateway considers that payment settled. Signature and
// callback handling belong to the gateway adapter, not here.
package payment

import (
	"context"
	"errors"
	"strings"
)

var ErrUnknownProvider = errors.New("unknown payment provider")

// Verification is the gateway's answer for a payment reference.
type Verification struct {
	PaymentID string
	Verified  bool
	Amount    int64
	Currency  string
}

type Verifier interface {
	Verify(ctx context.Context, paymentID string) (Verification, error)
}

// NewVerifier selects a gateway adapter by provider name.
func NewVerifier(provider, stripeSecretKey string) (Verifier, error) {
	switch strings.ToLower(provider) {
	case "stripe":
		return NewStripeVerifier(stripeSecretKey), nil
	case "static", "":
		return NewStaticVerifier(), nil
	default:
		return nil, ErrUnknownProvider
	}
}

// StaticVerifier accepts every non-empty payment reference. Development and
// test environments only.
type StaticVerifier struct{}

func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{}
}

func (v *StaticVerifier) Verify(_ context.Context, paymentID string) (Verification, error) {
	return Verification{
		PaymentID: paymentID,
		Verified:  paymentID != "",
	}, nil
}
