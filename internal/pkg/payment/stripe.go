package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// StripeVerifier treats the payment reference as a PaymentIntent id and asks
// Stripe whether it succeeded.
type StripeVerifier struct {
	api *client.API
}

func NewStripeVerifier(secretKey string) *StripeVerifier {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeVerifier{api: api}
}

func (v *StripeVerifier) Verify(_ context.Context, paymentID string) (Verification, error) {
	intent, err := v.api.PaymentIntents.Get(paymentID, nil)
	if err != nil {
		return Verification{}, fmt.Errorf("stripe PaymentIntents.Get -> %w", err)
	}

	return Verification{
		PaymentID: intent.ID,
		Verified:  intent.Status == stripe.PaymentIntentStatusSucceeded,
		Amount:    intent.Amount,
		Currency:  string(intent.Currency),
	}, nil
}
