package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/mahimDev/bistro-boss-server/config"
	"github.com/mahimDev/bistro-boss-server/pkg/metrics"
)

// ErrPaymentAuthorizationFailed wraps a processor rejection. Callers surface
// it to the client without retrying: a blind retry could create a duplicate
// authorization.
var ErrPaymentAuthorizationFailed = errors.New("payment authorization failed")

// minorUnitEpsilon absorbs float64 representation error before truncation,
// so 19.99 (stored as 19.989999...) still converts to 1999.
const minorUnitEpsilon = 1e-6

// ToMinorUnits converts a major-unit amount to the processor's integer
// minor units. Fractional cents are truncated toward zero, not rounded:
// 19.999 becomes 1999, never 2000.
func ToMinorUnits(amount float64) int64 {
	return int64(amount*100 + minorUnitEpsilon)
}

// IntentCreator is the single payment processor call this service depends
// on. Satisfied by the Stripe PaymentIntents API in production and by a
// fake in tests.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type stripeIntents struct{}

func (stripeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	return paymentintent.New(params)
}

// PaymentService requests payment authorizations from the external
// processor. Card data never touches this service: the returned client
// secret hands collection off to the processor's client-side flow.
type PaymentService struct {
	intents  IntentCreator
	currency string
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		intents:  stripeIntents{},
		currency: config.PaymentCurrency(),
	}
}

// NewPaymentServiceWith injects a processor client; used by tests.
func NewPaymentServiceWith(intents IntentCreator, currency string) *PaymentService {
	return &PaymentService{intents: intents, currency: currency}
}

// CreateAuthorization submits a payment intent for the given major-unit
// amount and returns the opaque client secret. Each call carries a fresh
// idempotency key so a network-level replay cannot double-authorize.
func (s *PaymentService) CreateAuthorization(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: non-positive amount %v", ErrPaymentAuthorizationFailed, amount)
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(ToMinorUnits(amount)),
		Currency:           stripe.String(s.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := s.intents.New(params)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("%w: %v", ErrPaymentAuthorizationFailed, err)
	}

	metrics.PaymentIntents.WithLabelValues("created").Inc()
	return intent.ClientSecret, nil
}
