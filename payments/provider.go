// Package payments talks to the payment collaborator. The API never sees
// card data: it opens a checkout session and later asks whether that
// session was paid.
package payments

import (
	"context"
	"fmt"
)

type CheckoutRequest struct {
	CourseName   string
	StudentEmail string
	Amount       float64
	Currency     string
}

type Provider interface {
	Name() string
	CreateSession(ctx context.Context, req CheckoutRequest) (sessionID string, err error)
	// ConfirmSession reports whether the session was paid.
	ConfirmSession(ctx context.Context, sessionID string) (bool, error)
}

func NewProvider(name string, paypal PayPalConfig) (Provider, error) {
	switch name {
	case "mock", "":
		return NewMockProvider(), nil
	case "paypal":
		return NewPayPalProvider(paypal), nil
	default:
		return nil, fmt.Errorf("unknown PAYMENT_PROVIDER %q", name)
	}
}
