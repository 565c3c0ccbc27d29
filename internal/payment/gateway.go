// Package payment wraps the third-party payment provider behind a small
// gateway interface. Failures propagate synchronously; nothing here
// retries.
package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

// Intent is a provider-side payment intent.
type Intent struct {
	ID       string `json:"order_id"`
	Amount   int64  `json:"amount"` // smallest currency unit
	Currency string `json:"currency"`
	Key      string `json:"key"`
}

// Gateway creates provider-side payment intents for a given amount.
type Gateway interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (*Intent, error)
}

// RazorpayGateway is the production Gateway.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

func (g *RazorpayGateway) CreateIntent(_ context.Context, amount decimal.Decimal, currency string) (*Intent, error) {
	if currency == "" {
		currency = "INR"
	}

	// The provider expects the amount in the smallest unit (paise).
	data := map[string]interface{}{
		"amount":          amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency":        currency,
		"receipt":         "rcpt_" + uuid.NewString(),
		"payment_capture": 1,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}

	id, _ := body["id"].(string)
	return &Intent{
		ID:       id,
		Amount:   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency: currency,
		Key:      g.keyID,
	}, nil
}
