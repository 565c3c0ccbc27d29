package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/afridaasad/craftique-backend/internal/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	intent *payment.Intent
	err    error

	gotAmount   decimal.Decimal
	gotCurrency string
}

func (g *stubGateway) CreateIntent(_ context.Context, amount decimal.Decimal, currency string) (*payment.Intent, error) {
	g.gotAmount = amount
	g.gotCurrency = currency
	return g.intent, g.err
}

func paymentApp(gateway payment.Gateway) *fiber.App {
	app := fiber.New()
	app.Post("/api/payments/intent", NewPaymentHandler(gateway).CreateIntent)
	return app
}

func TestCreateIntent(t *testing.T) {
	gateway := &stubGateway{intent: &payment.Intent{
		ID:       "order_abc123",
		Amount:   4500,
		Currency: "INR",
	}}
	app := paymentApp(gateway)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/payments/intent", fiber.Map{
		"amount": "45.00",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "order_abc123", body["order_id"])
	assert.True(t, gateway.gotAmount.Equal(decimal.RequireFromString("45.00")))
}

func TestCreateIntentRequiresAmount(t *testing.T) {
	app := paymentApp(&stubGateway{})

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/payments/intent", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateIntentGatewayFailureReturns500(t *testing.T) {
	app := paymentApp(&stubGateway{err: errors.New("provider unavailable")})

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/payments/intent", fiber.Map{
		"amount": "10.00",
	})
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body["error"], "provider unavailable")
}
