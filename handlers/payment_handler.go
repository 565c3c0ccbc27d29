package handlers

import (
	"github.com/afridaasad/craftique-backend/internal/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	Gateway payment.Gateway
}

func NewPaymentHandler(gateway payment.Gateway) *PaymentHandler {
	return &PaymentHandler{Gateway: gateway}
}

type CreateIntentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// CreateIntent - POST /api/payments/intent
//
// Gateway failures surface synchronously as a 500 with the upstream
// message; this layer never retries.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	var req CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Amount.IsZero() || req.Amount.IsNegative() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount is required"})
	}

	intent, err := h.Gateway.CreateIntent(c.Context(), req.Amount, req.Currency)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(intent)
}
