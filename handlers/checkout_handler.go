package handlers

import (
	"errors"

	"github.com/afridaasad/craftique-backend/internal/checkout"
	"github.com/afridaasad/craftique-backend/internal/metrics"
	"github.com/afridaasad/craftique-backend/models"
	"github.com/afridaasad/craftique-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Checkout *checkout.Service
}

func NewCheckoutHandler(checkoutSvc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{Checkout: checkoutSvc}
}

// InitiateCheckout - POST /api/checkout/initiate (buyer only)
//
// The code is echoed in the response rather than sent out-of-band. A
// production deployment would deliver it by SMS or email.
func (h *CheckoutHandler) InitiateCheckout(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	code, err := h.Checkout.Initiate(c.Context(), buyerID)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Your cart is empty."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not initiate checkout"})
	}

	metrics.CheckoutsInitiated.Inc()

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP generated for checkout",
		"otp":     code,
	})
}

type ConfirmCheckoutRequest struct {
	OTP             string `json:"otp"`
	ShippingAddress string `json:"shipping_address"`
	PhoneNumber     string `json:"phone_number"`
	PaymentMethod   string `json:"payment_method"`
}

// ConfirmCheckout - POST /api/checkout/confirm (buyer only)
func (h *CheckoutHandler) ConfirmCheckout(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req ConfirmCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.PaymentMethod != "" && !models.ValidPaymentMethod(req.PaymentMethod) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment method"})
	}

	order, err := h.Checkout.Confirm(c.Context(), buyerID, req.OTP, checkout.ShippingDetails{
		Address:       req.ShippingAddress,
		Phone:         req.PhoneNumber,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCodeExpired):
			metrics.CheckoutFailures.WithLabelValues("code_expired").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "OTP expired or not found."})
		case errors.Is(err, checkout.ErrCodeMismatch):
			metrics.CheckoutFailures.WithLabelValues("code_mismatch").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid OTP."})
		case errors.Is(err, checkout.ErrEmptyCart):
			metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Your cart is empty."})
		default:
			metrics.CheckoutFailures.WithLabelValues("internal").Inc()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not place order"})
		}
	}

	metrics.OrdersPlaced.WithLabelValues("cart").Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Order placed successfully via OTP checkout.",
		"order_id": order.ID,
		"total":    order.Total(),
	})
}
