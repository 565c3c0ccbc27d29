package handlers

import (
	"errors"
	"strconv"

	"github.com/afridaasad/craftique-backend/internal/checkout"
	"github.com/afridaasad/craftique-backend/internal/metrics"
	"github.com/afridaasad/craftique-backend/internal/orders"
	"github.com/afridaasad/craftique-backend/models"
	"github.com/afridaasad/craftique-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderHandler struct {
	DB       *gorm.DB
	Checkout *checkout.Service
	Orders   *orders.Service
}

func NewOrderHandler(db *gorm.DB, checkoutSvc *checkout.Service, ordersSvc *orders.Service) *OrderHandler {
	return &OrderHandler{DB: db, Checkout: checkoutSvc, Orders: ordersSvc}
}

type BuyNowRequest struct {
	ProductID       uint   `json:"product_id"`
	Quantity        uint   `json:"quantity"`
	ShippingAddress string `json:"shipping_address"`
	PhoneNumber     string `json:"phone_number"`
	PaymentMethod   string `json:"payment_method"`
}

// BuyNow - POST /api/orders/buy-now (buyer only)
func (h *OrderHandler) BuyNow(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req BuyNowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.PaymentMethod != "" && !models.ValidPaymentMethod(req.PaymentMethod) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment method"})
	}

	order, err := h.Checkout.BuyNow(c.Context(), buyerID, req.ProductID, req.Quantity, checkout.ShippingDetails{
		Address:       req.ShippingAddress,
		Phone:         req.PhoneNumber,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, checkout.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not place order"})
	}

	metrics.OrdersPlaced.WithLabelValues("buy_now").Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Order placed via Buy Now",
		"order_id": order.ID,
	})
}

// GetMyOrders - GET /api/orders (buyer only)
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var orderList []models.Order
	if err := h.DB.Preload("Items.Product").Where("buyer_id = ?", buyerID).
		Order("created_at desc").Find(&orderList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch orders"})
	}

	return c.JSON(fiber.Map{"data": orderList})
}

// GetArtisanOrders - GET /api/artisan/orders (artisan only)
// Lists orders containing at least one of the artisan's products.
func (h *OrderHandler) GetArtisanOrders(c *fiber.Ctx) error {
	artisanID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var orderList []models.Order
	err := h.DB.
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("products.artisan_id = ?", artisanID).
		Distinct("orders.*").
		Preload("Items.Product").
		Preload("Buyer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, full_name")
		}).
		Order("orders.created_at desc").
		Find(&orderList).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch orders"})
	}

	return c.JSON(fiber.Map{"data": orderList})
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus - PATCH /api/orders/:id/status (owning artisan or admin)
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	order, err := h.Orders.UpdateApproval(c.Context(), actor, uint(id), req.Status)
	if err != nil {
		return h.transitionError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "status": order.Status})
}

type UpdateDeliveryRequest struct {
	DeliveryStatus string `json:"delivery_status"`
}

// UpdateDeliveryStatus - PATCH /api/orders/:id/delivery (owning artisan or admin)
func (h *OrderHandler) UpdateDeliveryStatus(c *fiber.Ctx) error {
	actor, ok := h.actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))

	var req UpdateDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	order, err := h.Orders.UpdateDelivery(c.Context(), actor, uint(id), req.DeliveryStatus)
	if err != nil {
		return h.transitionError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "delivery_status": order.DeliveryStatus})
}

func (h *OrderHandler) actor(c *fiber.Ctx) (orders.Actor, bool) {
	userID, ok := utils.UserID(c)
	if !ok {
		return orders.Actor{}, false
	}
	role, _ := c.Locals("role").(string)
	return orders.Actor{ID: userID, Role: role}, true
}

func (h *OrderHandler) transitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
	case errors.Is(err, orders.ErrNotOwner):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, orders.ErrInvalidStatus), errors.Is(err, orders.ErrAlreadyResolved):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update order"})
	}
}
