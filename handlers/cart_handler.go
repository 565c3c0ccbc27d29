package handlers

import (
	"strconv"

	"github.com/afridaasad/craftique-backend/models"
	"github.com/afridaasad/craftique-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{DB: db}
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

// GetCart - GET /api/cart (buyer only)
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var items []models.CartItem
	if err := h.DB.Preload("Product").Where("buyer_id = ?", buyerID).
		Order("added_at desc").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch cart"})
	}

	return c.JSON(fiber.Map{"data": items})
}

// AddCartItem - POST /api/cart (buyer only)
func (h *CartHandler) AddCartItem(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	// The (buyer, product) pair is unique; re-adding bumps the quantity.
	var existing models.CartItem
	err := h.DB.Where("buyer_id = ? AND product_id = ?", buyerID, req.ProductID).
		First(&existing).Error
	if err == nil {
		existing.Quantity = req.Quantity
		if err := h.DB.Save(&existing).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update cart"})
		}
		return c.JSON(fiber.Map{"message": "Cart updated", "data": existing})
	}

	item := models.CartItem{
		BuyerID:   buyerID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This product is already in your cart."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Added to cart", "data": item})
}

type UpdateCartItemRequest struct {
	Quantity uint `json:"quantity"`
}

// UpdateCartItem - PUT /api/cart/:id (buyer only)
func (h *CartHandler) UpdateCartItem(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))

	var req UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if req.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quantity must be at least 1"})
	}

	var item models.CartItem
	if err := h.DB.Where("id = ? AND buyer_id = ?", id, buyerID).First(&item).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
	}

	item.Quantity = req.Quantity
	if err := h.DB.Save(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update cart"})
	}

	return c.JSON(fiber.Map{"message": "Cart updated", "data": item})
}

// RemoveCartItem - DELETE /api/cart/:id (buyer only)
func (h *CartHandler) RemoveCartItem(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))

	result := h.DB.Where("id = ? AND buyer_id = ?", id, buyerID).Delete(&models.CartItem{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not remove cart item"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cart item not found"})
	}

	return c.JSON(fiber.Map{"message": "Removed from cart"})
}
