package handlers

import (
	"strconv"

	"github.com/afridaasad/craftique-backend/models"
	"github.com/afridaasad/craftique-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WishlistHandler struct {
	DB *gorm.DB
}

func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{DB: db}
}

type AddWishlistRequest struct {
	ProductID uint `json:"product_id"`
}

// GetWishlist - GET /api/wishlist (buyer only)
func (h *WishlistHandler) GetWishlist(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var entries []models.Wishlist
	if err := h.DB.Preload("Product").Where("buyer_id = ?", buyerID).
		Order("added_at desc").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch wishlist"})
	}

	return c.JSON(fiber.Map{"data": entries})
}

// AddToWishlist - POST /api/wishlist (buyer only)
func (h *WishlistHandler) AddToWishlist(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req AddWishlistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	entry := models.Wishlist{
		BuyerID:   buyerID,
		ProductID: req.ProductID,
	}
	// The unique (buyer, product) index turns duplicates into a
	// validation failure instead of a raw storage error.
	if err := h.DB.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This product is already in your wishlist."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Added to wishlist", "data": entry})
}

// RemoveFromWishlist - DELETE /api/wishlist/:product_id (buyer only)
func (h *WishlistHandler) RemoveFromWishlist(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	productID, _ := strconv.Atoi(c.Params("product_id"))

	result := h.DB.Where("buyer_id = ? AND product_id = ?", buyerID, productID).
		Delete(&models.Wishlist{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not remove wishlist entry"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Wishlist entry not found"})
	}

	return c.JSON(fiber.Map{"message": "Removed from wishlist"})
}
