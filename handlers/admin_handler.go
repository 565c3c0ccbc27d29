package handlers

import (
	"github.com/afridaasad/craftique-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler serves the read lists backing the admin dashboard.
type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// ListUsers - GET /api/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := h.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch users"})
	}
	return c.JSON(fiber.Map{"data": users})
}

// ListProducts - GET /api/admin/products
func (h *AdminHandler) ListProducts(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.DB.Preload("Artisan", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username, full_name")
	}).Order("created_at desc").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}
	return c.JSON(fiber.Map{"data": products})
}

// ListOrders - GET /api/admin/orders
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	var orderList []models.Order
	if err := h.DB.Preload("Items.Product").
		Preload("Buyer", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, username, full_name")
		}).
		Order("created_at desc").Find(&orderList).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch orders"})
	}
	return c.JSON(fiber.Map{"data": orderList})
}
