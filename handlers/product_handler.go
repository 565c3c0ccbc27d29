package handlers

import (
	"strconv"

	"github.com/afridaasad/craftique-backend/models"
	"github.com/afridaasad/craftique-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{DB: db}
}

// ProductRequest is the create/update payload.
type ProductRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       uint            `json:"stock"`
}

func (r *ProductRequest) validate() (string, bool) {
	if r.Title == "" {
		return "Title is required", false
	}
	if !models.ValidCategory(r.Category) {
		return "Unknown category", false
	}
	if r.Price.IsNegative() || r.Price.IsZero() {
		return "Price must be positive", false
	}
	return "", true
}

// CreateProduct - POST /api/products (artisan only)
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if msg, ok := req.validate(); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	stock := req.Stock
	if stock == 0 {
		stock = 1
	}

	product := models.Product{
		ArtisanID:   userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       stock,
		IsActive:    true,
	}

	if err := h.DB.Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create product"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

// GetAllProducts - GET /api/products (public browse, active only)
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	var products []models.Product
	query := h.DB.Preload("Artisan", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username, full_name")
	}).Where("is_active = ?", true)

	// Filter by Category
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	// Search across title, description and category
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR category LIKE ?", like, like, like)
	}

	// Sort by Newest
	query = query.Order("created_at desc")

	if err := query.Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.JSON(fiber.Map{"data": products})
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var product models.Product

	if err := h.DB.Preload("Artisan", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username, full_name, email")
	}).First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	return c.JSON(fiber.Map{"data": product})
}

// GetMyProducts - GET /api/my-products (artisan only)
func (h *ProductHandler) GetMyProducts(c *fiber.Ctx) error {
	userID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var products []models.Product
	if err := h.DB.Where("artisan_id = ?", userID).
		Order("created_at desc").Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.JSON(fiber.Map{"data": products})
}

// loadOwnedProduct fetches a product and checks it belongs to the caller.
func (h *ProductHandler) loadOwnedProduct(c *fiber.Ctx) (*models.Product, error) {
	id, _ := strconv.Atoi(c.Params("id"))
	userID, ok := utils.UserID(c)
	if !ok {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	if product.ArtisanID != userID {
		return nil, c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}
	return &product, nil
}

// UpdateProduct - PUT /api/products/:id (owning artisan only)
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	product, err := h.loadOwnedProduct(c)
	if product == nil {
		return err
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if msg, ok := req.validate(); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	// Live price changes never touch existing order item snapshots.
	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.Stock = req.Stock

	if err := h.DB.Save(product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product"})
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct - DELETE /api/products/:id (owning artisan only)
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	product, err := h.loadOwnedProduct(c)
	if product == nil {
		return err
	}

	if err := h.DB.Delete(product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete product"})
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// ToggleProductStatus - PATCH /api/products/:id/toggle (owning artisan only)
func (h *ProductHandler) ToggleProductStatus(c *fiber.Ctx) error {
	product, err := h.loadOwnedProduct(c)
	if product == nil {
		return err
	}

	product.IsActive = !product.IsActive
	if err := h.DB.Model(product).Update("is_active", product.IsActive).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product"})
	}

	return c.JSON(fiber.Map{"success": true, "is_active": product.IsActive})
}
