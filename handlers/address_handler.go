package handlers

import (
	"strconv"

	"github.com/afridaasad/craftique-backend/models"
	"github.com/afridaasad/craftique-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddressHandler struct {
	DB *gorm.DB
}

func NewAddressHandler(db *gorm.DB) *AddressHandler {
	return &AddressHandler{DB: db}
}

type AddAddressRequest struct {
	Label       string `json:"label"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	IsDefault   bool   `json:"is_default"`
}

// AddAddress - POST /api/addresses (buyer only)
func (h *AddressHandler) AddAddress(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req AddAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	required := map[string]string{
		"address_line": req.AddressLine,
		"city":         req.City,
		"postal_code":  req.PostalCode,
	}
	for field, value := range required {
		if value == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required field: " + field})
		}
	}

	if req.Label == "" {
		req.Label = "Home"
	}
	if req.Country == "" {
		req.Country = "India"
	}

	address := models.Address{
		BuyerID:     buyerID,
		Label:       req.Label,
		AddressLine: req.AddressLine,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		IsDefault:   req.IsDefault,
	}

	if err := h.DB.Create(&address).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save address"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": address.ID})
}

// GetAddresses - GET /api/addresses (buyer only)
func (h *AddressHandler) GetAddresses(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var addresses []models.Address
	if err := h.DB.Where("buyer_id = ?", buyerID).Find(&addresses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch addresses"})
	}

	return c.JSON(fiber.Map{"data": addresses})
}

// DeleteAddress - DELETE /api/addresses/:id (buyer only)
func (h *AddressHandler) DeleteAddress(c *fiber.Ctx) error {
	buyerID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))

	result := h.DB.Where("id = ? AND buyer_id = ?", id, buyerID).Delete(&models.Address{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete address"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Address not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
