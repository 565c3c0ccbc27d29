package handlers

import (
	"github.com/afridaasad/craftique-backend/internal/analytics"
	"github.com/afridaasad/craftique-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	Analytics *analytics.Service
}

func NewAnalyticsHandler(analyticsSvc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{Analytics: analyticsSvc}
}

// ArtisanDashboard - GET /api/artisan/analytics (artisan only)
func (h *AnalyticsHandler) ArtisanDashboard(c *fiber.Ctx) error {
	artisanID, ok := utils.UserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	report, err := h.Analytics.ArtisanDashboard(c.Context(), artisanID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute analytics"})
	}

	return c.JSON(report)
}

// AdminDashboard - GET /api/admin/analytics (admin only)
func (h *AnalyticsHandler) AdminDashboard(c *fiber.Ctx) error {
	report, err := h.Analytics.AdminDashboard(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute analytics"})
	}

	return c.JSON(report)
}
