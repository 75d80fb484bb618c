package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kshengbe-dot/This-Is-Us-Series/internal/services"
)

// GetGuidelines handles GET /api/guidelines
// @Summary Community guidelines
// @Tags Community
// @Produce json
// @Success 200 {object} services.Guidelines
// @Router /guidelines [get]
func GetGuidelines(c *fiber.Ctx) error {
	return c.JSON(services.CommunityGuidelines())
}
