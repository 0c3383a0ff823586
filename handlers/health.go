package handlers

import "github.com/gofiber/fiber/v2"

// HandleHealthCheck is a liveness probe.
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HandleHealthCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
