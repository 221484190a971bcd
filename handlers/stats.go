// handlers/stats.go - Statistics
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tracker/utils"
)

// GetStats returns the aggregated statistics for the active profile.
func (h *Handler) GetStats(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{"stats": h.tracker.Stats()})
}
