// handlers/state.go - Header / Session State
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tracker/services"
	"tracker/utils"
)

// GetState returns the header summary: active profile, today's day index and
// the challenge bounds.
func (h *Handler) GetState(c *fiber.Ctx) error {
	todayIdx := h.tracker.CurrentDayIndex()
	effLen := h.tracker.EffectiveLen()

	return utils.Success(c, fiber.Map{
		"active_profile": h.tracker.ActiveProfile(),
		"start_date":     services.FormatDate(h.tracker.StartDate()),
		"target_len":     h.tracker.TargetLen(),
		"effective_len":  effLen,
		"today_index":    h.tracker.ClampIndex(todayIdx),
		"pre_start":      todayIdx < 1,
	})
}
