// handlers/settings.go - Profile Settings
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tracker/services"
	"tracker/utils"
)

type settingsRequest struct {
	WaterGoal   int      `json:"waterGoal" validate:"min=0,max=20000"`
	CalorieGoal int      `json:"calorieGoal" validate:"min=0,max=10000"`
	StartWeight *float64 `json:"startWeight" validate:"omitempty,gt=0,lt=500"`
}

type profileRequest struct {
	Profile string `json:"profile" validate:"required"`
}

// GetSettings returns the active profile's goals.
func (h *Handler) GetSettings(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{"settings": h.tracker.Settings()})
}

// SaveSettings updates the active profile's goals and start weight.
func (h *Handler) SaveSettings(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid settings: "+err.Error())
	}

	if err := h.tracker.UpdateSettings(req.WaterGoal, req.CalorieGoal, req.StartWeight); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save settings")
	}

	h.notify()
	return utils.Success(c, fiber.Map{"settings": h.tracker.Settings()})
}

// SwitchProfile changes the active profile.
func (h *Handler) SwitchProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Profile name required")
	}

	if err := h.tracker.SwitchProfile(req.Profile); err != nil {
		if errors.Is(err, services.ErrUnknownProfile) {
			return utils.Error(c, fiber.StatusBadRequest, "Unknown profile")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to switch profile")
	}

	h.notify()
	return utils.Success(c, fiber.Map{"active_profile": h.tracker.ActiveProfile()})
}

// WipeAll resets everything to defaults. Requires explicit confirmation; a
// snapshot is written first so the action is recoverable.
func (h *Handler) WipeAll(c *fiber.Ctx) error {
	if !h.requireConfirm(c) {
		return utils.Error(c, fiber.StatusBadRequest, "Confirmation required")
	}

	if err := h.tracker.WipeAll(); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to wipe state")
	}

	h.notify()
	return utils.Success(c, fiber.Map{})
}
