// handlers/day.go - Day View and Day Actions
package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"tracker/services"
	"tracker/utils"
)

// GetDay returns the day record, task list and progress for one day index.
// Indices are clamped into [0, effectiveLen]; index 0 is the "before start"
// view and carries no tasks and no stored record.
func (h *Handler) GetDay(c *fiber.Ctx) error {
	idx, ok := h.dayIndex(c)
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid day index")
	}

	if idx < 1 {
		return utils.Success(c, fiber.Map{
			"index":      idx,
			"pre_start":  true,
			"start_date": services.FormatDate(h.tracker.StartDate()),
		})
	}

	log := h.tracker.GetLog(idx)
	prog := h.tracker.Progress(idx)

	return utils.Success(c, fiber.Map{
		"index":         idx,
		"pre_start":     false,
		"effective_len": h.tracker.EffectiveLen(),
		"relation":      relationToToday(idx, h.tracker.CurrentDayIndex()),
		"log":           log,
		"progress":      prog,
		"can_complete":  prog.AllDone && !log.Completed && !log.Failed,
	})
}

// PatchDay merges task-value fields into the day record and persists. It
// returns only the refreshed progress counts; full recomputation stays a
// separate read so rapid edits stay cheap.
func (h *Handler) PatchDay(c *fiber.Ctx) error {
	idx, ok := h.dayIndex(c)
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid day index")
	}
	if idx < 1 {
		return utils.Error(c, fiber.StatusBadRequest, "The challenge hasn't started yet")
	}

	var patch map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &patch); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.tracker.ApplyPatch(idx, patch); err != nil {
		if errors.Is(err, services.ErrInvalidPatch) {
			return utils.Error(c, fiber.StatusBadRequest, err.Error())
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save day")
	}

	h.notify()

	log := h.tracker.GetLog(idx)
	prog := h.tracker.Progress(idx)
	return utils.Success(c, fiber.Map{
		"done":         prog.Done,
		"total":        prog.Total,
		"can_complete": prog.AllDone && !log.Completed && !log.Failed,
	})
}

// AddWater bumps the water counter for a day.
func (h *Handler) AddWater(c *fiber.Ctx) error {
	idx, ok := h.dayIndex(c)
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid day index")
	}
	if idx < 1 {
		return utils.Error(c, fiber.StatusBadRequest, "The challenge hasn't started yet")
	}

	var req struct {
		Delta int  `json:"delta"`
		Reset bool `json:"reset"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	waterMl, err := h.tracker.AddWater(idx, req.Delta, req.Reset)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save day")
	}

	h.notify()

	prog := h.tracker.Progress(idx)
	return utils.Success(c, fiber.Map{
		"water_ml": waterMl,
		"done":     prog.Done,
		"total":    prog.Total,
	})
}

// CompleteDay marks a day COMPLETED after verifying every required task.
func (h *Handler) CompleteDay(c *fiber.Ctx) error {
	idx, ok := h.dayIndex(c)
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid day index")
	}
	if idx < 1 {
		return utils.Error(c, fiber.StatusBadRequest, "The challenge hasn't started yet")
	}

	if err := h.tracker.CompleteDay(idx); err != nil {
		switch {
		case errors.Is(err, services.ErrTasksIncomplete):
			return utils.Error(c, fiber.StatusConflict, "Not everything is complete yet")
		case errors.Is(err, services.ErrDayFailed):
			return utils.Error(c, fiber.StatusConflict, "Day is marked as FAIL")
		default:
			return utils.Error(c, fiber.StatusInternalServerError, "Failed to complete day")
		}
	}

	h.notify()
	return utils.Success(c, fiber.Map{"log": h.tracker.GetLog(idx)})
}

// FailDay marks a day FAILED. Requires explicit confirmation; extends the
// effective challenge length by one.
func (h *Handler) FailDay(c *fiber.Ctx) error {
	idx, ok := h.dayIndex(c)
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid day index")
	}
	if !h.requireConfirm(c) {
		return utils.Error(c, fiber.StatusBadRequest, "Confirmation required")
	}

	if err := h.tracker.FailDay(idx); err != nil {
		if errors.Is(err, services.ErrBeforeStart) {
			return utils.Error(c, fiber.StatusBadRequest, "The challenge hasn't started yet — today can't be a FAIL")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save day")
	}

	h.notify()
	return utils.Success(c, fiber.Map{
		"log":           h.tracker.GetLog(idx),
		"effective_len": h.tracker.EffectiveLen(),
	})
}

// ResetDay replaces a day with a fresh default record. Requires explicit
// confirmation. Resetting a failed day shrinks the effective length again.
func (h *Handler) ResetDay(c *fiber.Ctx) error {
	idx, ok := h.dayIndex(c)
	if !ok {
		return utils.Error(c, fiber.StatusBadRequest, "Invalid day index")
	}
	if idx < 1 {
		return utils.Error(c, fiber.StatusBadRequest, "The challenge hasn't started yet")
	}
	if !h.requireConfirm(c) {
		return utils.Error(c, fiber.StatusBadRequest, "Confirmation required")
	}

	if err := h.tracker.ResetLog(idx); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to reset day")
	}

	h.notify()
	return utils.Success(c, fiber.Map{
		"log":           h.tracker.GetLog(idx),
		"effective_len": h.tracker.EffectiveLen(),
	})
}

func relationToToday(idx, todayIdx int) string {
	switch {
	case idx == todayIdx:
		return "today"
	case idx == todayIdx+1:
		return "tomorrow"
	case idx > todayIdx:
		return "future"
	default:
		return "past"
	}
}
