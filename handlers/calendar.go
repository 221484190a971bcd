// handlers/calendar.go - Calendar Overview
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tracker/utils"
)

type calendarDay struct {
	Index  int    `json:"index"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Done   int    `json:"done"`
	Total  int    `json:"total"`
	Today  bool   `json:"today"`
	Future bool   `json:"future"`
}

// GetCalendar returns a summary for every day in [1, effectiveLen].
func (h *Handler) GetCalendar(c *fiber.Ctx) error {
	effLen := h.tracker.EffectiveLen()
	todayIdx := h.tracker.CurrentDayIndex()

	days := make([]calendarDay, 0, effLen)
	for i := 1; i <= effLen; i++ {
		log := h.tracker.GetLog(i)
		prog := h.tracker.Progress(i)

		status := "open"
		if log.Completed {
			status = "completed"
		} else if log.Failed {
			status = "failed"
		}

		days = append(days, calendarDay{
			Index:  i,
			Date:   log.Date,
			Status: status,
			Done:   prog.Done,
			Total:  prog.Total,
			Today:  i == todayIdx,
			Future: i > todayIdx,
		})
	}

	return utils.Success(c, fiber.Map{
		"days":          days,
		"today_index":   h.tracker.ClampIndex(todayIdx),
		"effective_len": effLen,
	})
}
