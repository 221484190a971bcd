// handlers/snapshots.go - State Snapshots
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"tracker/utils"
)

// Export returns the full state blob, the same shape statectl exports, so
// the UI can offer a backup download.
func (h *Handler) Export(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{"state": h.tracker.ExportState()})
}

// CreateSnapshot writes an on-demand snapshot of the current state.
func (h *Handler) CreateSnapshot(c *fiber.Ctx) error {
	snap, err := h.tracker.TakeSnapshot()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create snapshot")
	}

	return utils.Success(c, fiber.Map{
		"id":         snap.ID,
		"created_at": snap.CreatedAt,
	})
}

// ListSnapshots returns stored snapshots, newest first.
func (h *Handler) ListSnapshots(c *fiber.Ctx) error {
	snaps, err := h.tracker.ListSnapshots()
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to list snapshots")
	}

	return utils.Success(c, fiber.Map{"snapshots": snaps})
}
