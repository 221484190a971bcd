// handlers/assets.go - Cache-First Asset Serving
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"tracker/services"
	"tracker/utils"
)

// Asset serves the PWA's static files through the offline asset cache:
// cache-first, then the origin directory, then the baseline document.
func (h *Handler) Asset(c *fiber.Ctx) error {
	entry, err := h.cache.Fetch(c.Path())
	if err != nil {
		if errors.Is(err, services.ErrAssetUnavailable) {
			return utils.Error(c, fiber.StatusNotFound, "Not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to serve asset")
	}

	c.Set(fiber.HeaderContentType, entry.ContentType)
	return c.Send(entry.Body)
}
