// handlers/handlers.go - Handler wiring
package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tracker/services"
)

// Handler carries the explicit dependencies of every route: the state-owning
// tracker, the offline asset cache and the websocket hub. No package-level
// state.
type Handler struct {
	tracker  *services.Tracker
	cache    *services.AssetCache
	hub      *Hub
	validate *validator.Validate
}

// New builds the handler set.
func New(tracker *services.Tracker, cache *services.AssetCache, hub *Hub) *Handler {
	return &Handler{
		tracker:  tracker,
		cache:    cache,
		hub:      hub,
		validate: validator.New(),
	}
}

// notify tells connected UIs that persisted state changed.
func (h *Handler) notify() {
	if h.hub != nil {
		h.hub.Broadcast("state_changed")
	}
}

// dayIndex parses and clamps the :idx route parameter. The second return is
// false when the parameter is not a number; the caller owns the 400 response.
func (h *Handler) dayIndex(c *fiber.Ctx) (int, bool) {
	idx, err := strconv.Atoi(c.Params("idx"))
	if err != nil {
		return 0, false
	}
	return h.tracker.ClampIndex(idx), true
}

// confirmRequest is the body of destructive actions; they are rejected
// without an explicit confirmation flag.
type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

func (h *Handler) requireConfirm(c *fiber.Ctx) bool {
	var req confirmRequest
	if err := c.BodyParser(&req); err != nil || !req.Confirm {
		return false
	}
	return true
}
