package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"tracker/models"
	"tracker/services"
)

// memStore backs handler tests with an in-memory persistence gateway.
type memStore struct {
	state     *models.ChallengeState
	snapshots []models.StateSnapshot
}

func (s *memStore) Load() (*models.ChallengeState, error) {
	return s.state, nil
}

func (s *memStore) Save(state *models.ChallengeState) error {
	s.state = state
	return nil
}

func (s *memStore) Snapshot(state *models.ChallengeState, reason string) (*models.StateSnapshot, error) {
	payload, err := state.Encode()
	if err != nil {
		return nil, err
	}
	snap := models.StateSnapshot{ID: uuid.New().String(), Reason: reason, Payload: payload}
	s.snapshots = append(s.snapshots, snap)
	return &snap, nil
}

func (s *memStore) ListSnapshots() ([]models.StateSnapshot, error) {
	return s.snapshots, nil
}

// newTestApp wires the API routes the way the server does, without the asset
// cache or websocket hub.
func newTestApp(t *testing.T) (*fiber.App, *services.Tracker) {
	t.Helper()

	tracker, err := services.NewTracker(&memStore{state: models.DefaultState()})
	require.NoError(t, err)

	h := New(tracker, nil, nil)
	app := fiber.New()

	api := app.Group("/api")
	api.Get("/state", h.GetState)

	days := api.Group("/days")
	days.Get("/:idx", h.GetDay)
	days.Patch("/:idx", h.PatchDay)
	days.Post("/:idx/water", h.AddWater)
	days.Post("/:idx/complete", h.CompleteDay)
	days.Post("/:idx/fail", h.FailDay)
	days.Post("/:idx/reset", h.ResetDay)

	api.Get("/calendar", h.GetCalendar)
	api.Get("/stats", h.GetStats)
	api.Get("/settings", h.GetSettings)
	api.Put("/settings", h.SaveSettings)
	api.Put("/settings/profile", h.SwitchProfile)
	api.Post("/wipe", h.WipeAll)
	api.Get("/snapshots", h.ListSnapshots)
	api.Post("/snapshots", h.CreateSnapshot)
	api.Get("/export", h.Export)

	return app, tracker
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp.StatusCode, decoded
}
