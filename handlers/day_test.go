package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDayReturnsLogAndProgress(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/days/2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["index"])
	assert.Equal(t, false, body["pre_start"])
	assert.Equal(t, false, body["can_complete"])

	log := body["log"].(map[string]interface{})
	assert.Equal(t, "2026-01-06", log["date"])

	prog := body["progress"].(map[string]interface{})
	// Robin on a weekday: exercise, steps, water, calories.
	assert.Equal(t, float64(4), prog["total"])
	assert.Equal(t, float64(0), prog["done"])
}

func TestGetDayZeroIsPreStart(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/days/0", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["pre_start"])
	assert.Equal(t, "2026-01-05", body["start_date"])
	assert.Nil(t, body["log"])
}

func TestGetDayClampsOutOfRangeIndex(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/days/500", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(75), body["index"])
}

func TestGetDayBadIndex(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/days/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid day index", body["error"])
	// The handler must not fall through to the day-0 view.
	assert.NotContains(t, body, "pre_start")
	assert.NotContains(t, body, "index")
}

func TestDayActionsRejectBadIndex(t *testing.T) {
	app, tracker := newTestApp(t)

	routes := []struct {
		method, target, payload string
	}{
		{http.MethodPatch, "/api/days/abc", `{"steps":7000}`},
		{http.MethodPost, "/api/days/abc/water", `{"delta":250}`},
		{http.MethodPost, "/api/days/abc/complete", ""},
		{http.MethodPost, "/api/days/abc/fail", `{"confirm":true}`},
		{http.MethodPost, "/api/days/abc/reset", `{"confirm":true}`},
	}
	for _, r := range routes {
		status, body := doJSON(t, app, r.method, r.target, r.payload)
		assert.Equal(t, http.StatusBadRequest, status, "%s %s", r.method, r.target)
		assert.Equal(t, false, body["success"], "%s %s", r.method, r.target)
		assert.Equal(t, "Invalid day index", body["error"], "%s %s", r.method, r.target)
	}

	// Nothing was applied to day 0 along the way.
	assert.Equal(t, 75, tracker.EffectiveLen())
	assert.Equal(t, 0, tracker.GetLog(0).WaterMl)
}

func TestPatchDayUpdatesProgress(t *testing.T) {
	app, tracker := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPatch, "/api/days/2",
		`{"pushupsSitups":true,"steps":7000}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["done"])
	assert.Equal(t, float64(4), body["total"])
	assert.Equal(t, false, body["can_complete"])

	l := tracker.GetLog(2)
	assert.True(t, l.PushupsSitups)
	require.NotNil(t, l.Steps)
	assert.Equal(t, 7000, *l.Steps)
}

func TestPatchDayRejectsUnknownField(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPatch, "/api/days/2", `{"bogus":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestAddWaterEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/days/2/water", `{"delta":250}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(250), body["water_ml"])

	status, body = doJSON(t, app, http.MethodPost, "/api/days/2/water", `{"reset":true}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["water_ml"])
}

func TestCompleteDayFlow(t *testing.T) {
	app, _ := newTestApp(t)

	// Incomplete tasks are a conflict.
	status, body := doJSON(t, app, http.MethodPost, "/api/days/2/complete", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Not everything is complete yet", body["error"])

	doJSON(t, app, http.MethodPatch, "/api/days/2",
		`{"pushupsSitups":true,"steps":7000,"waterMl":2000,"calories":1900}`)

	status, body = doJSON(t, app, http.MethodPost, "/api/days/2/complete", "")
	require.Equal(t, http.StatusOK, status)
	log := body["log"].(map[string]interface{})
	assert.Equal(t, true, log["completed"])
	assert.NotNil(t, log["completedAt"])
}

func TestCompleteDayRejectedWhenFailed(t *testing.T) {
	app, _ := newTestApp(t)

	doJSON(t, app, http.MethodPatch, "/api/days/2",
		`{"pushupsSitups":true,"steps":7000,"waterMl":2000,"calories":1900}`)
	status, _ := doJSON(t, app, http.MethodPost, "/api/days/2/fail", `{"confirm":true}`)
	require.Equal(t, http.StatusOK, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/days/2/complete", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Day is marked as FAIL", body["error"])
}

func TestFailDayRequiresConfirmation(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/days/2/fail", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Confirmation required", body["error"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/days/2/fail", `{"confirm":false}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFailDayExtendsEffectiveLen(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/days/2/fail", `{"confirm":true}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(76), body["effective_len"])

	log := body["log"].(map[string]interface{})
	assert.Equal(t, true, log["failed"])
}

func TestFailDayBeforeStart(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := doJSON(t, app, http.MethodPost, "/api/days/0/fail", `{"confirm":true}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "can't be a FAIL")
}

func TestResetDayRestoresDefaults(t *testing.T) {
	app, tracker := newTestApp(t)

	doJSON(t, app, http.MethodPost, "/api/days/2/fail", `{"confirm":true}`)
	require.Equal(t, 76, tracker.EffectiveLen())

	status, body := doJSON(t, app, http.MethodPost, "/api/days/2/reset", `{"confirm":true}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(75), body["effective_len"])

	log := body["log"].(map[string]interface{})
	assert.Equal(t, false, log["failed"])
	assert.Equal(t, "2026-01-06", log["date"])
}
