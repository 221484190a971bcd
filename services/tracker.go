// services/tracker.go - Tracker Service (state owner)
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"tracker/models"
)

// Transition and input errors surfaced to the API layer as user notices.
var (
	ErrTasksIncomplete = errors.New("not all tasks are complete")
	ErrDayFailed       = errors.New("day is marked as FAIL")
	ErrBeforeStart     = errors.New("day is before the challenge start")
	ErrUnknownProfile  = errors.New("unknown profile")
	ErrInvalidPatch    = errors.New("invalid patch payload")
)

// waterMlMax caps the water counter, mirroring the UI's input clamp.
const waterMlMax = 20000

// Store is the persistence gateway the Tracker writes through. Load never
// fails on corrupt data; it falls back to defaults and only errors when the
// backing store itself is unreachable.
type Store interface {
	Load() (*models.ChallengeState, error)
	Save(*models.ChallengeState) error
	Snapshot(state *models.ChallengeState, reason string) (*models.StateSnapshot, error)
	ListSnapshots() ([]models.StateSnapshot, error)
}

// Tracker owns the in-memory ChallengeState and every read/write path to it.
// All mutations are whole-state read-modify-write followed by a synchronous
// persist, so callers observe them atomically.
type Tracker struct {
	mu    sync.Mutex
	store Store
	state *models.ChallengeState
	start time.Time

	// now is swapped in tests to pin the current day index.
	now func() time.Time
}

// NewTracker loads the persisted state and returns the state owner.
func NewTracker(store Store) (*Tracker, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	start, err := ParseDate(state.StartDate)
	if err != nil {
		// The store forces the fixed anchor on load; a bad date here means
		// the anchor constant itself is broken.
		return nil, fmt.Errorf("parse start date %q: %w", state.StartDate, err)
	}

	return &Tracker{
		store: store,
		state: state,
		start: start,
		now:   time.Now,
	}, nil
}

func (t *Tracker) persist() error {
	if err := t.store.Save(t.state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// profile returns the active profile, falling back to defaults if the
// stored active name was somehow invalidated.
func (t *Tracker) profile() *models.Profile {
	prof := t.state.Profiles[t.state.ActiveProfile]
	if prof == nil {
		log.Printf("active profile %q missing, restoring defaults", t.state.ActiveProfile)
		prof = models.DefaultProfile(t.state.ActiveProfile)
		t.state.Profiles[t.state.ActiveProfile] = prof
	}
	return prof
}

// ActiveProfile returns the active profile name.
func (t *Tracker) ActiveProfile() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.ActiveProfile
}

// StartDate returns the fixed challenge anchor date.
func (t *Tracker) StartDate() time.Time {
	return t.start
}

// TargetLen returns the nominal challenge length.
func (t *Tracker) TargetLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.targetLen()
}

func (t *Tracker) targetLen() int {
	if t.state.ChallengeLen > 0 {
		return t.state.ChallengeLen
	}
	return models.DefaultChallengeLen
}

// failCount counts failed days with index ≥ 1 for the active profile.
func (t *Tracker) failCount() int {
	c := 0
	for idx, l := range t.profile().Days {
		if idx >= 1 && l != nil && l.Failed {
			c++
		}
	}
	return c
}

// EffectiveLen is the challenge length after extending one day per failed
// day. It is recomputed from the ledger on every call; clearing a fail (via
// per-day reset) shrinks it again, and callers get their indices clamped
// against the new value on the next read.
func (t *Tracker) EffectiveLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.effectiveLen()
}

func (t *Tracker) effectiveLen() int {
	return t.targetLen() + t.failCount()
}

// CurrentDayIndex maps today's date to a day index. May be ≤ 0 before the
// challenge starts and may exceed EffectiveLen after it ends.
func (t *Tracker) CurrentDayIndex() int {
	return DayIndexFor(t.now(), t.start)
}

// ClampIndex clamps an externally supplied index into [0, EffectiveLen].
// Index 0 is kept addressable as the "before start" view.
func (t *Tracker) ClampIndex(idx int) int {
	return clamp(idx, 0, t.EffectiveLen())
}

// GetLog returns the day record for idx, materializing a default one on
// first access. Materialization is idempotent: the default content depends
// only on the index's date.
func (t *Tracker) GetLog(idx int) *models.DayLog {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.getLog(idx)
}

func (t *Tracker) getLog(idx int) *models.DayLog {
	prof := t.profile()
	if l, ok := prof.Days[idx]; ok && l != nil {
		return l
	}
	fresh := models.DefaultDayLog(FormatDate(DateForDayIndex(idx, t.start)))
	prof.Days[idx] = fresh
	return fresh
}

// SetLog unconditionally replaces the record for idx and persists.
func (t *Tracker) SetLog(idx int, l *models.DayLog) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile().Days[idx] = l
	return t.persist()
}

// ResetLog replaces the record for idx with a fresh default for the same
// date, returning the day to OPEN and all task values to their defaults.
func (t *Tracker) ResetLog(idx int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	date := FormatDate(DateForDayIndex(idx, t.start))
	t.profile().Days[idx] = models.DefaultDayLog(date)
	return t.persist()
}

// ApplyPatch merges task-value fields into a day record and persists. It is
// the cheap half of the patch/recompute split: no derived state is touched,
// the caller decides when to re-read progress. Unknown keys are rejected;
// invalid numeric values are stored as absent.
func (t *Tracker) ApplyPatch(idx int, patch map[string]json.RawMessage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	l := t.getLog(idx)
	for key, raw := range patch {
		switch key {
		case models.TaskIDPushupsSitups:
			l.PushupsSitups = boolField(raw)
		case models.TaskIDInstaMonday:
			l.InstaMonday = boolField(raw)
		case models.TaskIDSteps:
			l.Steps = intField(raw)
		case models.TaskIDCalories:
			l.Calories = intField(raw)
		case models.TaskIDReadingPages:
			l.ReadingPages = intField(raw)
		case models.TaskIDWeightMonday:
			l.WeightMonday = floatField(raw)
		case models.TaskIDWater:
			l.WaterMl = clamp(intOrZero(raw), 0, waterMlMax)
		default:
			return fmt.Errorf("%w: unknown field %q", ErrInvalidPatch, key)
		}
	}

	return t.persist()
}

// AddWater bumps the water counter by delta ml (negative allowed), clamped
// to [0, waterMlMax]. A reset sets it back to zero.
func (t *Tracker) AddWater(idx, delta int, reset bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	l := t.getLog(idx)
	if reset {
		l.WaterMl = 0
	} else {
		l.WaterMl = clamp(l.WaterMl+delta, 0, waterMlMax)
	}
	return l.WaterMl, t.persist()
}

// Progress evaluates the active profile's tasks for the given day.
func (t *Tracker) Progress(idx int) Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ProgressFor(t.state.ActiveProfile, t.profile(), t.getLog(idx))
}

// CompleteDay marks a day COMPLETED. Only an explicit caller action lands
// here; completion is never inferred from task edits. Preconditions: every
// required task done and the day not FAILED.
func (t *Tracker) CompleteDay(idx int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	l := t.getLog(idx)
	if l.Failed {
		return ErrDayFailed
	}
	prog := ProgressFor(t.state.ActiveProfile, t.profile(), l)
	if !prog.AllDone {
		return ErrTasksIncomplete
	}

	now := t.now().UTC()
	l.Completed = true
	l.Failed = false
	l.FailedAt = nil
	l.CompletedAt = &now
	return t.persist()
}

// FailDay marks a day FAILED, clearing any completion. A day before the
// start date cannot be failed; task state is irrelevant. Each failed day
// extends the effective challenge length by one.
func (t *Tracker) FailDay(idx int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if idx < 1 {
		return ErrBeforeStart
	}

	l := t.getLog(idx)
	now := t.now().UTC()
	l.Failed = true
	l.Completed = false
	l.CompletedAt = nil
	l.FailedAt = &now
	return t.persist()
}

// SettingsView is the mutable per-profile configuration.
type SettingsView struct {
	ActiveProfile string   `json:"active_profile"`
	WaterGoal     int      `json:"water_goal"`
	CalorieGoal   int      `json:"calorie_goal"`
	StartWeight   *float64 `json:"start_weight"`
}

// Settings returns the active profile's goals.
func (t *Tracker) Settings() SettingsView {
	t.mu.Lock()
	defer t.mu.Unlock()
	prof := t.profile()
	return SettingsView{
		ActiveProfile: t.state.ActiveProfile,
		WaterGoal:     prof.WaterGoal,
		CalorieGoal:   prof.CalorieGoal,
		StartWeight:   prof.StartWeight,
	}
}

// UpdateSettings replaces the active profile's goals and start weight.
// Values arrive pre-validated from the API layer.
func (t *Tracker) UpdateSettings(waterGoal, calorieGoal int, startWeight *float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prof := t.profile()
	prof.WaterGoal = waterGoal
	prof.CalorieGoal = calorieGoal
	prof.StartWeight = startWeight
	return t.persist()
}

// SwitchProfile changes the active profile. Only names from the fixed
// profile set are accepted.
func (t *Tracker) SwitchProfile(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Profiles[name] == nil {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	t.state.ActiveProfile = name
	return t.persist()
}

// WipeAll snapshots the current state, then recreates everything from
// defaults. The snapshot makes the one destructive whole-state action
// recoverable.
func (t *Tracker) WipeAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.store.Snapshot(t.state, "wipe"); err != nil {
		return fmt.Errorf("snapshot before wipe: %w", err)
	}

	t.state = models.DefaultState()
	return t.persist()
}

// ExportState returns a detached copy of the whole state for backup
// downloads. Later mutations never show through the copy.
func (t *Tracker) ExportState() *models.ChallengeState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// TakeSnapshot writes an on-demand snapshot of the current state.
func (t *Tracker) TakeSnapshot() (*models.StateSnapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Snapshot(t.state, "manual")
}

// ListSnapshots returns stored snapshots, newest first.
func (t *Tracker) ListSnapshots() ([]models.StateSnapshot, error) {
	return t.store.ListSnapshots()
}

// patch field decoding: JSON null and unparseable values both land as
// "absent", matching how the UI treats emptied inputs.

func boolField(raw json.RawMessage) bool {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v
}

func floatField(raw json.RawMessage) *float64 {
	var v *float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

func intField(raw json.RawMessage) *int {
	f := floatField(raw)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

func intOrZero(raw json.RawMessage) int {
	if n := intField(raw); n != nil {
		return *n
	}
	return 0
}
