// models/state.go - Challenge State Data Model
package models

import (
	"encoding/json"
	"time"
)

// StorageKey versions the persisted blob schema. Bump it when the blob
// layout changes; old rows are simply ignored on load.
const StorageKey = "rn_tracker_v5"

// FixedStartDate is the challenge anchor. It is forced back onto every
// loaded state, whatever the blob says.
const FixedStartDate = "2026-01-05"

// DefaultChallengeLen is the nominal challenge length in days.
const DefaultChallengeLen = 75

// Profile identifiers. The set is fixed for the lifetime of the stored state.
const (
	ProfileRobin = "Robin"
	ProfileNoor  = "Noor"
)

// ProfileNames lists the fixed profile set in display order.
var ProfileNames = []string{ProfileRobin, ProfileNoor}

// ChallengeState is the root state object, one per installation.
type ChallengeState struct {
	ActiveProfile string              `json:"activeProfile"`
	StartDate     string              `json:"startDate"`
	ChallengeLen  int                 `json:"challengeLen"`
	Profiles      map[string]*Profile `json:"profiles"`
}

// Profile holds one person's goals and day history. Days is sparse: an
// absent index means "not yet visited" and is materialized lazily.
type Profile struct {
	WaterGoal   int             `json:"waterGoal"`
	CalorieGoal int             `json:"calorieGoal"`
	StartWeight *float64        `json:"startWeight"`
	Days        map[int]*DayLog `json:"days"`
}

// DayLog is the persisted record of one challenge day, keyed by day index.
// Field names match the PWA localStorage schema and must not change
// without bumping StorageKey.
type DayLog struct {
	Date string `json:"date"`

	// Robin-only
	PushupsSitups bool `json:"pushupsSitups"`
	InstaMonday   bool `json:"instaMonday"`

	// both profiles
	Steps        *int     `json:"steps"`
	WaterMl      int      `json:"waterMl"`
	Calories     *int     `json:"calories"`
	WeightMonday *float64 `json:"weightMonday"`

	// Noor-only
	ReadingPages *int `json:"readingPages"`

	// completion ledger
	Completed   bool       `json:"completed"`
	Failed      bool       `json:"failed"`
	CompletedAt *time.Time `json:"completedAt"`
	FailedAt    *time.Time `json:"failedAt"`
}

// DefaultState builds a fresh ChallengeState with both profiles present.
func DefaultState() *ChallengeState {
	profiles := make(map[string]*Profile, len(ProfileNames))
	for _, name := range ProfileNames {
		profiles[name] = DefaultProfile(name)
	}
	return &ChallengeState{
		ActiveProfile: ProfileRobin,
		StartDate:     FixedStartDate,
		ChallengeLen:  DefaultChallengeLen,
		Profiles:      profiles,
	}
}

// DefaultProfile returns the default goals for a profile identifier.
func DefaultProfile(name string) *Profile {
	calorieGoal := 2200
	if name == ProfileNoor {
		calorieGoal = 1800
	}
	return &Profile{
		WaterGoal:   2000,
		CalorieGoal: calorieGoal,
		StartWeight: nil,
		Days:        make(map[int]*DayLog),
	}
}

// DefaultDayLog returns an untouched day record for the given calendar date.
func DefaultDayLog(date string) *DayLog {
	return &DayLog{Date: date, WaterMl: 0}
}

// storedState mirrors ChallengeState with pointer scalars so that a field
// absent from the blob can be told apart from a zero value during merging.
type storedState struct {
	ActiveProfile *string                   `json:"activeProfile"`
	ChallengeLen  *int                      `json:"challengeLen"`
	Profiles      map[string]*storedProfile `json:"profiles"`
}

type storedProfile struct {
	WaterGoal   *int            `json:"waterGoal"`
	CalorieGoal *int            `json:"calorieGoal"`
	StartWeight *float64        `json:"startWeight"`
	Days        map[int]*DayLog `json:"days"`
}

// DecodeState decodes a persisted blob, filling every missing piece from
// defaults. Corrupt or empty input yields a full default state; a partial
// blob keeps what it has and recovers the rest. StartDate is always forced
// back to FixedStartDate, and every known profile ends up with a non-nil
// days map.
func DecodeState(raw []byte) *ChallengeState {
	state := DefaultState()
	if len(raw) == 0 {
		return state
	}

	var stored storedState
	if err := json.Unmarshal(raw, &stored); err != nil {
		return state
	}

	if stored.ActiveProfile != nil && state.Profiles[*stored.ActiveProfile] != nil {
		state.ActiveProfile = *stored.ActiveProfile
	}
	if stored.ChallengeLen != nil && *stored.ChallengeLen > 0 {
		state.ChallengeLen = *stored.ChallengeLen
	}

	for _, name := range ProfileNames {
		sp := stored.Profiles[name]
		if sp == nil {
			continue
		}
		prof := state.Profiles[name]
		if sp.WaterGoal != nil {
			prof.WaterGoal = *sp.WaterGoal
		}
		if sp.CalorieGoal != nil {
			prof.CalorieGoal = *sp.CalorieGoal
		}
		if sp.StartWeight != nil {
			prof.StartWeight = sp.StartWeight
		}
		for idx, log := range sp.Days {
			if log == nil {
				continue
			}
			prof.Days[idx] = log
		}
	}

	return state
}

// Encode serializes the state for storage.
func (s *ChallengeState) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// Clone deep-copies the state through its JSON form, matching the blob
// round-trip the UI performs.
func (s *ChallengeState) Clone() *ChallengeState {
	raw, err := json.Marshal(s)
	if err != nil {
		return DefaultState()
	}
	return DecodeState(raw)
}
