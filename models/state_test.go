package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultState(t *testing.T) {
	state := DefaultState()

	assert.Equal(t, ProfileRobin, state.ActiveProfile)
	assert.Equal(t, FixedStartDate, state.StartDate)
	assert.Equal(t, DefaultChallengeLen, state.ChallengeLen)

	require.Contains(t, state.Profiles, ProfileRobin)
	require.Contains(t, state.Profiles, ProfileNoor)
	assert.Equal(t, 2200, state.Profiles[ProfileRobin].CalorieGoal)
	assert.Equal(t, 1800, state.Profiles[ProfileNoor].CalorieGoal)
	assert.Equal(t, 2000, state.Profiles[ProfileRobin].WaterGoal)
	assert.Nil(t, state.Profiles[ProfileRobin].StartWeight)
	assert.NotNil(t, state.Profiles[ProfileNoor].Days)
}

func TestDecodeStateCorruptInput(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, []byte("not json"), []byte(`"a string"`)} {
		state := DecodeState(raw)
		require.NotNil(t, state)
		assert.Equal(t, ProfileRobin, state.ActiveProfile)
		assert.Equal(t, FixedStartDate, state.StartDate)
		assert.NotNil(t, state.Profiles[ProfileRobin].Days)
	}
}

func TestDecodeStatePartialBlobMergesDefaults(t *testing.T) {
	raw := []byte(`{
		"activeProfile": "Noor",
		"profiles": {
			"Noor": {
				"waterGoal": 2500,
				"days": {"3": {"date": "2026-01-07", "waterMl": 1200, "failed": true}}
			}
		}
	}`)

	state := DecodeState(raw)

	assert.Equal(t, ProfileNoor, state.ActiveProfile)
	assert.Equal(t, DefaultChallengeLen, state.ChallengeLen, "missing length recovers default")

	noor := state.Profiles[ProfileNoor]
	assert.Equal(t, 2500, noor.WaterGoal)
	assert.Equal(t, 1800, noor.CalorieGoal, "missing goal recovers default")
	require.Contains(t, noor.Days, 3)
	assert.Equal(t, 1200, noor.Days[3].WaterMl)
	assert.True(t, noor.Days[3].Failed)

	// The other profile comes back whole even when the blob omits it.
	robin := state.Profiles[ProfileRobin]
	require.NotNil(t, robin)
	assert.Equal(t, 2200, robin.CalorieGoal)
	assert.NotNil(t, robin.Days)
}

func TestDecodeStateForcesAnchorDate(t *testing.T) {
	state := DecodeState([]byte(`{"startDate": "2024-06-01"}`))
	assert.Equal(t, FixedStartDate, state.StartDate)
}

func TestDecodeStateRejectsUnknownActiveProfile(t *testing.T) {
	state := DecodeState([]byte(`{"activeProfile": "Alex"}`))
	assert.Equal(t, ProfileRobin, state.ActiveProfile)
}

func TestDecodeStateIgnoresNonPositiveLength(t *testing.T) {
	state := DecodeState([]byte(`{"challengeLen": 0}`))
	assert.Equal(t, DefaultChallengeLen, state.ChallengeLen)

	state = DecodeState([]byte(`{"challengeLen": -3}`))
	assert.Equal(t, DefaultChallengeLen, state.ChallengeLen)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	state := DefaultState()
	state.ActiveProfile = ProfileNoor
	w := 61.5
	state.Profiles[ProfileNoor].StartWeight = &w
	steps := 8000
	state.Profiles[ProfileNoor].Days[2] = &DayLog{Date: "2026-01-06", Steps: &steps, WaterMl: 1750}

	raw, err := state.Encode()
	require.NoError(t, err)

	got := DecodeState(raw)
	assert.Equal(t, ProfileNoor, got.ActiveProfile)
	require.NotNil(t, got.Profiles[ProfileNoor].StartWeight)
	assert.Equal(t, 61.5, *got.Profiles[ProfileNoor].StartWeight)
	require.Contains(t, got.Profiles[ProfileNoor].Days, 2)
	assert.Equal(t, 8000, *got.Profiles[ProfileNoor].Days[2].Steps)
	assert.Equal(t, 1750, got.Profiles[ProfileNoor].Days[2].WaterMl)
}

func TestCloneIsIndependent(t *testing.T) {
	state := DefaultState()
	state.Profiles[ProfileRobin].Days[1] = &DayLog{Date: "2026-01-05", WaterMl: 500}

	clone := state.Clone()
	clone.ActiveProfile = ProfileNoor
	clone.Profiles[ProfileRobin].Days[1].WaterMl = 9999
	clone.Profiles[ProfileRobin].WaterGoal = 1

	assert.Equal(t, ProfileRobin, state.ActiveProfile)
	assert.Equal(t, 500, state.Profiles[ProfileRobin].Days[1].WaterMl)
	assert.Equal(t, 2000, state.Profiles[ProfileRobin].WaterGoal)
}
