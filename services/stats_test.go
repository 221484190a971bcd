package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/models"
)

func TestStatsEmptyLedger(t *testing.T) {
	tr, _ := newTestTracker(t)

	s := tr.Stats()
	assert.Equal(t, models.ProfileRobin, s.Profile)
	assert.Equal(t, 3, s.DayIndex)
	assert.Equal(t, 75, s.TargetLen)
	assert.Equal(t, 75, s.EffectiveLen)
	assert.Equal(t, 0, s.Completed)
	assert.Equal(t, 0, s.Percent)
	assert.Equal(t, 0, s.Streak)
	assert.Equal(t, 0, s.Failed)
	assert.Equal(t, MetricStat{}, s.Steps)
	assert.Nil(t, s.ReadingPages, "reading is tracked for Noor only")
	assert.Equal(t, WeightDeltaNeedsConfig, s.WeightDelta.Status)
}

func TestStatsMetricAveragesSkipAbsentDays(t *testing.T) {
	tr, _ := newTestTracker(t)

	// Steps on days 1 and 3, nothing on day 2: average over two days.
	tr.GetLog(1).Steps = intPtr(5000)
	tr.GetLog(3).Steps = intPtr(7000)

	s := tr.Stats()
	assert.Equal(t, MetricStat{Total: 12000, Average: 6000, Days: 2}, s.Steps)
}

func TestStatsWaterCountsOnlyNonZeroDays(t *testing.T) {
	tr, _ := newTestTracker(t)

	tr.GetLog(1).WaterMl = 2000
	tr.GetLog(2).WaterMl = 0
	tr.GetLog(3).WaterMl = 1000

	s := tr.Stats()
	assert.Equal(t, MetricStat{Total: 3000, Average: 1500, Days: 2}, s.Water)
}

func TestStatsStreakStopsAtGap(t *testing.T) {
	tr, _ := newTestTracker(t)

	tr.GetLog(2).Completed = true
	tr.GetLog(3).Completed = true

	s := tr.Stats()
	assert.Equal(t, 2, s.Streak)

	// A non-completed day at the cursor kills the streak entirely.
	tr.GetLog(3).Completed = false
	tr.GetLog(3).Failed = true
	s = tr.Stats()
	assert.Equal(t, 0, s.Streak)
}

func TestStatsPercentAgainstTargetLen(t *testing.T) {
	tr, _ := newTestTracker(t)

	tr.GetLog(1).Completed = true
	tr.GetLog(2).Completed = true
	tr.GetLog(3).Completed = true

	s := tr.Stats()
	// 3 of 75 days.
	assert.Equal(t, 3, s.Completed)
	assert.Equal(t, 4, s.Percent)

	// A failed day extends the effective length but not the denominator.
	require.NoError(t, tr.FailDay(5))
	s = tr.Stats()
	assert.Equal(t, 76, s.EffectiveLen)
	assert.Equal(t, 75, s.TargetLen)
	assert.Equal(t, 4, s.Percent)
	assert.Equal(t, 1, s.Failed)
}

func TestStatsWeightDelta(t *testing.T) {
	tr, _ := newTestTracker(t)

	require.NoError(t, tr.UpdateSettings(2000, 2200, floatPtr(85.0)))
	s := tr.Stats()
	assert.Equal(t, WeightDeltaNoEntry, s.WeightDelta.Status)

	// Day 1 (2026-01-05) and day 8 (2026-01-12) are both Mondays; the
	// later weigh-in wins.
	tr.GetLog(1).WeightMonday = floatPtr(84.8)
	tr.GetLog(8).WeightMonday = floatPtr(83.26)

	s = tr.Stats()
	assert.Equal(t, WeightDeltaOK, s.WeightDelta.Status)
	assert.InDelta(t, 1.7, s.WeightDelta.Delta, 1e-9, "rounded to one decimal")
}

func TestStatsReadingPagesForNoor(t *testing.T) {
	tr, _ := newTestTracker(t)
	require.NoError(t, tr.SwitchProfile(models.ProfileNoor))

	tr.GetLog(1).ReadingPages = intPtr(12)
	tr.GetLog(2).ReadingPages = intPtr(8)

	s := tr.Stats()
	require.NotNil(t, s.ReadingPages)
	assert.Equal(t, MetricStat{Total: 20, Average: 10, Days: 2}, *s.ReadingPages)
}
