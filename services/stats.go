// services/stats.go - Statistics Aggregator
package services

import (
	"math"

	"tracker/models"
)

// Weight delta status values.
const (
	WeightDeltaOK          = "ok"
	WeightDeltaNeedsConfig = "needs_start_weight"
	WeightDeltaNoEntry     = "no_weight_yet"
)

// MetricStat is the total and rounded average of one numeric metric,
// computed only over days where the metric has a value.
type MetricStat struct {
	Total   int `json:"total"`
	Average int `json:"average"`
	Days    int `json:"days"`
}

// WeightDelta reports weight lost since the configured start weight.
// A positive delta means weight lost.
type WeightDelta struct {
	Status string  `json:"status"`
	Delta  float64 `json:"delta"`
}

// StatsSummary aggregates the active profile's whole day ledger.
type StatsSummary struct {
	Profile      string      `json:"profile"`
	DayIndex     int         `json:"day_index"`
	TargetLen    int         `json:"target_len"`
	EffectiveLen int         `json:"effective_len"`
	Completed    int         `json:"completed"`
	Percent      int         `json:"percent"`
	Streak       int         `json:"streak"`
	Failed       int         `json:"failed"`
	Steps        MetricStat  `json:"steps"`
	Water        MetricStat  `json:"water"`
	Calories     MetricStat  `json:"calories"`
	ReadingPages *MetricStat `json:"reading_pages,omitempty"`
	WeightDelta  WeightDelta `json:"weight_delta"`
}

// Stats scans all day records of the active profile over [1, EffectiveLen]
// and computes running totals, averages, the current streak and the weight
// delta since start. Completion percentage is measured against the nominal
// target length, not the extended one.
func (t *Tracker) Stats() StatsSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	profileName := t.state.ActiveProfile
	prof := t.profile()
	effLen := t.effectiveLen()
	targetLen := t.targetLen()
	todayIdx := DayIndexFor(t.now(), t.start)

	summary := StatsSummary{
		Profile:      profileName,
		DayIndex:     clamp(todayIdx, 0, effLen),
		TargetLen:    targetLen,
		EffectiveLen: effLen,
	}

	var steps, water, calories, pages metricAcc
	var lastMondayWeight *float64

	for i := 1; i <= effLen; i++ {
		l := t.getLog(i)

		if l.Completed {
			summary.Completed++
		}
		if l.Failed {
			summary.Failed++
		}

		if l.Steps != nil {
			steps.add(*l.Steps)
		}
		if l.WaterMl > 0 {
			water.add(l.WaterMl)
		}
		if l.Calories != nil {
			calories.add(*l.Calories)
		}
		if profileName == models.ProfileNoor && l.ReadingPages != nil {
			pages.add(*l.ReadingPages)
		}

		// Chronological scan, so the last hit is the most recent weigh-in.
		if isMondayDate(l.Date) && l.WeightMonday != nil {
			lastMondayWeight = l.WeightMonday
		}
	}

	summary.Percent = int(math.Round(float64(summary.Completed) / float64(targetLen) * 100))

	for i := clamp(todayIdx, 1, effLen); i >= 1; i-- {
		if !t.getLog(i).Completed {
			break
		}
		summary.Streak++
	}

	summary.Steps = steps.stat()
	summary.Water = water.stat()
	summary.Calories = calories.stat()
	if profileName == models.ProfileNoor {
		ps := pages.stat()
		summary.ReadingPages = &ps
	}

	switch {
	case prof.StartWeight == nil:
		summary.WeightDelta = WeightDelta{Status: WeightDeltaNeedsConfig}
	case lastMondayWeight == nil:
		summary.WeightDelta = WeightDelta{Status: WeightDeltaNoEntry}
	default:
		delta := math.Round((*prof.StartWeight-*lastMondayWeight)*10) / 10
		summary.WeightDelta = WeightDelta{Status: WeightDeltaOK, Delta: delta}
	}

	return summary
}

type metricAcc struct {
	total int
	days  int
}

func (m *metricAcc) add(v int) {
	m.total += v
	m.days++
}

func (m *metricAcc) stat() MetricStat {
	s := MetricStat{Total: m.total, Days: m.days}
	if m.days > 0 {
		s.Average = int(math.Round(float64(m.total) / float64(m.days)))
	}
	return s
}
