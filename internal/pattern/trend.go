package pattern

import (
	"math"
	"sort"

	"fitstudio/coach-app/internal/domain"
)

// WeightTrend compares the rolling averages of the two most recent
// 7-entry windows of the weight log. The windows are fixed-count, not
// calendar weeks: a client who logs irregularly still compares their
// last 7 measurements against the 7 before those.
type WeightTrend struct {
	ThisWeekAvg *float64 `json:"thisWeekAvg"`
	LastWeekAvg *float64 `json:"lastWeekAvg"`
	Delta       *float64 `json:"delta"`
}

const trendWindow = 7

// Trend computes the weight trend over a weight log. All fields are nil
// for an empty log; the delta is nil unless both windows have entries.
func Trend(log []domain.WeightEntry) WeightTrend {
	if len(log) == 0 {
		return WeightTrend{}
	}

	sorted := make([]domain.WeightEntry, len(log))
	copy(sorted, log)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	thisWeek := window(sorted, 0, trendWindow)
	lastWeek := window(sorted, trendWindow, 2*trendWindow)

	trend := WeightTrend{
		ThisWeekAvg: average(thisWeek),
		LastWeekAvg: average(lastWeek),
	}
	if trend.ThisWeekAvg != nil && trend.LastWeekAvg != nil {
		delta := round1(*trend.ThisWeekAvg - *trend.LastWeekAvg)
		trend.Delta = &delta
	}
	return trend
}

func window(entries []domain.WeightEntry, from, to int) []domain.WeightEntry {
	if from >= len(entries) {
		return nil
	}
	if to > len(entries) {
		to = len(entries)
	}
	return entries[from:to]
}

// average returns the mean weight rounded to 1 decimal place, or nil for
// an empty slice.
func average(entries []domain.WeightEntry) *float64 {
	if len(entries) == 0 {
		return nil
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Weight
	}
	avg := round1(sum / float64(len(entries)))
	return &avg
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
