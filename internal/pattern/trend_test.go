package pattern

import (
	"testing"
	"time"

	"fitstudio/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entries builds a newest-first log from the given weights.
func entries(weights ...float64) []domain.WeightEntry {
	base := time.Date(2025, time.March, 20, 8, 0, 0, 0, time.UTC)
	log := make([]domain.WeightEntry, 0, len(weights))
	for i, w := range weights {
		log = append(log, domain.WeightEntry{
			ID:     "w" + string(rune('a'+i)),
			Date:   base.AddDate(0, 0, -i),
			Weight: w,
		})
	}
	return log
}

func TestTrendEmptyLog(t *testing.T) {
	trend := Trend(nil)

	assert.Nil(t, trend.ThisWeekAvg)
	assert.Nil(t, trend.LastWeekAvg)
	assert.Nil(t, trend.Delta)
}

func TestTrendFewerThanSevenEntries(t *testing.T) {
	trend := Trend(entries(80, 81, 82))

	require.NotNil(t, trend.ThisWeekAvg)
	assert.Equal(t, 81.0, *trend.ThisWeekAvg)
	assert.Nil(t, trend.LastWeekAvg)
	assert.Nil(t, trend.Delta)
}

func TestTrendTwoWindows(t *testing.T) {
	// First 7 entries average 70.0, next 3 average 75.0.
	trend := Trend(entries(70, 70, 70, 70, 70, 70, 70, 75, 75, 75))

	require.NotNil(t, trend.ThisWeekAvg)
	require.NotNil(t, trend.LastWeekAvg)
	require.NotNil(t, trend.Delta)
	assert.Equal(t, 70.0, *trend.ThisWeekAvg)
	assert.Equal(t, 75.0, *trend.LastWeekAvg)
	assert.Equal(t, -5.0, *trend.Delta)
}

func TestTrendRoundsToOneDecimal(t *testing.T) {
	trend := Trend(entries(80.16, 80.24, 80.31))

	require.NotNil(t, trend.ThisWeekAvg)
	assert.Equal(t, 80.2, *trend.ThisWeekAvg)
}

func TestTrendSortsBeforeWindowing(t *testing.T) {
	// Entries supplied oldest first; the calculator must sort descending
	// by date before taking the rolling windows.
	log := entries(70, 70, 70, 70, 70, 70, 70, 75, 75, 75)
	reversed := make([]domain.WeightEntry, len(log))
	for i, e := range log {
		reversed[len(log)-1-i] = e
	}

	trend := Trend(reversed)

	require.NotNil(t, trend.Delta)
	assert.Equal(t, -5.0, *trend.Delta)
}

func TestTrendIgnoresEntryCountBeyondFourteen(t *testing.T) {
	// Entries past position 13 must not affect either window.
	weights := make([]float64, 20)
	for i := range weights {
		weights[i] = 80
	}
	weights[14] = 300 // would skew an unbounded average

	trend := Trend(entries(weights...))

	require.NotNil(t, trend.ThisWeekAvg)
	require.NotNil(t, trend.LastWeekAvg)
	assert.Equal(t, 80.0, *trend.ThisWeekAvg)
	assert.Equal(t, 80.0, *trend.LastWeekAvg)
	assert.Equal(t, 0.0, *trend.Delta)
}
