package drill_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wortflash/wortflash/internal/drill"
	"github.com/wortflash/wortflash/internal/models"
)

func TestWeight_NeverSeenGetsBonus(t *testing.T) {
	params := drill.DefaultWeightParams()
	now := time.Now()

	w := params.Weight(models.ItemStatistics{ItemID: "hund"}, now)

	assert.InDelta(t, params.NewItemBonus, w, 1e-9, "fresh item should carry exactly the new-item bonus")
}

func TestWeight_SettledItemIsNeutral(t *testing.T) {
	params := drill.DefaultWeightParams()
	now := time.Now()

	st := models.ItemStatistics{
		ItemID:         "hund",
		SeenCount:      5,
		CorrectMeaning: 5,
		CorrectArticle: 5,
		LastSeenAt:     now.Add(-24 * time.Hour),
	}

	w := params.Weight(st, now)

	assert.InDelta(t, 1.0, w, 1e-9, "seen, error-free, non-recent item should weigh 1.0")
}

func TestWeight_ErrorBoost(t *testing.T) {
	params := drill.DefaultWeightParams()
	now := time.Now()

	// 2 wrong out of 4 answers: error rate 0.5, boost 1 + 0.5*3 = 2.5.
	st := models.ItemStatistics{
		ItemID:         "hund",
		SeenCount:      4,
		CorrectMeaning: 1,
		WrongMeaning:   2,
		CorrectArticle: 1,
		LastSeenAt:     now.Add(-24 * time.Hour),
	}

	w := params.Weight(st, now)

	assert.InDelta(t, 2.5, w, 1e-9)
}

func TestWeight_ErrorRateMonotonic(t *testing.T) {
	params := drill.DefaultWeightParams()
	now := time.Now()
	lastSeen := now.Add(-24 * time.Hour)

	prev := 0.0
	for wrong := 0; wrong <= 5; wrong++ {
		st := models.ItemStatistics{
			ItemID:         "hund",
			SeenCount:      6,
			CorrectMeaning: 10 - wrong,
			WrongMeaning:   wrong,
			LastSeenAt:     lastSeen,
		}
		w := params.Weight(st, now)
		assert.Greater(t, w, prev, "weight must grow with the miss count (wrong=%d)", wrong)
		prev = w
	}
}

func TestWeight_RecencySuppression(t *testing.T) {
	params := drill.DefaultWeightParams()
	now := time.Now()

	tests := []struct {
		name     string
		age      time.Duration
		expected float64
	}{
		{name: "just seen sits at the floor", age: 0, expected: 0.2},
		{name: "half window is halfway up", age: 3 * time.Hour, expected: 0.6},
		{name: "window boundary is neutral", age: 6 * time.Hour, expected: 1.0},
		{name: "beyond window is neutral", age: 48 * time.Hour, expected: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := models.ItemStatistics{
				ItemID:         "hund",
				SeenCount:      3,
				CorrectMeaning: 3,
				CorrectArticle: 3,
				LastSeenAt:     now.Add(-tt.age),
			}
			assert.InDelta(t, tt.expected, params.Weight(st, now), 1e-9)
		})
	}
}

func TestWeight_NeverZero(t *testing.T) {
	params := drill.DefaultWeightParams()
	now := time.Now()

	// Just seen, perfect history: the most suppressed an item can get.
	st := models.ItemStatistics{
		ItemID:         "hund",
		SeenCount:      100,
		CorrectMeaning: 100,
		CorrectArticle: 100,
		LastSeenAt:     now,
	}

	assert.Greater(t, params.Weight(st, now), 0.0, "no item may become unreachable")
}
