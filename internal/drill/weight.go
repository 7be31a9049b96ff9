package drill

import (
	"time"

	"github.com/wortflash/wortflash/internal/models"
)

// WeightParams tunes the per-item selection weight. All factors are
// multiplicative, so a never-seen item with no history gets exactly
// NewItemBonus and a fully settled item gets 1.0.
type WeightParams struct {
	// NewItemBonus (>1) is applied to items that have never been drilled.
	NewItemBonus float64
	// ErrorWeight scales how strongly the historical miss rate boosts
	// an item: boost = 1 + errorRate*ErrorWeight.
	ErrorWeight float64
	// RecentWindow is how long after a presentation an item stays
	// suppressed. Outside the window recency has no effect.
	RecentWindow time.Duration
	// RecentMinFactor is the suppression floor for an item seen just
	// now. Must be >0 so no item ever becomes unreachable.
	RecentMinFactor float64
}

// DefaultWeightParams returns the tuning used in production.
func DefaultWeightParams() WeightParams {
	return WeightParams{
		NewItemBonus:    2.5,
		ErrorWeight:     3.0,
		RecentWindow:    6 * time.Hour,
		RecentMinFactor: 0.2,
	}
}

// Weight maps an item's statistics to a non-negative sampling weight.
// Pure and deterministic given its inputs.
func (p WeightParams) Weight(st models.ItemStatistics, now time.Time) float64 {
	newBonus := 1.0
	if st.SeenCount == 0 {
		newBonus = p.NewItemBonus
	}
	errorBoost := 1 + st.ErrorRate()*p.ErrorWeight
	return newBonus * errorBoost * p.recencyFactor(st.LastSeenAt, now)
}

// recencyFactor interpolates linearly from RecentMinFactor (just seen)
// up to 1.0 at the window boundary.
func (p WeightParams) recencyFactor(lastSeen, now time.Time) float64 {
	if lastSeen.IsZero() {
		return 1
	}
	age := now.Sub(lastSeen)
	if age >= p.RecentWindow {
		return 1
	}
	if age < 0 {
		age = 0
	}
	frac := float64(age) / float64(p.RecentWindow)
	return p.RecentMinFactor + (1-p.RecentMinFactor)*frac
}
