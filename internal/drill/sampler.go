package drill

import (
	"math/rand"
	"time"

	"github.com/wortflash/wortflash/internal/models"
)

// WeightFunc scores a candidate for weighted sampling. Negative results
// are clamped to zero by the sampler.
type WeightFunc func(item models.VocabItem, now time.Time) float64

// Sample draws up to k distinct items from pool, each draw proportional
// to the weights of the items still remaining. Weights are recomputed on
// every draw because removing an item changes the relative shares; this
// is weighted sampling without replacement, not a one-shot shuffle.
//
// When every remaining weight is non-positive the first remaining
// candidate is taken, so a degenerate weight function degrades to FIFO
// order instead of failing. An empty pool or k <= 0 yields nil.
func Sample(rng *rand.Rand, pool []models.VocabItem, k int, now time.Time, weight WeightFunc) []models.VocabItem {
	if k <= 0 || len(pool) == 0 {
		return nil
	}
	if k > len(pool) {
		k = len(pool)
	}

	remaining := make([]models.VocabItem, len(pool))
	copy(remaining, pool)
	picked := make([]models.VocabItem, 0, k)
	weights := make([]float64, len(pool))

	for len(picked) < k && len(remaining) > 0 {
		weights = weights[:len(remaining)]
		var sum float64
		for i, it := range remaining {
			w := weight(it, now)
			if w < 0 {
				w = 0
			}
			weights[i] = w
			sum += w
		}

		idx := 0
		if sum > 0 {
			r := rng.Float64() * sum
			idx = len(remaining) - 1
			var cum float64
			for i, w := range weights {
				cum += w
				if cum >= r {
					idx = i
					break
				}
			}
		}

		picked = append(picked, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return picked
}
