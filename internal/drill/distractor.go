package drill

import (
	"math/rand"

	"github.com/wortflash/wortflash/internal/models"
)

const (
	// distractorCount is how many wrong choices accompany the target.
	distractorCount = 2
	// minTagPoolSize is the smallest same-tag candidate pool worth
	// using; below it the whole catalog serves as the pool.
	minTagPoolSize = 10
	// minPreferredPool is how many different-article candidates must
	// exist before the article preference kicks in.
	minPreferredPool = 2
)

// Distractors picks the wrong choices shown next to target in the
// meaning phase. Candidates share at least one tag with the target;
// thin tag pools fall back to the whole catalog. Among candidates,
// items with a different article are preferred so the later article
// phase is not given away by elimination.
func Distractors(rng *rand.Rand, catalog []models.VocabItem, target models.VocabItem) []models.VocabItem {
	candidates := make([]models.VocabItem, 0, len(catalog))
	for _, it := range catalog {
		if it.ID == target.ID {
			continue
		}
		if it.SharesTag(target) {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) < minTagPoolSize {
		candidates = candidates[:0]
		for _, it := range catalog {
			if it.ID != target.ID {
				candidates = append(candidates, it)
			}
		}
	}

	preferred := make([]models.VocabItem, 0, len(candidates))
	for _, it := range candidates {
		if it.Article != target.Article {
			preferred = append(preferred, it)
		}
	}
	if len(preferred) < minPreferredPool {
		preferred = candidates
	}

	exclude := map[string]bool{target.ID: true}
	picks := pickDistinct(rng, preferred, distractorCount, exclude)

	if len(picks) < distractorCount {
		// Top up from the rest of the catalog.
		for _, p := range picks {
			exclude[p.ID] = true
		}
		rest := make([]models.VocabItem, 0, len(catalog))
		for _, it := range catalog {
			if !exclude[it.ID] {
				rest = append(rest, it)
			}
		}
		picks = append(picks, pickDistinct(rng, rest, distractorCount-len(picks), nil)...)
	}
	return picks
}

// pickDistinct selects up to n items with pairwise-distinct ids from
// pool, uniformly at random, skipping excluded ids.
func pickDistinct(rng *rand.Rand, pool []models.VocabItem, n int, exclude map[string]bool) []models.VocabItem {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	seen := make(map[string]bool, n)
	var out []models.VocabItem
	for _, i := range rng.Perm(len(pool)) {
		it := pool[i]
		if exclude[it.ID] || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
		if len(out) == n {
			break
		}
	}
	return out
}
