package drill

import "github.com/wortflash/wortflash/internal/models"

// Requeue offsets are clamped so a missed item is never re-presented
// immediately but also never drifts more than a handful of cards away.
const (
	minRequeueOffset = 2
	maxRequeueOffset = 6
)

// RequeueDistance computes how many positions from the front of the
// pending queue a missed item is reinserted. Items with more cumulative
// misses (across both phases, historical) resurface sooner.
func RequeueDistance(st models.ItemStatistics) int {
	offset := maxRequeueOffset - st.TotalWrong()/2
	if offset < minRequeueOffset {
		offset = minRequeueOffset
	}
	if offset > maxRequeueOffset {
		offset = maxRequeueOffset
	}
	return offset
}
