package repository

import (
	"context"

	"github.com/wortflash/wortflash/internal/models"
)

// StatsRepository persists per-item drill statistics between sessions.
// Implementations must treat an empty store as a valid state: LoadAll
// on a fresh database returns an empty map, not an error.
type StatsRepository interface {
	LoadAll(ctx context.Context) (map[string]models.ItemStatistics, error)
	SaveAll(ctx context.Context, stats map[string]models.ItemStatistics) error
}
