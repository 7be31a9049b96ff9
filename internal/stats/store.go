package stats

import (
	"context"
	"sync"
	"time"

	"github.com/wortflash/wortflash/internal/logger"
	"github.com/wortflash/wortflash/internal/models"
	"github.com/wortflash/wortflash/internal/repository"
)

// Store holds the per-item drill counters in memory and writes them
// through the repository after every mutation. Persistence failures are
// logged and swallowed on both paths: a broken or missing store means
// "no prior statistics", never a dead drill.
type Store struct {
	mu    sync.RWMutex
	log   *logger.Logger
	repo  repository.StatsRepository
	items map[string]models.ItemStatistics
}

// NewStore creates a Store seeded from the repository. A nil repository
// gives a purely in-memory store.
func NewStore(ctx context.Context, repo repository.StatsRepository) *Store {
	log := logger.Default().WithPrefix("stats")

	items := make(map[string]models.ItemStatistics)
	if repo != nil {
		loaded, err := repo.LoadAll(ctx)
		if err != nil {
			log.Warn("failed to load persisted statistics, starting empty: %v", err)
		} else if loaded != nil {
			items = loaded
		}
	}
	log.Debug("statistics store ready: %d items with history", len(items))

	return &Store{log: log, repo: repo, items: items}
}

// Get returns the statistics for an item, a zeroed record when the item
// has never been referenced.
func (s *Store) Get(id string) models.ItemStatistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.items[id]; ok {
		return st
	}
	return models.ItemStatistics{ItemID: id}
}

// MarkSeen increments an item's seen counter and stamps its last
// presentation time.
func (s *Store) MarkSeen(ctx context.Context, id string, now time.Time) {
	s.mu.Lock()
	st := s.locked(id)
	st.SeenCount++
	st.LastSeenAt = now
	s.items[id] = st
	s.mu.Unlock()

	s.Flush(ctx)
}

// RecordAnswer bumps the per-phase counter for one answer outcome.
func (s *Store) RecordAnswer(ctx context.Context, id string, phase models.Phase, correct bool) {
	s.mu.Lock()
	st := s.locked(id)
	switch {
	case phase == models.PhaseMeaning && correct:
		st.CorrectMeaning++
	case phase == models.PhaseMeaning:
		st.WrongMeaning++
	case correct:
		st.CorrectArticle++
	default:
		st.WrongArticle++
	}
	s.items[id] = st
	s.mu.Unlock()

	s.Flush(ctx)
}

// All returns a copy of every tracked record.
func (s *Store) All() map[string]models.ItemStatistics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.ItemStatistics, len(s.items))
	for k, v := range s.items {
		out[k] = v
	}
	return out
}

// locked returns the record for id, lazily zero-initialized. Caller
// holds the write lock.
func (s *Store) locked(id string) models.ItemStatistics {
	if st, ok := s.items[id]; ok {
		return st
	}
	return models.ItemStatistics{ItemID: id}
}

// Flush writes the current snapshot through the repository. It is also
// called internally after every mutation, and once more at shutdown.
func (s *Store) Flush(ctx context.Context) {
	if s.repo == nil {
		return
	}
	snapshot := s.All()
	if err := s.repo.SaveAll(ctx, snapshot); err != nil {
		s.log.Warn("failed to persist statistics: %v", err)
	}
}
