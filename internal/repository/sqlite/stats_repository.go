package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/wortflash/wortflash/internal/logger"
	"github.com/wortflash/wortflash/internal/models"
	"github.com/wortflash/wortflash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository backed by SQLite
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) LoadAll(ctx context.Context) (map[string]models.ItemStatistics, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("loading persisted item statistics")

	query, args, err := sqlBuilder.
		Select("item_id", "seen_count", "correct_meaning", "wrong_meaning", "correct_article", "wrong_article", "last_seen_at").
		From("item_stats").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query item statistics: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.ItemStatistics)
	for rows.Next() {
		var st models.ItemStatistics
		var lastSeen int64
		if err := rows.Scan(&st.ItemID, &st.SeenCount, &st.CorrectMeaning, &st.WrongMeaning, &st.CorrectArticle, &st.WrongArticle, &lastSeen); err != nil {
			log.Error("failed to scan item statistics row: %v", err)
			return nil, err
		}
		if lastSeen > 0 {
			st.LastSeenAt = time.Unix(lastSeen, 0)
		}
		out[st.ItemID] = st
	}
	log.Debug("loaded statistics for %d items", len(out))
	return out, rows.Err()
}

func (r *statsRepository) SaveAll(ctx context.Context, stats map[string]models.ItemStatistics) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("persisting statistics for %d items", len(stats))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		for id, st := range stats {
			var lastSeen int64
			if !st.LastSeenAt.IsZero() {
				lastSeen = st.LastSeenAt.Unix()
			}
			query, args, err := sqlBuilder.
				Insert("item_stats").
				Columns("item_id", "seen_count", "correct_meaning", "wrong_meaning", "correct_article", "wrong_article", "last_seen_at").
				Values(id, st.SeenCount, st.CorrectMeaning, st.WrongMeaning, st.CorrectArticle, st.WrongArticle, lastSeen).
				Suffix(`ON CONFLICT(item_id) DO UPDATE SET
seen_count = excluded.seen_count,
correct_meaning = excluded.correct_meaning,
wrong_meaning = excluded.wrong_meaning,
correct_article = excluded.correct_article,
wrong_article = excluded.wrong_article,
last_seen_at = excluded.last_seen_at`).
				ToSql()
			if err != nil {
				return err
			}
			if _, err := t.ExecContext(ctx, query, args...); err != nil {
				log.Error("failed to upsert statistics for item %s: %v", id, err)
				return err
			}
		}
		return nil
	})
}
