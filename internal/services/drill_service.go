package services

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/wortflash/wortflash/internal/drill"
	"github.com/wortflash/wortflash/internal/errors"
	"github.com/wortflash/wortflash/internal/logger"
	"github.com/wortflash/wortflash/internal/models"
	"github.com/wortflash/wortflash/internal/stats"
)

// DrillService coordinates rounds of the adaptive vocabulary drill.
// Answer returns (nil, nil) when a submission arrives while another is
// still being processed; reentrant submissions are ignored, not errors.
type DrillService interface {
	StartRound(ctx context.Context, target int) (*RoundSnapshot, error)
	Snapshot(ctx context.Context) (*RoundSnapshot, error)
	Answer(ctx context.Context, option string) (*drill.Outcome, error)
	Continue(ctx context.Context) (*RoundSnapshot, error)
	Summary(ctx context.Context) (*models.StatsSummary, error)
}

// RoundSnapshot is the externally visible view of the active round.
type RoundSnapshot struct {
	RoundID   string        `json:"round_id"`
	State     string        `json:"state"`
	Completed int           `json:"completed"`
	Target    int           `json:"target"`
	Score     int           `json:"score"`
	Streak    int           `json:"streak"`
	Prompt    *drill.Prompt `json:"prompt,omitempty"`
}

type drillService struct {
	mu            sync.Mutex
	scheduler     *drill.Scheduler
	store         *stats.Store
	catalog       []models.VocabItem
	defaultTarget int
	roundID       string
}

// NewDrillService creates a DrillService over an immutable catalog.
func NewDrillService(catalog []models.VocabItem, store *stats.Store, params drill.WeightParams, rng *rand.Rand, defaultTarget int) DrillService {
	return &drillService{
		scheduler:     drill.NewScheduler(catalog, store, params, rng),
		store:         store,
		catalog:       catalog,
		defaultTarget: defaultTarget,
	}
}

func (s *drillService) StartRound(ctx context.Context, target int) (*RoundSnapshot, error) {
	log := logger.FromContext(ctx)

	if target < 0 {
		return nil, errors.NewValidationError("target", "cannot be negative")
	}
	if target == 0 {
		target = s.defaultTarget
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.StartRound(ctx, target)
	s.roundID = uuid.NewString()
	log.Info("round started: round_id=%s, target=%d", s.roundID, s.scheduler.Target())
	return s.snapshotLocked(), nil
}

func (s *drillService) Snapshot(ctx context.Context) (*RoundSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roundID == "" {
		return nil, errors.NewNotFoundError("round", "current")
	}
	return s.snapshotLocked(), nil
}

func (s *drillService) Answer(ctx context.Context, option string) (*drill.Outcome, error) {
	log := logger.FromContext(ctx)

	if option == "" {
		return nil, errors.NewValidationError("option", "cannot be empty")
	}

	// Reentrancy guard: a second submission while one is in flight is
	// dropped, per the single-pending-action model.
	if !s.mu.TryLock() {
		log.Debug("answer submission ignored: another is in flight")
		return nil, nil
	}
	defer s.mu.Unlock()

	if s.roundID == "" {
		return nil, errors.NewNotFoundError("round", "current")
	}

	out, err := s.scheduler.Answer(ctx, option)
	if err != nil {
		return nil, mapSchedulerError(err)
	}
	log.Debug("answer recorded: phase=%s, correct=%t, completed=%d/%d", out.Phase, out.Correct, out.Completed, out.Target)
	return out, nil
}

func (s *drillService) Continue(ctx context.Context) (*RoundSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roundID == "" {
		return nil, errors.NewNotFoundError("round", "current")
	}
	if err := s.scheduler.Continue(ctx); err != nil {
		return nil, mapSchedulerError(err)
	}
	return s.snapshotLocked(), nil
}

func (s *drillService) Summary(ctx context.Context) (*models.StatsSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("building statistics summary")

	all := s.store.All()

	summary := &models.StatsSummary{TotalItems: len(s.catalog)}
	var correctMeaning, wrongMeaning, correctArticle, wrongArticle int

	for _, item := range s.catalog {
		st, ok := all[item.ID]
		if !ok || st.SeenCount == 0 {
			continue
		}
		summary.ItemsSeen++
		correctMeaning += st.CorrectMeaning
		wrongMeaning += st.WrongMeaning
		correctArticle += st.CorrectArticle
		wrongArticle += st.WrongArticle

		is := models.ItemSummary{
			ItemID:    item.ID,
			Display:   item.Display,
			SeenCount: st.SeenCount,
			Correct:   st.CorrectMeaning + st.CorrectArticle,
			Wrong:     st.TotalWrong(),
			ErrorRate: st.ErrorRate(),
		}
		if !st.LastSeenAt.IsZero() {
			is.LastSeenAt = st.LastSeenAt.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		summary.Items = append(summary.Items, is)
	}

	summary.TotalAnswers = correctMeaning + wrongMeaning + correctArticle + wrongArticle
	summary.TotalWrong = wrongMeaning + wrongArticle
	summary.MeaningAccuracy = accuracy(correctMeaning, wrongMeaning)
	summary.ArticleAccuracy = accuracy(correctArticle, wrongArticle)

	// Weakest items first.
	sort.Slice(summary.Items, func(i, j int) bool {
		if summary.Items[i].ErrorRate != summary.Items[j].ErrorRate {
			return summary.Items[i].ErrorRate > summary.Items[j].ErrorRate
		}
		return summary.Items[i].ItemID < summary.Items[j].ItemID
	})

	return summary, nil
}

func (s *drillService) snapshotLocked() *RoundSnapshot {
	snap := &RoundSnapshot{
		RoundID:   s.roundID,
		State:     s.scheduler.State().String(),
		Completed: s.scheduler.Completed(),
		Target:    s.scheduler.Target(),
		Score:     s.scheduler.Score(),
		Streak:    s.scheduler.Streak(),
	}
	if prompt, ok := s.scheduler.Prompt(); ok {
		snap.Prompt = prompt
	}
	return snap
}

func mapSchedulerError(err error) error {
	switch err {
	case drill.ErrUnknownOption:
		return errors.NewValidationError("option", "not among the presented choices")
	case drill.ErrRoundComplete:
		return errors.NewConflictError("round is complete, start a new one")
	case drill.ErrAwaitContinue:
		return errors.NewConflictError("outcome pending, continue first")
	case drill.ErrNothingPending:
		return errors.NewConflictError("nothing to continue from")
	case drill.ErrNoActiveItem:
		return errors.NewConflictError("no active item")
	default:
		return errors.NewInternalError(err)
	}
}

func accuracy(correct, wrong int) float64 {
	total := correct + wrong
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}
