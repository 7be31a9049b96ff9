package drill

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/wortflash/wortflash/internal/models"
)

// Sentinel errors returned by the scheduler state machine.
var (
	ErrRoundComplete  = errors.New("round already complete")
	ErrNoActiveItem   = errors.New("no active item")
	ErrAwaitContinue  = errors.New("awaiting explicit continue")
	ErrNothingPending = errors.New("nothing to continue from")
	ErrUnknownOption  = errors.New("option not among presented choices")
)

// StatsRecorder is the slice of the statistics store the scheduler
// drives. The scheduler is the only writer; the weight function is the
// only other reader.
type StatsRecorder interface {
	Get(id string) models.ItemStatistics
	MarkSeen(ctx context.Context, id string, now time.Time)
	RecordAnswer(ctx context.Context, id string, phase models.Phase, correct bool)
}

// State names the scheduler's position in the two-phase quiz cycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingMeaning
	StateAwaitingArticle
	StateRoundComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingMeaning:
		return "awaiting_meaning"
	case StateAwaitingArticle:
		return "awaiting_article"
	case StateRoundComplete:
		return "round_complete"
	default:
		return "unknown"
	}
}

// Outcome is the structured result of one answer submission.
type Outcome struct {
	Correct       bool         `json:"correct"`
	CorrectAnswer string       `json:"correct_answer"`
	Phase         models.Phase `json:"phase"`
	State         string       `json:"state"`
	AwaitContinue bool         `json:"await_continue"`
	Completed     int          `json:"completed"`
	Target        int          `json:"target"`
	Score         int          `json:"score"`
	Streak        int          `json:"streak"`
}

// Prompt is what the presentation layer renders for the active phase.
// Options arrive pre-shuffled; exactly one of them is correct.
type Prompt struct {
	ItemID  string       `json:"item_id"`
	Phase   models.Phase `json:"phase"`
	Clue    string       `json:"clue,omitempty"`
	Options []string     `json:"options"`
}

// Scheduler owns one round of the drill: it builds the initial queue by
// weighted sampling, walks each drawn item through the meaning and
// article phases, splices missed items back into the queue, and ends
// the round after the target number of full completions.
//
// The scheduler is not safe for concurrent use; callers serialize.
type Scheduler struct {
	rng     *rand.Rand
	stats   StatsRecorder
	catalog []models.VocabItem
	params  WeightParams
	now     func() time.Time

	state          State
	target         int
	completed      int
	queue          []models.VocabItem
	current        *models.VocabItem
	clue           string
	options        []string
	pendingAdvance bool
	score          int
	streak         int
}

// NewScheduler creates an idle scheduler over an immutable catalog.
// The rand source is injected so rounds are reproducible under test.
func NewScheduler(catalog []models.VocabItem, stats StatsRecorder, params WeightParams, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		rng:     rng,
		stats:   stats,
		catalog: catalog,
		params:  params,
		now:     time.Now,
	}
}

// StartRound discards any in-progress round and builds a fresh queue of
// min(target, catalog size) items by weighted sampling. Counters, score
// and streak reset; persisted statistics do not.
func (s *Scheduler) StartRound(ctx context.Context, target int) {
	if target > len(s.catalog) {
		target = len(s.catalog)
	}
	if target < 0 {
		target = 0
	}

	weight := func(item models.VocabItem, now time.Time) float64 {
		return s.params.Weight(s.stats.Get(item.ID), now)
	}
	s.queue = Sample(s.rng, s.catalog, target, s.now(), weight)
	s.target = target
	s.completed = 0
	s.score = 0
	s.streak = 0
	s.pendingAdvance = false
	s.advance(ctx)
}

// advance pops the next queued item, marks it seen and presents its
// meaning phase. The round completes once enough items have been fully
// answered, or when the queue runs dry.
func (s *Scheduler) advance(ctx context.Context) {
	if s.completed >= s.target || len(s.queue) == 0 {
		s.state = StateRoundComplete
		s.current = nil
		s.clue = ""
		s.options = nil
		return
	}

	item := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &item
	s.stats.MarkSeen(ctx, item.ID, s.now())
	s.state = StateAwaitingMeaning
	s.presentMeaning()
}

func (s *Scheduler) presentMeaning() {
	item := *s.current
	s.clue = item.Clues[s.rng.Intn(len(item.Clues))]

	opts := []string{item.Lemma}
	for _, d := range Distractors(s.rng, s.catalog, item) {
		opts = append(opts, d.Lemma)
	}
	s.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	s.options = opts
}

func (s *Scheduler) presentArticle() {
	opts := make([]string, 0, len(models.Articles))
	for _, a := range models.Articles {
		opts = append(opts, string(a))
	}
	s.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	s.clue = ""
	s.options = opts
}

// Prompt returns the presentation for the active phase. ok is false
// when there is nothing to present: idle, round complete, or an answer
// outcome still waiting for an explicit Continue.
func (s *Scheduler) Prompt() (*Prompt, bool) {
	if s.current == nil || s.pendingAdvance {
		return nil, false
	}
	phase := models.PhaseMeaning
	if s.state == StateAwaitingArticle {
		phase = models.PhaseArticle
	}
	opts := make([]string, len(s.options))
	copy(opts, s.options)
	return &Prompt{
		ItemID:  s.current.ID,
		Phase:   phase,
		Clue:    s.clue,
		Options: opts,
	}, true
}

// Answer processes exactly one selection for the presented prompt.
// A correct meaning answer moves straight to the article phase; every
// other outcome parks the scheduler until Continue is called. Misses
// splice the item back into the queue, restarting it at the meaning
// phase on its next draw.
func (s *Scheduler) Answer(ctx context.Context, option string) (*Outcome, error) {
	switch {
	case s.state == StateRoundComplete:
		return nil, ErrRoundComplete
	case s.current == nil:
		return nil, ErrNoActiveItem
	case s.pendingAdvance:
		return nil, ErrAwaitContinue
	}
	if !s.hasOption(option) {
		return nil, ErrUnknownOption
	}

	item := *s.current
	phase := models.PhaseMeaning
	correctAnswer := item.Lemma
	if s.state == StateAwaitingArticle {
		phase = models.PhaseArticle
		correctAnswer = string(item.Article)
	}

	correct := option == correctAnswer
	s.stats.RecordAnswer(ctx, item.ID, phase, correct)

	if correct {
		s.score++
		s.streak++
		if phase == models.PhaseMeaning {
			s.state = StateAwaitingArticle
			s.presentArticle()
		} else {
			s.completed++
			s.pendingAdvance = true
		}
	} else {
		s.streak = 0
		s.requeue(item)
		s.pendingAdvance = true
	}

	return &Outcome{
		Correct:       correct,
		CorrectAnswer: correctAnswer,
		Phase:         phase,
		State:         s.state.String(),
		AwaitContinue: s.pendingAdvance,
		Completed:     s.completed,
		Target:        s.target,
		Score:         s.score,
		Streak:        s.streak,
	}, nil
}

// requeue splices a missed item back into the pending queue at the
// adaptive offset, capped at the current queue length.
func (s *Scheduler) requeue(item models.VocabItem) {
	offset := RequeueDistance(s.stats.Get(item.ID))
	if offset > len(s.queue) {
		offset = len(s.queue)
	}
	s.queue = append(s.queue, models.VocabItem{})
	copy(s.queue[offset+1:], s.queue[offset:])
	s.queue[offset] = item
}

// Continue advances past a parked outcome to the next item. It is only
// valid after a miss or after a completed item.
func (s *Scheduler) Continue(ctx context.Context) error {
	if s.state == StateRoundComplete {
		return ErrRoundComplete
	}
	if !s.pendingAdvance {
		return ErrNothingPending
	}
	s.pendingAdvance = false
	s.advance(ctx)
	return nil
}

func (s *Scheduler) hasOption(option string) bool {
	for _, o := range s.options {
		if o == option {
			return true
		}
	}
	return false
}

// State returns the scheduler's current position in the round.
func (s *Scheduler) State() State { return s.state }

// Completed returns how many items have been fully answered this round.
func (s *Scheduler) Completed() int { return s.completed }

// Target returns the effective round size.
func (s *Scheduler) Target() int { return s.target }

// Score returns the running per-round score.
func (s *Scheduler) Score() int { return s.score }

// Streak returns the current run of consecutive correct answers.
func (s *Scheduler) Streak() int { return s.streak }

// Pending returns the ids of the queued items, front first.
func (s *Scheduler) Pending() []string {
	ids := make([]string, len(s.queue))
	for i, it := range s.queue {
		ids[i] = it.ID
	}
	return ids
}
