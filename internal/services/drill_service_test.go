package services_test

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wortflash/wortflash/internal/drill"
	"github.com/wortflash/wortflash/internal/errors"
	"github.com/wortflash/wortflash/internal/models"
	"github.com/wortflash/wortflash/internal/services"
	"github.com/wortflash/wortflash/internal/stats"
)

func serviceCatalog(n int) []models.VocabItem {
	items := make([]models.VocabItem, n)
	for i := range items {
		items[i] = models.VocabItem{
			ID:      fmt.Sprintf("item-%d", i),
			Article: models.Articles[i%len(models.Articles)],
			Lemma:   fmt.Sprintf("Wort%d", i),
			Display: fmt.Sprintf("%s Wort%d", models.Articles[i%len(models.Articles)], i),
			Tags:    []string{"test"},
			Clues:   []string{fmt.Sprintf("clue %d", i)},
		}
	}
	return items
}

func newService(catalog []models.VocabItem, defaultTarget int) services.DrillService {
	store := stats.NewStore(context.Background(), nil)
	rng := rand.New(rand.NewSource(21))
	return services.NewDrillService(catalog, store, drill.DefaultWeightParams(), rng, defaultTarget)
}

func promptAnswer(t *testing.T, catalog []models.VocabItem, p *drill.Prompt, correct bool) string {
	t.Helper()
	require.NotNil(t, p)
	var want string
	for _, it := range catalog {
		if it.ID == p.ItemID {
			want = it.Lemma
			if p.Phase == models.PhaseArticle {
				want = string(it.Article)
			}
		}
	}
	require.NotEmpty(t, want)
	if correct {
		return want
	}
	for _, o := range p.Options {
		if o != want {
			return o
		}
	}
	t.Fatal("no wrong option available")
	return ""
}

func TestDrillService_StartRoundDefaults(t *testing.T) {
	svc := newService(serviceCatalog(8), 5)

	snap, err := svc.StartRound(context.Background(), 0)

	require.NoError(t, err)
	assert.NotEmpty(t, snap.RoundID)
	assert.Equal(t, 5, snap.Target, "zero target falls back to the configured round size")
	assert.Equal(t, "awaiting_meaning", snap.State)
	require.NotNil(t, snap.Prompt)
	assert.Equal(t, models.PhaseMeaning, snap.Prompt.Phase)
}

func TestDrillService_StartRoundNegativeTarget(t *testing.T) {
	svc := newService(serviceCatalog(4), 4)

	_, err := svc.StartRound(context.Background(), -1)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestDrillService_NoRoundYet(t *testing.T) {
	svc := newService(serviceCatalog(4), 4)
	ctx := context.Background()

	var appErr *errors.AppError

	_, err := svc.Snapshot(ctx)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)

	_, err = svc.Answer(ctx, "der")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)

	_, err = svc.Continue(ctx)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestDrillService_AnswerValidation(t *testing.T) {
	svc := newService(serviceCatalog(4), 2)
	ctx := context.Background()
	_, err := svc.StartRound(ctx, 2)
	require.NoError(t, err)

	var appErr *errors.AppError

	_, err = svc.Answer(ctx, "")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)

	_, err = svc.Answer(ctx, "not-an-option")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestDrillService_FullRound(t *testing.T) {
	ctx := context.Background()
	catalog := serviceCatalog(6)
	svc := newService(catalog, 3)

	snap, err := svc.StartRound(ctx, 3)
	require.NoError(t, err)
	roundID := snap.RoundID

	for snap.State != "round_complete" {
		require.NotNil(t, snap.Prompt, "state %s must carry a prompt", snap.State)

		out, err := svc.Answer(ctx, promptAnswer(t, catalog, snap.Prompt, true))
		require.NoError(t, err)
		require.NotNil(t, out)
		require.True(t, out.Correct)

		if out.AwaitContinue {
			snap, err = svc.Continue(ctx)
			require.NoError(t, err)
		} else {
			snap, err = svc.Snapshot(ctx)
			require.NoError(t, err)
		}
	}

	assert.Equal(t, roundID, snap.RoundID, "the round id is stable for the whole round")
	assert.Equal(t, 3, snap.Completed)
	assert.Equal(t, 6, snap.Score)
	assert.Nil(t, snap.Prompt)

	// A finished round rejects further answers with a conflict.
	_, err = svc.Answer(ctx, "der")
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestDrillService_ContinueWithoutPending(t *testing.T) {
	svc := newService(serviceCatalog(4), 2)
	ctx := context.Background()
	_, err := svc.StartRound(ctx, 2)
	require.NoError(t, err)

	_, err = svc.Continue(ctx)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
}

func TestDrillService_NewRoundReplacesOld(t *testing.T) {
	svc := newService(serviceCatalog(6), 3)
	ctx := context.Background()

	first, err := svc.StartRound(ctx, 3)
	require.NoError(t, err)
	second, err := svc.StartRound(ctx, 3)
	require.NoError(t, err)

	assert.NotEqual(t, first.RoundID, second.RoundID)
	assert.Equal(t, 0, second.Completed)
	assert.Equal(t, 0, second.Score)
}

func TestDrillService_Summary(t *testing.T) {
	ctx := context.Background()
	catalog := serviceCatalog(4)
	svc := newService(catalog, 2)

	empty, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, empty.TotalItems)
	assert.Equal(t, 0, empty.ItemsSeen)
	assert.Empty(t, empty.Items)

	snap, err := svc.StartRound(ctx, 1)
	require.NoError(t, err)

	// Miss the meaning once, then clear both phases on the retry.
	out, err := svc.Answer(ctx, promptAnswer(t, catalog, snap.Prompt, false))
	require.NoError(t, err)
	require.False(t, out.Correct)
	snap, err = svc.Continue(ctx)
	require.NoError(t, err)

	for snap.State != "round_complete" {
		out, err = svc.Answer(ctx, promptAnswer(t, catalog, snap.Prompt, true))
		require.NoError(t, err)
		if out.AwaitContinue {
			snap, err = svc.Continue(ctx)
		} else {
			snap, err = svc.Snapshot(ctx)
		}
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalItems)
	assert.Equal(t, 1, summary.ItemsSeen)
	assert.Equal(t, 3, summary.TotalAnswers)
	assert.Equal(t, 1, summary.TotalWrong)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 2, summary.Items[0].SeenCount, "the missed item was drawn twice")
	assert.InDelta(t, 1.0/3.0, summary.Items[0].ErrorRate, 1e-9)
	assert.InDelta(t, 0.5, summary.MeaningAccuracy, 1e-9)
	assert.InDelta(t, 1.0, summary.ArticleAccuracy, 1e-9)
	assert.NotEmpty(t, summary.Items[0].LastSeenAt)
}
