package service

import (
	"context"
	"testing"

	"github.com/examdesk/examdesk-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceService_GetOrCreateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.choices.GetOrCreate(ctx, "Maybe")
	require.NoError(t, err)
	b, err := env.choices.GetOrCreate(ctx, "Maybe")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, 1, env.store.ChoiceCount())

	// Matching is exact.
	c, err := env.choices.GetOrCreate(ctx, "maybe")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
}

func TestChoiceService_CreateAndRename(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	yes, err := env.choices.Create(ctx, "Yes")
	require.NoError(t, err)
	_, err = env.choices.Create(ctx, "No")
	require.NoError(t, err)

	var ve *ValidationError
	_, err = env.choices.Create(ctx, "Yes")
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "choice")

	_, err = env.choices.Rename(ctx, yes.ID, "No")
	require.ErrorAs(t, err, &ve)

	renamed, err := env.choices.Rename(ctx, yes.ID, "Yes!")
	require.NoError(t, err)
	assert.Equal(t, "Yes!", renamed.Text)

	_, err = env.choices.Rename(ctx, 999, "Ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestChoiceService_DeleteAnswerInUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	q, err := env.questions.Create(ctx, "Q", "Yes", []string{"Yes", "No"})
	require.NoError(t, err)

	assert.ErrorIs(t, env.choices.Delete(ctx, q.Answer.ID), repository.ErrChoiceInUse)

	var noID int64
	for _, c := range q.Choices {
		if c.Text == "No" {
			noID = c.ID
		}
	}
	require.NoError(t, env.choices.Delete(ctx, noID))

	got, err := env.questions.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes"}, got.ChoiceTexts())
}

func TestChoiceService_ListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	list, err := env.choices.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	_, _ = env.choices.Create(ctx, "A")
	b, _ := env.choices.Create(ctx, "B")

	list, err = env.choices.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
}
