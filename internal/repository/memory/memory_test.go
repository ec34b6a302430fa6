package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/examdesk/examdesk-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoices_GetOrCreateReusesRow(t *testing.T) {
	ctx := context.Background()
	s := New()

	first, err := s.Choices().GetOrCreate(ctx, "Yes")
	require.NoError(t, err)
	second, err := s.Choices().GetOrCreate(ctx, "Yes")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, s.ChoiceCount())
}

func TestChoices_CreateRejectsDuplicateText(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Choices().Create(ctx, &model.Choice{Text: "No"}))
	err := s.Choices().Create(ctx, &model.Choice{Text: "No"})
	assert.ErrorIs(t, err, repository.ErrDuplicateChoice)
}

func TestChoices_DeleteRestrictsAnswers(t *testing.T) {
	ctx := context.Background()
	s := New()

	yes, _ := s.Choices().GetOrCreate(ctx, "Yes")
	no, _ := s.Choices().GetOrCreate(ctx, "No")
	q := &model.Question{Text: "Q", Answer: *yes}
	require.NoError(t, s.Questions().Create(ctx, q))
	require.NoError(t, s.Questions().SetChoices(ctx, q.ID, []int64{yes.ID, no.ID}))

	assert.ErrorIs(t, s.Choices().Delete(ctx, yes.ID), repository.ErrChoiceInUse)
	require.NoError(t, s.Choices().Delete(ctx, no.ID))

	got, err := s.Questions().GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes"}, got.ChoiceTexts())
}

func TestQuestions_DeleteCascadesAnswer(t *testing.T) {
	ctx := context.Background()
	s := New()

	yes, _ := s.Choices().GetOrCreate(ctx, "Yes")
	q := &model.Question{Text: "Q", Answer: *yes}
	require.NoError(t, s.Questions().Create(ctx, q))
	require.NoError(t, s.Answers().Upsert(ctx, &model.ExamineeAnswer{QuestionID: q.ID, Answer: "Yes"}))

	require.NoError(t, s.Questions().Delete(ctx, q.ID))

	_, err := s.Answers().GetByQuestion(ctx, q.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Choices().GetByID(ctx, yes.ID)
	assert.NoError(t, err)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.Choices().GetOrCreate(ctx, "Maybe"); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Zero(t, s.ChoiceCount())
}

func TestUsers_UniqueEmailAndOrdering(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.Users().Create(ctx, &model.User{Email: "b@example.com"}))
	require.NoError(t, s.Users().Create(ctx, &model.User{Email: "a@example.com"}))
	assert.ErrorIs(t, s.Users().Create(ctx, &model.User{Email: "a@example.com"}), repository.ErrDuplicateEmail)

	users, err := s.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@example.com", users[0].Email)
}
