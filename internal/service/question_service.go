package service

import (
	"context"
	"fmt"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

// ChoicesPolicy decides what an update without a choices key does to the option set.
type ChoicesPolicy int

const (
	// KeepWhenAbsent leaves the option set untouched.
	KeepWhenAbsent ChoicesPolicy = iota
	// ClearWhenAbsent empties the option set.
	ClearWhenAbsent
)

// QuestionPatch lists the fields of an update. Nil pointers are absent keys;
// a nil Choices slice is an absent key while an empty one is an explicit clear.
type QuestionPatch struct {
	Question *string
	Answer   *string
	Choices  []string
}

// QuestionService reconciles questions with their answer and option choices.
// Choices are reused by exact text; every mutation runs in one transaction.
type QuestionService struct {
	questions QuestionStore
	choices   ChoiceStore
	tx        Transactor
	policy    ChoicesPolicy
	log       zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questions QuestionStore, choices ChoiceStore, tx Transactor, policy ChoicesPolicy, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questions: questions,
		choices:   choices,
		tx:        tx,
		policy:    policy,
		log:       log.With().Str("component", "question_service").Logger(),
	}
}

// List returns every question with its answer and options, newest first.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []model.Question{}
	}
	return questions, nil
}

// Get retrieves a question by id.
func (s *QuestionService) Get(ctx context.Context, id int64) (*model.Question, error) {
	return s.questions.GetByID(ctx, id)
}

// Create stores a question, resolving the answer and every option by text.
func (s *QuestionService) Create(ctx context.Context, questionText, answerText string, choiceTexts []string) (*model.Question, error) {
	if questionText == "" {
		return nil, invalid("question", "This field may not be blank.")
	}
	if answerText == "" {
		return nil, invalid("answer", "This field may not be blank.")
	}

	var created *model.Question
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		answer, err := s.resolve(ctx, answerText)
		if err != nil {
			return err
		}

		q := &model.Question{Text: questionText, Answer: *answer}
		if err := s.questions.Create(ctx, q); err != nil {
			return err
		}
		if err := s.replaceChoices(ctx, q.ID, choiceTexts); err != nil {
			return err
		}

		created, err = s.questions.GetByID(ctx, q.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("question_id", created.ID).Msg("Question created")
	return created, nil
}

// Update applies patch to question id.
func (s *QuestionService) Update(ctx context.Context, id int64, patch QuestionPatch) (*model.Question, error) {
	if patch.Question != nil && *patch.Question == "" {
		return nil, invalid("question", "This field may not be blank.")
	}
	if patch.Answer != nil && *patch.Answer == "" {
		return nil, invalid("answer", "This field may not be blank.")
	}

	var updated *model.Question
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		q, err := s.questions.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if patch.Question != nil {
			q.Text = *patch.Question
		}
		if patch.Answer != nil && *patch.Answer != q.Answer.Text {
			answer, err := s.resolve(ctx, *patch.Answer)
			if err != nil {
				return err
			}
			q.Answer = *answer
		}
		if err := s.questions.Update(ctx, q); err != nil {
			return err
		}

		switch {
		case patch.Choices != nil:
			err = s.replaceChoices(ctx, q.ID, patch.Choices)
		case s.policy == ClearWhenAbsent:
			err = s.replaceChoices(ctx, q.ID, nil)
		}
		if err != nil {
			return err
		}

		updated, err = s.questions.GetByID(ctx, q.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("question_id", updated.ID).Msg("Question updated")
	return updated, nil
}

// Delete removes a question and its examinee answer. Shared choices stay.
func (s *QuestionService) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.questions.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info().Int64("question_id", id).Msg("Question deleted")
	return nil
}

func (s *QuestionService) resolve(ctx context.Context, text string) (*model.Choice, error) {
	choice, err := s.choices.GetOrCreate(ctx, text)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int64("choice_id", choice.ID).Str("choice", text).Msg("Choice resolved")
	return choice, nil
}

// replaceChoices makes the option set of questionID exactly the resolved texts.
func (s *QuestionService) replaceChoices(ctx context.Context, questionID int64, texts []string) error {
	ids := make([]int64, 0, len(texts))
	seen := make(map[int64]bool, len(texts))
	for i, text := range texts {
		if text == "" {
			return invalid("choices", fmt.Sprintf("Item %d may not be blank.", i))
		}
		choice, err := s.resolve(ctx, text)
		if err != nil {
			return err
		}
		if !seen[choice.ID] {
			seen[choice.ID] = true
			ids = append(ids, choice.ID)
		}
	}
	return s.questions.SetChoices(ctx, questionID, ids)
}
