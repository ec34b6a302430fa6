package service

import (
	"context"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/rs/zerolog"
)

// AnswerService records the examinee answer of a question.
type AnswerService struct {
	answers   AnswerStore
	questions QuestionStore
	tx        Transactor
	log       zerolog.Logger
}

// NewAnswerService creates a new AnswerService.
func NewAnswerService(answers AnswerStore, questions QuestionStore, tx Transactor, log zerolog.Logger) *AnswerService {
	return &AnswerService{
		answers:   answers,
		questions: questions,
		tx:        tx,
		log:       log.With().Str("component", "answer_service").Logger(),
	}
}

// Get returns the recorded answer of questionID.
func (s *AnswerService) Get(ctx context.Context, questionID int64) (*model.ExamineeAnswer, error) {
	if _, err := s.questions.GetByID(ctx, questionID); err != nil {
		return nil, err
	}
	return s.answers.GetByQuestion(ctx, questionID)
}

// Save records the response to questionID, replacing any previous one.
// Correctness is exact text equality with the question's answer.
func (s *AnswerService) Save(ctx context.Context, questionID int64, req model.SaveExamineeAnswerRequest) (*model.ExamineeAnswer, error) {
	if req.ExamineeAnswer == "" {
		return nil, invalid("examinee_answer", "This field may not be blank.")
	}

	var saved *model.ExamineeAnswer
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		q, err := s.questions.GetByID(ctx, questionID)
		if err != nil {
			return err
		}

		answer := &model.ExamineeAnswer{
			QuestionID:   q.ID,
			Answer:       req.ExamineeAnswer,
			IsSubmitted:  req.IsSubmitted,
			IsCorrect:    req.ExamineeAnswer == q.Answer.Text,
			IsBookmarked: req.IsBookmarked,
		}
		if err := s.answers.Upsert(ctx, answer); err != nil {
			return err
		}
		saved = answer
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int64("question_id", questionID).Bool("is_correct", saved.IsCorrect).Msg("Answer saved")
	return saved, nil
}
