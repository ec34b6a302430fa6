package repository

import (
	"context"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExamineeAnswerRepository handles examinee answer data access.
type ExamineeAnswerRepository struct {
	pool *pgxpool.Pool
}

// NewExamineeAnswerRepository creates a new ExamineeAnswerRepository.
func NewExamineeAnswerRepository(pool *pgxpool.Pool) *ExamineeAnswerRepository {
	return &ExamineeAnswerRepository{pool: pool}
}

// GetByQuestion retrieves the answer recorded for a question.
func (r *ExamineeAnswerRepository) GetByQuestion(ctx context.Context, questionID int64) (*model.ExamineeAnswer, error) {
	a := &model.ExamineeAnswer{}
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT id, question_id, examinee_answer, is_submitted, is_correct, is_bookmarked, created_at, updated_at
		 FROM examinee_answers WHERE question_id = $1`, questionID,
	).Scan(&a.ID, &a.QuestionID, &a.Answer, &a.IsSubmitted, &a.IsCorrect, &a.IsBookmarked, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// Upsert creates or replaces the single answer of a question.
func (r *ExamineeAnswerRepository) Upsert(ctx context.Context, a *model.ExamineeAnswer) error {
	return conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO examinee_answers (question_id, examinee_answer, is_submitted, is_correct, is_bookmarked)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (question_id) DO UPDATE
		 SET examinee_answer = EXCLUDED.examinee_answer,
		     is_submitted = EXCLUDED.is_submitted,
		     is_correct = EXCLUDED.is_correct,
		     is_bookmarked = EXCLUDED.is_bookmarked,
		     updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		a.QuestionID, a.Answer, a.IsSubmitted, a.IsCorrect, a.IsBookmarked,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}
