package repository

import (
	"context"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question rows and their option memberships.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// Create inserts the question row. Option memberships are written by SetChoices.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO questions (question, answer_id) VALUES ($1, $2) RETURNING id`,
		q.Text, q.Answer.ID,
	).Scan(&q.ID)
}

// GetByID retrieves a question with its answer and option set.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	db := conn(ctx, r.pool)

	q := &model.Question{}
	err := db.QueryRow(ctx,
		`SELECT q.id, q.question, a.id, a.choice
		 FROM questions q JOIN choices a ON a.id = q.answer_id
		 WHERE q.id = $1`, id,
	).Scan(&q.ID, &q.Text, &q.Answer.ID, &q.Answer.Text)
	if err != nil {
		return nil, notFound(err)
	}

	byQuestion, err := r.choicesFor(ctx, []int64{q.ID})
	if err != nil {
		return nil, err
	}
	q.Choices = byQuestion[q.ID]
	if q.Choices == nil {
		q.Choices = []model.Choice{}
	}
	return q, nil
}

// List returns all questions, newest first.
func (r *QuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT q.id, q.question, a.id, a.choice
		 FROM questions q JOIN choices a ON a.id = q.answer_id
		 ORDER BY q.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	var ids []int64
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Answer.ID, &q.Answer.Text); err != nil {
			return nil, err
		}
		questions = append(questions, q)
		ids = append(ids, q.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return questions, nil
	}

	byQuestion, err := r.choicesFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].Choices = byQuestion[questions[i].ID]
		if questions[i].Choices == nil {
			questions[i].Choices = []model.Choice{}
		}
	}
	return questions, nil
}

func (r *QuestionRepository) choicesFor(ctx context.Context, questionIDs []int64) (map[int64][]model.Choice, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT qc.question_id, c.id, c.choice
		 FROM question_choices qc JOIN choices c ON c.id = qc.choice_id
		 WHERE qc.question_id = ANY($1)
		 ORDER BY c.id`, questionIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byQuestion := make(map[int64][]model.Choice, len(questionIDs))
	for rows.Next() {
		var qid int64
		var c model.Choice
		if err := rows.Scan(&qid, &c.ID, &c.Text); err != nil {
			return nil, err
		}
		byQuestion[qid] = append(byQuestion[qid], c)
	}
	return byQuestion, rows.Err()
}

// Update writes the question text and answer reference.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE questions SET question = $1, answer_id = $2 WHERE id = $3`,
		q.Text, q.Answer.ID, q.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetChoices replaces the option set of a question with exactly choiceIDs.
func (r *QuestionRepository) SetChoices(ctx context.Context, questionID int64, choiceIDs []int64) error {
	db := conn(ctx, r.pool)

	if _, err := db.Exec(ctx, `DELETE FROM question_choices WHERE question_id = $1`, questionID); err != nil {
		return err
	}
	if len(choiceIDs) == 0 {
		return nil
	}

	_, err := db.Exec(ctx,
		`INSERT INTO question_choices (question_id, choice_id)
		 SELECT $1, unnest($2::bigint[])
		 ON CONFLICT DO NOTHING`,
		questionID, choiceIDs,
	)
	return err
}

// Delete removes a question. Memberships and the examinee answer cascade; choices stay.
func (r *QuestionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
