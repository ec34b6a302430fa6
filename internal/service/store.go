package service

import (
	"context"
	"time"

	"github.com/examdesk/examdesk-backend/internal/model"
)

// UserStore is the persistence contract for users.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// ChoiceStore is the persistence contract for choices.
type ChoiceStore interface {
	GetOrCreate(ctx context.Context, text string) (*model.Choice, error)
	GetByID(ctx context.Context, id int64) (*model.Choice, error)
	List(ctx context.Context) ([]model.Choice, error)
	Create(ctx context.Context, c *model.Choice) error
	Update(ctx context.Context, c *model.Choice) error
	Delete(ctx context.Context, id int64) error
}

// QuestionStore is the persistence contract for questions and their choice sets.
type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	List(ctx context.Context) ([]model.Question, error)
	Update(ctx context.Context, q *model.Question) error
	SetChoices(ctx context.Context, questionID int64, choiceIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// AnswerStore is the persistence contract for examinee answers.
type AnswerStore interface {
	GetByQuestion(ctx context.Context, questionID int64) (*model.ExamineeAnswer, error)
	Upsert(ctx context.Context, a *model.ExamineeAnswer) error
}

// Transactor runs fn as one atomic unit of work.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
