package repository

import (
	"context"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChoiceRepository handles choice data access.
type ChoiceRepository struct {
	pool *pgxpool.Pool
}

// NewChoiceRepository creates a new ChoiceRepository.
func NewChoiceRepository(pool *pgxpool.Pool) *ChoiceRepository {
	return &ChoiceRepository{pool: pool}
}

// GetOrCreate returns the choice labelled text, inserting it first if absent.
// The UNIQUE constraint on choices.choice makes concurrent calls converge on one row.
func (r *ChoiceRepository) GetOrCreate(ctx context.Context, text string) (*model.Choice, error) {
	c := &model.Choice{}
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO choices (choice) VALUES ($1)
		 ON CONFLICT (choice) DO UPDATE SET choice = EXCLUDED.choice
		 RETURNING id, choice`, text,
	).Scan(&c.ID, &c.Text)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID retrieves a choice by ID.
func (r *ChoiceRepository) GetByID(ctx context.Context, id int64) (*model.Choice, error) {
	c := &model.Choice{}
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT id, choice FROM choices WHERE id = $1`, id,
	).Scan(&c.ID, &c.Text)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// List returns all choices, newest first.
func (r *ChoiceRepository) List(ctx context.Context) ([]model.Choice, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT id, choice FROM choices ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var choices []model.Choice
	for rows.Next() {
		var c model.Choice
		if err := rows.Scan(&c.ID, &c.Text); err != nil {
			return nil, err
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// Create inserts a new choice.
func (r *ChoiceRepository) Create(ctx context.Context, c *model.Choice) error {
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO choices (choice) VALUES ($1) RETURNING id`, c.Text,
	).Scan(&c.ID)
	if pgCode(err) == pgUniqueViolation {
		return ErrDuplicateChoice
	}
	return err
}

// Update renames a choice.
func (r *ChoiceRepository) Update(ctx context.Context, c *model.Choice) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `UPDATE choices SET choice = $1 WHERE id = $2`, c.Text, c.ID)
	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return ErrDuplicateChoice
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a choice and its option memberships.
// It fails with ErrChoiceInUse while a question still uses it as its answer.
func (r *ChoiceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM choices WHERE id = $1`, id)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return ErrChoiceInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
