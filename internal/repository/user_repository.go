package repository

import (
	"context"
	"time"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, firstname, lastname, role, is_active, is_staff, is_superuser,
	password_hash, last_login, created_at, updated_at`

// UserRepository handles user data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsActive, &u.IsStaff,
		&u.IsSuperuser, &u.PasswordHash, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByEmail retrieves a user by their unique email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// List returns every user ordered by ID.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO users (email, firstname, lastname, role, is_active, is_staff, is_superuser, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		u.Email, u.FirstName, u.LastName, u.Role, u.IsActive, u.IsStaff, u.IsSuperuser, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if pgCode(err) == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	return err
}

// Update writes every mutable column of u.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	err := conn(ctx, r.pool).QueryRow(ctx,
		`UPDATE users
		 SET firstname = $1, lastname = $2, role = $3, is_active = $4, is_staff = $5,
		     is_superuser = $6, password_hash = $7, updated_at = NOW()
		 WHERE id = $8
		 RETURNING updated_at`,
		u.FirstName, u.LastName, u.Role, u.IsActive, u.IsStaff, u.IsSuperuser, u.PasswordHash, u.ID,
	).Scan(&u.UpdatedAt)
	return notFound(err)
}

// TouchLastLogin records a successful authentication.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	return err
}
