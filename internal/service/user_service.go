package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/examdesk/examdesk-backend/internal/access"
	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/examdesk/examdesk-backend/internal/repository"
	"github.com/rs/zerolog"
)

// MinPasswordLength is the shortest password accepted at registration and on edits.
const MinPasswordLength = 5

// NewUser describes an account to register.
type NewUser struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        model.Role
	IsStaff     bool
	IsSuperuser bool
}

// UserService handles registration, login and profile edits.
type UserService struct {
	users               UserStore
	tx                  Transactor
	auth                *AuthService
	allowSelfRoleChange bool
	log                 zerolog.Logger
}

// NewUserService creates a new UserService.
// When allowSelfRoleChange is false only a super admin may change their own role.
func NewUserService(users UserStore, tx Transactor, auth *AuthService, allowSelfRoleChange bool, log zerolog.Logger) *UserService {
	return &UserService{
		users:               users,
		tx:                  tx,
		auth:                auth,
		allowSelfRoleChange: allowSelfRoleChange,
		log:                 log.With().Str("component", "user_service").Logger(),
	}
}

// CreateUser registers an examinee account.
func (s *UserService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	return s.Register(ctx, NewUser{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      model.RoleExaminee,
	})
}

// CreateSuperuser registers a super admin with the staff and superuser flags set.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*model.User, error) {
	return s.Register(ctx, NewUser{
		Email:       email,
		Password:    password,
		Role:        model.RoleSuperAdmin,
		IsStaff:     true,
		IsSuperuser: true,
	})
}

// Register validates and stores a new account with an arbitrary role.
func (s *UserService) Register(ctx context.Context, in NewUser) (*model.User, error) {
	email := model.NormalizeEmail(in.Email)
	if email == "" {
		return nil, invalid("email", "This field may not be blank.")
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleExaminee
	}
	if !in.Role.Valid() {
		return nil, invalid("role", fmt.Sprintf("%q is not a valid choice.", in.Role))
	}

	hash, err := s.auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		IsActive:     true,
		IsStaff:      in.IsStaff,
		IsSuperuser:  in.IsSuperuser,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, invalid("email", "user with this email already exists.")
		}
		return nil, err
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// Login verifies the credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.auth.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int64("user_id", user.ID).Msg("Token issued")
	return &model.TokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to its active user.
// Any failure is reported as access.ErrAuthenticationRequired except storage errors.
func (s *UserService) Authenticate(ctx context.Context, token string) (*model.User, *Claims, error) {
	claims, err := s.auth.ValidateToken(token)
	if err != nil {
		return nil, nil, access.ErrAuthenticationRequired
	}
	if err := s.auth.ValidateSession(ctx, claims); err != nil {
		if errors.Is(err, ErrSessionRevoked) {
			return nil, nil, access.ErrAuthenticationRequired
		}
		return nil, nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, access.ErrAuthenticationRequired
		}
		return nil, nil, err
	}
	if err := access.IsAuthenticated(user); err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// Logout revokes the session of the presented token.
func (s *UserService) Logout(ctx context.Context, claims *Claims) error {
	return s.auth.RevokeSession(ctx, claims.ID)
}

// GetByID retrieves a user.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns every user. Restricted to admins.
func (s *UserService) List(ctx context.Context, actor *model.User) ([]model.User, error) {
	if err := access.IsAdminUser(actor); err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// UpdateSelf applies a profile edit to the caller's own account.
func (s *UserService) UpdateSelf(ctx context.Context, actor *model.User, req model.UpdateUserRequest) (*model.User, error) {
	if err := access.IsAuthenticated(actor); err != nil {
		return nil, err
	}
	if err := s.checkSelfRole(actor, req); err != nil {
		return nil, err
	}
	return s.update(ctx, actor.ID, req)
}

// UpdateOther applies a profile edit to any account. Restricted to admins.
func (s *UserService) UpdateOther(ctx context.Context, actor *model.User, targetID int64, req model.UpdateUserRequest) (*model.User, error) {
	if err := access.IsAdminUser(actor); err != nil {
		return nil, err
	}
	if targetID == actor.ID {
		if err := s.checkSelfRole(actor, req); err != nil {
			return nil, err
		}
	}
	return s.update(ctx, targetID, req)
}

// checkSelfRole gates a change of the actor's own role when self role change is disabled.
func (s *UserService) checkSelfRole(actor *model.User, req model.UpdateUserRequest) error {
	if req.Role == nil || *req.Role == actor.Role || s.allowSelfRoleChange {
		return nil
	}
	return access.IsSuperAdminUser(actor)
}

func (s *UserService) update(ctx context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	if req.Password != nil {
		if err := checkPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.Role != nil && !req.Role.Valid() {
		return nil, invalid("role", fmt.Sprintf("%q is not a valid choice.", *req.Role))
	}

	var updated *model.User
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.FirstName != nil {
			user.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			user.LastName = *req.LastName
		}
		if req.Role != nil {
			user.Role = *req.Role
		}
		if req.Password != nil {
			hash, err := s.auth.HashPassword(*req.Password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			user.PasswordHash = hash
		}

		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", updated.ID).Msg("User updated")
	return updated, nil
}

func checkPassword(password string) error {
	if password == "" {
		return invalid("password", "This field may not be blank.")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalid("password", fmt.Sprintf("Ensure this field has at least %d characters.", MinPasswordLength))
	}
	return nil
}
