package model

import (
	"strings"
	"time"
)

// User is an account that can authenticate against the API.
// Email is the natural key and the login name.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstname"`
	LastName     string     `json:"lastname"`
	Role         Role       `json:"role"`
	IsActive     bool       `json:"is_active"`
	IsStaff      bool       `json:"is_staff"`
	IsSuperuser  bool       `json:"is_superuser"`
	PasswordHash string     `json:"-"`
	LastLogin    *time.Time `json:"last_login"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserProfile is the public representation of a user.
type UserProfile struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Profile returns the public fields of u.
func (u *User) Profile() UserProfile {
	return UserProfile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// NormalizeEmail lowercases the domain part of an address and keeps the
// local part untouched. Input without "@" is returned trimmed only.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}

// CreateUserRequest is the payload for self registration.
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=5,max=128"`
	FirstName string `json:"firstname" binding:"max=255"`
	LastName  string `json:"lastname" binding:"max=255"`
}

// TokenRequest is the payload for obtaining a bearer token.
type TokenRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateUserRequest is the payload for profile edits. Absent fields are left unchanged.
type UpdateUserRequest struct {
	FirstName *string `json:"firstname" binding:"omitempty,max=255"`
	LastName  *string `json:"lastname" binding:"omitempty,max=255"`
	Password  *string `json:"password" binding:"omitempty,min=5,max=128"`
	Role      *Role   `json:"role" binding:"omitempty,oneof=examinee admin super_admin"`
}
