package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// User represents an operator account. Every item log references the
// acting user through its operator field.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	FullName     *string   `json:"full_name,omitempty"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
}

// CreateUserRequest is the request body for creating a new user.
type CreateUserRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	FullName    *string `json:"full_name,omitempty"`
	IsSuperuser bool    `json:"is_superuser"`
}

func (r *CreateUserRequest) Validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(r.Email) > 255 {
		return fmt.Errorf("email must be at most 255 characters")
	}
	if len(r.Password) < 8 || len(r.Password) > 40 {
		return fmt.Errorf("password must be between 8 and 40 characters")
	}
	if r.FullName != nil && len(*r.FullName) > 255 {
		return fmt.Errorf("full name must be at most 255 characters")
	}
	return nil
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ChangePasswordRequest is the request body for changing the caller's
// password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	if r.CurrentPassword == "" {
		return fmt.Errorf("current password is required")
	}
	if len(r.NewPassword) < 8 || len(r.NewPassword) > 40 {
		return fmt.Errorf("new password must be between 8 and 40 characters")
	}
	return nil
}
