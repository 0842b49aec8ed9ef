package models

import (
	"fmt"
	"net/mail"
	"time"
)

// Role is a user's authorization level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account in the user store.
type User struct {
	ID           string    `json:"id"         bson:"_id,omitempty"`
	Name         string    `json:"name"       bson:"name"`
	Email        string    `json:"email"      bson:"email"`
	PasswordHash string    `json:"-"          bson:"password_hash"` // never serialize
	Role         Role      `json:"role"       bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// ValidationError describes malformed form input. It is surfaced to the
// browser as an inline message, not as an HTTP error status.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const (
	maxNameLen     = 30
	minPasswordLen = 5
	maxPasswordLen = 30
)

// SignupRequest is the form body for POST /signup.
type SignupRequest struct {
	Name     string
	Email    string
	Password string
	Role     string // optional; defaults to "user"
}

// Validate checks the signup form and normalizes the role field.
// An empty role defaults to "user". A submitted role of "admin" is
// accepted as-is; signup does not restrict who may claim it.
func (r *SignupRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Message: "Name is required"}
	}
	if len(r.Name) > maxNameLen {
		return &ValidationError{Message: fmt.Sprintf("Name must be %d characters or fewer", maxNameLen)}
	}
	if !validEmail(r.Email) {
		return &ValidationError{Message: "A valid email address is required"}
	}
	if err := validPassword(r.Password); err != nil {
		return err
	}
	if r.Role == "" {
		r.Role = string(RoleUser)
	}
	if !Role(r.Role).Valid() {
		return &ValidationError{Message: "Role must be user or admin"}
	}
	return nil
}

// UserRole returns the normalized role. Call Validate first.
func (r *SignupRequest) UserRole() Role {
	if r.Role == "" {
		return RoleUser
	}
	return Role(r.Role)
}

// LoginRequest is the form body for POST /login.
type LoginRequest struct {
	Email    string
	Password string
}

func (r *LoginRequest) Validate() error {
	if !validEmail(r.Email) {
		return &ValidationError{Message: "A valid email address is required"}
	}
	return validPassword(r.Password)
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validPassword(pw string) error {
	if len(pw) < minPasswordLen || len(pw) > maxPasswordLen {
		return &ValidationError{
			Message: fmt.Sprintf("Password must be between %d and %d characters", minPasswordLen, maxPasswordLen),
		}
	}
	return nil
}
