// Package store provides user persistence backends. The primary backend is
// MongoDB; Postgres and an in-memory map are alternates selected by
// configuration.
package store

import (
	"context"
	"errors"

	"github.com/mvaldes/memberhub/internal/models"
)

// ErrNotFound is returned when a lookup or update matches no user record.
var ErrNotFound = errors.New("store: not found")

// UserStore is the full persistence surface. HTTP handlers depend on the
// subset they use, not on this interface.
type UserStore interface {
	// Create inserts a new user. Missing ID, role, and creation time are
	// filled in by the store. Email uniqueness is not enforced.
	Create(ctx context.Context, user *models.User) error

	// FindByEmail returns the first user with the given email, or
	// ErrNotFound. Duplicate emails resolve to an unspecified first match.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns the user with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// UpdateRole sets the role of the target user. Returns ErrNotFound if
	// the id matches no record.
	UpdateRole(ctx context.Context, id string, role models.Role) error

	// List returns all users, newest first.
	List(ctx context.Context) ([]models.User, error)
}
