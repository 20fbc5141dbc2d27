package users

import (
	"context"
	"errors"
)

// Sentinel errors surfaced by Repository implementations. The service layer
// translates these into the application error taxonomy.
var (
	// ErrNotFound is returned when no record matches the given key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when a write would violate the
	// storage-level uniqueness constraint on username. It is the
	// authoritative duplicate signal: two concurrent creates can both pass
	// any prior read, but only one insert survives the constraint.
	ErrDuplicateUsername = errors.New("username already exists")
)

// Repository is the narrow query interface over the backing store. Every
// operation borrows a pooled connection for its duration and releases it on
// all exit paths.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	Update(ctx context.Context, u *User) (*User, error)
	Delete(ctx context.Context, id int) (*User, error)
}
