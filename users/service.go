package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/credstore-go/apperror"
	"github.com/user/credstore-go/password"
)

// Service mediates all reads and writes of user records. It owns the hashing
// of plaintext passwords: no write path persists a password that has not
// passed through the hasher, on create and on update alike.
type Service struct {
	repo   Repository
	hasher *password.Hasher
}

// NewService creates a Service over the given repository and hasher.
func NewService(repo Repository, hasher *password.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// List returns all user records. Callers are trusted internal code; the HTTP
// boundary strips digests via the model's serialization rules.
func (s *Service) List(ctx context.Context) ([]User, error) {
	out, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewStorageError("could not get users", err)
	}
	return out, nil
}

// Get returns the record with the given id.
func (s *Service) Get(ctx context.Context, id int) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
		}
		return nil, apperror.NewStorageError(fmt.Sprintf("could not get user %d", id), err)
	}
	return u, nil
}

// Create validates the input, hashes the password, and persists a new record
// with a store-assigned id. A duplicate username yields a ConflictError: the
// storage-level unique constraint is the authoritative signal, so two
// concurrent creates with the same username resolve to exactly one success.
func (s *Service) Create(ctx context.Context, input CredentialInput) (*User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.NewInternalError("could not hash password", err)
	}

	u := &User{
		Username:       input.Username,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PasswordDigest: digest,
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, apperror.NewConflictError(fmt.Sprintf("user with username %q already exists", input.Username), nil)
		}
		return nil, apperror.NewStorageError(fmt.Sprintf("could not create user %q", input.Username), err)
	}
	return created, nil
}

// Update replaces the username, name fields, and password of the record with
// the given id. The incoming plaintext is hashed before persisting, same as
// create.
func (s *Service) Update(ctx context.Context, id int, input CredentialInput) (*User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperror.NewInternalError("could not hash password", err)
	}

	u := &User{
		ID:             id,
		Username:       input.Username,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PasswordDigest: digest,
	}

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
		}
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, apperror.NewConflictError(fmt.Sprintf("user with username %q already exists", input.Username), nil)
		}
		return nil, apperror.NewStorageError(fmt.Sprintf("could not update user %d", id), err)
	}
	return updated, nil
}

// Delete removes the record with the given id and returns it.
func (s *Service) Delete(ctx context.Context, id int) (*User, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id %d not found", id), nil)
		}
		return nil, apperror.NewStorageError(fmt.Sprintf("could not delete user %d", id), err)
	}
	return deleted, nil
}

func validateInput(input CredentialInput) error {
	if input.Username == "" {
		return apperror.NewValidationError("username is required", nil)
	}
	if input.Password == "" {
		return apperror.NewValidationError("password is required", nil)
	}
	return nil
}
