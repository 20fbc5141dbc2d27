package auth

import (
	"context"
	"errors"

	"github.com/user/credstore-go/apperror"
	"github.com/user/credstore-go/password"
	"github.com/user/credstore-go/users"
)

// Service answers whether a username/password pair is valid.
type Service struct {
	repo   users.Repository
	hasher *password.Hasher
}

// NewService creates an authentication Service over the credential store's
// repository and the password hasher.
func NewService(repo users.Repository, hasher *password.Hasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// Authenticate looks up the user by username and verifies the supplied
// password against the stored digest. It returns the full record on a match
// and (nil, nil) both for an unknown username and for a digest mismatch — the
// same outward signal, so callers cannot enumerate usernames. Storage
// failures are errors, distinct from "no match".
func (s *Service) Authenticate(ctx context.Context, username, plain string) (*users.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, nil
		}
		return nil, apperror.NewStorageError("could not authenticate user", err)
	}

	if !s.hasher.Verify(plain, u.PasswordDigest) {
		return nil, nil
	}
	return u, nil
}
