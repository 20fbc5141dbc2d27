package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/credstore-go/apperror"
	"github.com/user/credstore-go/auth"
	"github.com/user/credstore-go/password"
	"github.com/user/credstore-go/users"
)

// fakeRepo implements users.Repository; Authenticate only consults
// GetByUsername.
type fakeRepo struct {
	user *users.User
	err  error
}

func (f *fakeRepo) List(context.Context) ([]users.User, error) { return nil, nil }
func (f *fakeRepo) GetByID(context.Context, int) (*users.User, error) {
	return nil, users.ErrNotFound
}
func (f *fakeRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil || f.user.Username != username {
		return nil, users.ErrNotFound
	}
	return f.user, nil
}
func (f *fakeRepo) Create(ctx context.Context, u *users.User) (*users.User, error) {
	return u, nil
}
func (f *fakeRepo) Update(ctx context.Context, u *users.User) (*users.User, error) {
	return u, nil
}
func (f *fakeRepo) Delete(context.Context, int) (*users.User, error) {
	return nil, users.ErrNotFound
}

func testHasher(t *testing.T) *password.Hasher {
	t.Helper()
	h, err := password.NewHasher("pepper", 4)
	require.NoError(t, err)
	return h
}

func TestAuthenticate_Match(t *testing.T) {
	hasher := testHasher(t)
	digest, err := hasher.Hash("secret1")
	require.NoError(t, err)

	repo := &fakeRepo{user: &users.User{
		ID:             1,
		Username:       "alice",
		FirstName:      "A",
		LastName:       "L",
		PasswordDigest: digest,
	}}
	svc := auth.NewService(repo, hasher)

	u, err := svc.Authenticate(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, 1, u.ID)
	assert.NotEqual(t, "secret1", u.PasswordDigest)
}

func TestAuthenticate_SameSignalForUnknownUserAndWrongPassword(t *testing.T) {
	hasher := testHasher(t)
	digest, err := hasher.Hash("secret1")
	require.NoError(t, err)

	repo := &fakeRepo{user: &users.User{ID: 1, Username: "alice", PasswordDigest: digest}}
	svc := auth.NewService(repo, hasher)

	// Wrong password.
	u, err := svc.Authenticate(context.Background(), "alice", "wrong")
	require.NoError(t, err)
	assert.Nil(t, u)

	// Unknown username: identical outward signal, no enumeration.
	u, err = svc.Authenticate(context.Background(), "mallory", "secret1")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestAuthenticate_StorageErrorIsDistinctFromNoMatch(t *testing.T) {
	hasher := testHasher(t)
	repo := &fakeRepo{err: errors.New("connection reset")}
	svc := auth.NewService(repo, hasher)

	u, err := svc.Authenticate(context.Background(), "alice", "secret1")
	assert.Nil(t, u)
	require.Error(t, err)
	assert.True(t, apperror.IsStorageError(err))
}
