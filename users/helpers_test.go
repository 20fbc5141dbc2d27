package users_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/user/credstore-go/password"
	"github.com/user/credstore-go/users"
)

// memoryRepository is a mutex-guarded stand-in for the backing store. Like
// the real table, it enforces the unique constraint on username at the
// storage level, so it exercises the same duplicate signal the Postgres
// repository maps from a constraint violation.
type memoryRepository struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]users.User
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 1, byID: make(map[int]users.User)}
}

func (m *memoryRepository) List(ctx context.Context) ([]users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]users.User, 0, len(m.byID))
	for id := 1; id < m.nextID; id++ {
		if u, ok := m.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id int) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &u, nil
}

func (m *memoryRepository) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, users.ErrNotFound
}

func (m *memoryRepository) Create(ctx context.Context, u *users.User) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Username == u.Username {
			return nil, users.ErrDuplicateUsername
		}
	}
	u.ID = m.nextID
	m.nextID++
	m.byID[u.ID] = *u
	return u, nil
}

func (m *memoryRepository) Update(ctx context.Context, u *users.User) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[u.ID]; !ok {
		return nil, users.ErrNotFound
	}
	for id, existing := range m.byID {
		if id != u.ID && existing.Username == u.Username {
			return nil, users.ErrDuplicateUsername
		}
	}
	m.byID[u.ID] = *u
	stored := m.byID[u.ID]
	return &stored, nil
}

func (m *memoryRepository) Delete(ctx context.Context, id int) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	delete(m.byID, id)
	return &u, nil
}

// failingRepository simulates a broken backing store.
type failingRepository struct {
	err error
}

func (f *failingRepository) List(context.Context) ([]users.User, error) { return nil, f.err }
func (f *failingRepository) GetByID(context.Context, int) (*users.User, error) {
	return nil, f.err
}
func (f *failingRepository) GetByUsername(context.Context, string) (*users.User, error) {
	return nil, f.err
}
func (f *failingRepository) Create(context.Context, *users.User) (*users.User, error) {
	return nil, f.err
}
func (f *failingRepository) Update(context.Context, *users.User) (*users.User, error) {
	return nil, f.err
}
func (f *failingRepository) Delete(context.Context, int) (*users.User, error) {
	return nil, f.err
}

func newHasher(t *testing.T) *password.Hasher {
	t.Helper()
	h, err := password.NewHasher("test-pepper", 4)
	require.NoError(t, err)
	return h
}
