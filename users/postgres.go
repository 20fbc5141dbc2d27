package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the Postgres error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// Querier is the subset of pool behavior the repository needs. It is
// satisfied by *pgxpool.Pool, whose query methods acquire a pooled connection
// and release it when the operation completes, on success and on failure.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository persists user records in the users table.
type PostgresRepository struct {
	db Querier
}

// NewPostgresRepository creates a PostgresRepository on top of db.
func NewPostgresRepository(db Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, "firstName", "lastName", password_digest`

func scanUser(row pgx.Row, u *User) error {
	return row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.PasswordDigest)
}

// List returns all user records, digests included; redaction is the HTTP
// boundary's concern.
func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return out, nil
}

// GetByID returns the record with the given id, or ErrNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting user by id %d: %w", id, err)
	}
	return &u, nil
}

// GetByUsername returns the record with the given username, or ErrNotFound.
// Usernames are matched case-sensitively.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var u User
	if err := scanUser(r.db.QueryRow(ctx, query, username), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	return &u, nil
}

// Create inserts a new record and returns it with its store-assigned id. A
// unique-constraint violation on username surfaces as ErrDuplicateUsername;
// no pre-read is consulted, the constraint is the last and only line of
// defense against concurrent creates.
func (r *PostgresRepository) Create(ctx context.Context, u *User) (*User, error) {
	query := `INSERT INTO users (username, "firstName", "lastName", password_digest)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id`

	err := r.db.QueryRow(ctx, query, u.Username, u.FirstName, u.LastName, u.PasswordDigest).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return u, nil
}

// Update replaces every field except id and returns the stored record.
func (r *PostgresRepository) Update(ctx context.Context, u *User) (*User, error) {
	query := `UPDATE users
	          SET username = $2, "firstName" = $3, "lastName" = $4, password_digest = $5
	          WHERE id = $1
	          RETURNING ` + userColumns

	var updated User
	err := scanUser(r.db.QueryRow(ctx, query, u.ID, u.Username, u.FirstName, u.LastName, u.PasswordDigest), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("updating user %d: %w", u.ID, err)
	}
	return &updated, nil
}

// Delete removes the record with the given id and returns it, or ErrNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id int) (*User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	var u User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("deleting user %d: %w", id, err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
