package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taskhub/task-manager-api/models"
)

// ErrDuplicateUsername is returned when the users.username unique
// constraint rejects an insert.
var ErrDuplicateUsername = errors.New("Username already exists")

// UserStore runs user queries against an injected database handle.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// GetByID fetches a user by primary key. Returns (nil, nil) when no
// such user exists.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password, created_at FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername fetches a user by exact username match. Returns
// (nil, nil) when no such user exists.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, username, password, created_at FROM users WHERE username = $1", username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. The password must already be hashed. The
// unique constraint on username is the authoritative duplicate guard;
// its violation maps to ErrDuplicateUsername.
func (s *UserStore) Create(ctx context.Context, username, hashedPassword string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id, username, password, created_at",
		username, hashedPassword,
	).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite (used in tests) reports the constraint as plain text
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
