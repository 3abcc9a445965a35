// Package session persists the authentication token and the cached user
// object across program runs. It is the client's only durable state; the
// backend owns everything else.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/replaycoach/internal/client/models"
	"github.com/dmitrijs2005/replaycoach/internal/dbx"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// Store defines the session persistence operations.
//
// There is no expiry or refresh logic here: an invalid token is only
// discovered when a request carrying it fails.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	User(ctx context.Context) (*models.User, error)
	SetUser(ctx context.Context, user *models.User) error
	// SaveAuth stores token and user in one transaction.
	SaveAuth(ctx context.Context, token string, user *models.User) error
	// ClearAuth removes token and user atomically.
	ClearAuth(ctx context.Context) error
	IsAuthenticated(ctx context.Context) bool
	Close() error
}

// SQLiteStore keeps the session in a local key/value table.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open creates (if needed) and opens the session database at path,
// creating parent directories as required.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o770); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an existing database handle. The caller owns the schema.
func NewWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	if err != nil {
		return fmt.Errorf("init session schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := q.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key string, value []byte) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set session[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	v, err := s.get(ctx, s.db, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *SQLiteStore) SetToken(ctx context.Context, token string) error {
	return s.set(ctx, s.db, keyToken, []byte(token))
}

func (s *SQLiteStore) User(ctx context.Context) (*models.User, error) {
	v, err := s.get(ctx, s.db, keyUser)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		// A corrupt cached user is not fatal; behave as if absent.
		return nil, nil
	}
	return &u, nil
}

func (s *SQLiteStore) SetUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.set(ctx, s.db, keyUser, data)
}

func (s *SQLiteStore) SaveAuth(ctx context.Context, token string, user *models.User) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keyToken, []byte(token)); err != nil {
			return err
		}
		if user == nil {
			return nil
		}
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("marshal user: %w", err)
		}
		return s.set(ctx, tx, keyUser, data)
	})
}

func (s *SQLiteStore) ClearAuth(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM session WHERE key IN (?, ?)`, keyToken, keyUser); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	})
}

// IsAuthenticated reports whether a non-empty token is stored. Read errors
// count as "not authenticated".
func (s *SQLiteStore) IsAuthenticated(ctx context.Context) bool {
	tok, err := s.Token(ctx)
	return err == nil && tok != ""
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
