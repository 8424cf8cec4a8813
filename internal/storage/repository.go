package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/reachon-admin/internal/session"
)

// Repository persists the client session in a local sqlite file, the
// terminal counterpart of browser local storage.
type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS session (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable fails early when the database file is read-only.
func (r *Repository) CheckWritable(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO session (key, value, updated_at) VALUES ('__writable', '', '')`); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// SaveTokens stores both tokens under the accessToken and refreshToken keys.
func (r *Repository) SaveTokens(ctx context.Context, tokens session.Tokens) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO session (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at
`)
	if err != nil {
		return fmt.Errorf("prepare save statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for key, value := range map[string]string{
		keyAccessToken:  tokens.AccessToken,
		keyRefreshToken: tokens.RefreshToken,
	} {
		if _, err := stmt.ExecContext(ctx, key, value, now); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// LoadTokens returns empty tokens when nothing has been stored yet.
func (r *Repository) LoadTokens(ctx context.Context) (session.Tokens, error) {
	var tokens session.Tokens
	var err error
	if tokens.AccessToken, err = r.loadValue(ctx, keyAccessToken); err != nil {
		return session.Tokens{}, err
	}
	if tokens.RefreshToken, err = r.loadValue(ctx, keyRefreshToken); err != nil {
		return session.Tokens{}, err
	}
	return tokens, nil
}

func (r *Repository) ClearTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE key IN (?, ?)`, keyAccessToken, keyRefreshToken)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
)

func (r *Repository) loadValue(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return value, nil
}
