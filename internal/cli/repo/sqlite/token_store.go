package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"donee/internal/cli/repo"
)

// TokenStore keeps the token in a local SQLite key/value table,
// one row under repo.TokenKey.
type TokenStore struct {
	db *sql.DB
}

var _ repo.TokenStore = (*TokenStore)(nil)

// Open открывает (и создаёт при необходимости) файл БД и выполняет миграции.
func Open(ctx context.Context, dbPath string) (*TokenStore, error) {
	if dbPath == "" {
		return nil, errors.New("empty client db path")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	s := &TokenStore{db: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate client db: %w", err)
	}
	return s, nil
}

// Close закрывает соединение с БД.
func (s *TokenStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate гарантирует наличие необходимых таблиц.
func (s *TokenStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, initialDDL())
	return err
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	var tok string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, repo.TokenKey).Scan(&tok)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repo.ErrNoToken
		}
		return "", err
	}
	if tok == "" {
		return "", repo.ErrNoToken
	}
	return tok, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv(key, value, updated_at) VALUES(?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		repo.TokenKey, token, time.Now().Unix(),
	)
	return err
}

func (s *TokenStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, repo.TokenKey)
	return err
}
