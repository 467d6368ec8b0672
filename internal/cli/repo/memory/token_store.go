package memory

import (
	"context"
	"sync"

	"donee/internal/cli/repo"
)

// TokenStore keeps the token in process memory. Useful for tests and for
// one-shot invocations that should not leave anything on disk.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

var _ repo.TokenStore = (*TokenStore)(nil)

func NewTokenStore() *TokenStore { return &TokenStore{} }

func (s *TokenStore) Load(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", repo.ErrNoToken
	}
	return s.token, nil
}

func (s *TokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}
