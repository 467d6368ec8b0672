package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"donee/internal/cli/repo"
)

// TokenStore keeps the token in redis under <prefix>donee_access_token.
// Handy when several client processes on a host must share one login.
type TokenStore struct {
	rdb *goredis.Client
	key string
}

var _ repo.TokenStore = (*TokenStore)(nil)

func NewTokenStore(rdb *goredis.Client, prefix string) *TokenStore {
	return &TokenStore{rdb: rdb, key: prefix + repo.TokenKey}
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	tok, err := s.rdb.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", repo.ErrNoToken
		}
		return "", err
	}
	if tok == "" {
		return "", repo.ErrNoToken
	}
	return tok, nil
}

// Save stores the token without TTL; expiry is the server's concern.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	return s.rdb.Set(ctx, s.key, token, 0).Err()
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}
