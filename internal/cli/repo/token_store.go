package repo

import (
	"context"
	"errors"
)

// TokenKey — единственный ключ, под которым хранится bearer-токен.
const TokenKey = "donee_access_token"

// ErrNoToken is returned by Load when no token is stored.
var ErrNoToken = errors.New("no token stored")

// TokenStore описывает абстракцию хранилища auth-токена на клиенте.
// At most one token is held at a time; Save replaces it and Clear is idempotent.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
