package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"donee/internal/cli/api"
	"donee/internal/cli/repo"
	fsrepo "donee/internal/cli/repo/fs"
	"donee/internal/cli/repo/memory"
	redisrepo "donee/internal/cli/repo/redis"
	reposqlite "donee/internal/cli/repo/sqlite"
	"donee/internal/cli/service"
	"donee/internal/config"
)

func noop() error { return nil }

// OpenTokenStore открывает хранилище токена, выбранное в конфиге,
// и возвращает (store, cleanup, error). cleanup закрывает соединения.
func OpenTokenStore(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (repo.TokenStore, func() error, error) {
	switch cfg.TokenStore {
	case config.StoreMemory:
		return memory.NewTokenStore(), noop, nil
	case config.StoreSQLite:
		s, err := reposqlite.Open(ctx, cfg.ClientDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open client db: %w", err)
		}
		return s, s.Close, nil
	case config.StoreRedis:
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return redisrepo.NewTokenStore(rdb, cfg.RedisPrefix), rdb.Close, nil
	default:
		opts := []fsrepo.Option{fsrepo.WithLogger(logger)}
		switch {
		case cfg.TokenPassphrase != "":
			opts = append(opts, fsrepo.WithPassphrase(cfg.TokenPassphrase))
		case cfg.EncryptToken:
			opts = append(opts, fsrepo.WithKeyFile(KeyFile(cfg)))
		}
		return fsrepo.NewTokenStore(cfg.TokenFile, opts...), noop, nil
	}
}

// NewAuthService собирает клиент API и сервис аутентификации поверх выбранного хранилища.
func NewAuthService(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (service.AuthService, func() error, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	store, cleanup, err := OpenTokenStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Debugw("token store opened", "kind", cfg.TokenStore, "server", cfg.ServerURL)
	client := api.NewClient(cfg.ServerURL, store)
	return service.NewAuthService(client, store, logger), cleanup, nil
}

// KeyFile is where the random token key lives, next to the token file.
func KeyFile(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(cfg.TokenFile), "token.key")
}
