package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Token store kinds accepted by TOKEN_STORE / -token-store.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

const defaultBaseURL = "127.0.0.1:8000"

type Config struct {
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Resolved origin, built from BaseURL and EnableHTTPS.
	ServerURL string `env:"-"`

	// Token persistence
	TokenStore      string `env:"TOKEN_STORE"`
	TokenFile       string `env:"TOKEN_FILE"`
	TokenPassphrase string `env:"TOKEN_PASSPHRASE"`
	EncryptToken    bool   `env:"TOKEN_ENCRYPT"`
	ClientDBPath    string `env:"CLIENT_DB_PATH"`
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPrefix     string `env:"REDIS_PREFIX"`

	LogLevel string `env:"LOG_LEVEL"`
	Version  bool   `env:"-"` // show client version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// значения из env служат значениями по умолчанию для флагов
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the auth API in host:port form")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "use https scheme for the auth API")
	flag.StringVar(&cfg.TokenStore, "token-store", cfg.TokenStore, "token store: file|sqlite|redis|memory")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to the token file (file store)")
	flag.BoolVar(&cfg.EncryptToken, "encrypt-token", cfg.EncryptToken, "encrypt the token file with a local random key")
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "path to the client SQLite DB (sqlite store)")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address (redis store)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills everything NewConfig leaves empty.
func (cfg *Config) applyDefaults() {
	// BaseURL must be "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	switch cfg.TokenStore {
	case StoreFile, StoreSQLite, StoreRedis, StoreMemory:
	default:
		cfg.TokenStore = StoreFile
	}

	cfgDir, _ := os.UserConfigDir()
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(cfgDir, "donee", "access_token")
	}
	if cfg.ClientDBPath == "" {
		cfg.ClientDBPath = filepath.Join(cfgDir, "donee", "client.sqlite")
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.RedisPrefix == "" {
		cfg.RedisPrefix = "donee:"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}
