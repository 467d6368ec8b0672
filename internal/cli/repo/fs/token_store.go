package fs

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"donee/internal/cli/crypto"
	"donee/internal/cli/repo"
)

// TokenStore — файловое хранилище токена для CLI.
// Without a passphrase or key file the token is written as plain text,
// otherwise it is sealed with AES-GCM and base64 encoded.
type TokenStore struct {
	path       string
	passphrase string
	keyPath    string
	logger     *zap.SugaredLogger
}

var _ repo.TokenStore = (*TokenStore)(nil)

// ErrUnreadableToken — файл токена есть, но расшифровать его нельзя
// (ключ удалён, другой пароль, файл повреждён). Оборачивает repo.ErrNoToken.
var ErrUnreadableToken = fmt.Errorf("stored token cannot be decrypted: %w", repo.ErrNoToken)

type Option func(*TokenStore)

// WithPassphrase derives the encryption key from passphrase (argon2id, random salt per write).
func WithPassphrase(passphrase string) Option {
	return func(s *TokenStore) { s.passphrase = passphrase }
}

// WithKeyFile encrypts with a random key kept in keyPath.
func WithKeyFile(keyPath string) Option {
	return func(s *TokenStore) { s.keyPath = keyPath }
}

// WithLogger задаёт логгер для предупреждений о нечитаемом токене.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *TokenStore) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewTokenStore(path string, opts ...Option) *TokenStore {
	s := &TokenStore{path: path, logger: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the token file location.
func (s *TokenStore) Path() string { return s.path }

func (s *TokenStore) encrypted() bool { return s.passphrase != "" || s.keyPath != "" }

// Save сохраняет auth‑токен в файл.
func (s *TokenStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data := []byte(token)
	if s.encrypted() {
		sealed, err := s.seal(data)
		if err != nil {
			return fmt.Errorf("encrypt token: %w", err)
		}
		data = sealed
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Load читает auth‑токен из файла.
func (s *TokenStore) Load(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", repo.ErrNoToken
		}
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	text := strings.TrimRight(string(b), " \t\r\n")
	if text == "" {
		return "", repo.ErrNoToken
	}
	if !s.encrypted() {
		return text, nil
	}
	plain, err := s.open(text)
	if err != nil {
		if errors.Is(err, ErrUnreadableToken) {
			s.logger.Warnw("stored token is unreadable, continuing without it", "path", s.path, "error", err)
		}
		return "", err
	}
	return string(plain), nil
}

// Clear удаляет файл токена; отсутствие файла не ошибка.
func (s *TokenStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *TokenStore) seal(plain []byte) ([]byte, error) {
	var salt, key []byte
	if s.passphrase != "" {
		var err error
		if salt, err = crypto.NewSalt(); err != nil {
			return nil, err
		}
		key = crypto.DeriveKey(s.passphrase, salt)
	} else {
		var err error
		if key, err = crypto.LoadOrCreateKey(s.keyPath); err != nil {
			return nil, err
		}
	}
	blob, err := crypto.Seal(plain, key)
	if err != nil {
		return nil, err
	}
	out := base64.StdEncoding.EncodeToString(append(salt, blob...))
	return []byte(out), nil
}

// open никогда не создаёт ключ: без ключа токен считается нечитаемым.
func (s *TokenStore) open(text string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableToken, err)
	}
	var key []byte
	if s.passphrase != "" {
		if len(raw) < crypto.SaltLen {
			return nil, fmt.Errorf("%w: %v", ErrUnreadableToken, crypto.ErrCiphertextTooShort)
		}
		key = crypto.DeriveKey(s.passphrase, raw[:crypto.SaltLen])
		raw = raw[crypto.SaltLen:]
	} else {
		key, err = crypto.LoadKey(s.keyPath)
		switch {
		case errors.Is(err, crypto.ErrNoKey):
			return nil, fmt.Errorf("%w: %v", ErrUnreadableToken, err)
		case err != nil:
			return nil, fmt.Errorf("read token key: %w", err)
		}
	}
	plain, err := crypto.Open(raw, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableToken, err)
	}
	return plain, nil
}
