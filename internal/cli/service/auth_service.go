package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"donee/internal/cli/api"
	"donee/internal/cli/model"
	"donee/internal/cli/repo"
)

// ErrNotLoggedIn is returned by TokenInfo when no token is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService описывает юзкейс-уровень аутентификации для CLI.
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)

	// Login логирует пользователя и сохраняет выданный токен.
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)

	// Logout очищает локальный токен; сервер не вызывается.
	Logout(ctx context.Context) error

	// Me возвращает текущего пользователя по сохранённому токену.
	Me(ctx context.Context) (*model.User, error)

	ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) (*model.MessageResponse, error)
	VerifyResetCode(ctx context.Context, req model.VerifyResetCodeRequest) (*model.MessageResponse, error)
	ResetPassword(ctx context.Context, req model.ResetPasswordRequest) (*model.MessageResponse, error)

	// TokenInfo reads the stored token's claims without verification.
	TokenInfo(ctx context.Context) (*model.TokenInfo, error)
}

type authService struct {
	client *api.Client
	tokens repo.TokenStore
	logger *zap.SugaredLogger
}

var _ AuthService = (*authService)(nil)

func NewAuthService(client *api.Client, tokens repo.TokenStore, logger *zap.SugaredLogger) AuthService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &authService{client: client, tokens: tokens, logger: logger}
}

func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	resp, err := s.post(ctx, "/auth/register", req)
	if err != nil {
		return nil, err
	}
	u := &model.User{Raw: resp.Data}
	s.decode(resp, "/auth/register", u)
	return u, nil
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	resp, err := s.post(ctx, "/auth/login", req)
	if err != nil {
		return nil, err
	}
	tr := &model.TokenResponse{Raw: resp.Data}
	s.decode(resp, "/auth/login", tr)
	if tr.AccessToken != "" {
		if err := s.tokens.Save(ctx, tr.AccessToken); err != nil {
			return nil, fmt.Errorf("saving token: %w", err)
		}
		s.logger.Debugw("token stored", "token_type", tr.TokenType)
	}
	return tr, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

func (s *authService) Me(ctx context.Context) (*model.User, error) {
	resp, err := s.client.Request(ctx, "/auth/me", api.Options{Method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	u := &model.User{Raw: resp.Data}
	s.decode(resp, "/auth/me", u)
	return u, nil
}

func (s *authService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) (*model.MessageResponse, error) {
	return s.message(ctx, "/auth/forgot-password", req)
}

func (s *authService) VerifyResetCode(ctx context.Context, req model.VerifyResetCodeRequest) (*model.MessageResponse, error) {
	return s.message(ctx, "/auth/verify-reset-code", req)
}

func (s *authService) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) (*model.MessageResponse, error) {
	return s.message(ctx, "/auth/reset-password", req)
}

func (s *authService) TokenInfo(ctx context.Context) (*model.TokenInfo, error) {
	tok, err := s.tokens.Load(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNoToken) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	claims := jwt.RegisteredClaims{}
	// подпись проверяет только сервер; клиент лишь читает claims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return nil, fmt.Errorf("token is not a JWT: %w", err)
	}
	info := &model.TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return info, nil
}

func (s *authService) message(ctx context.Context, path string, body any) (*model.MessageResponse, error) {
	resp, err := s.post(ctx, path, body)
	if err != nil {
		return nil, err
	}
	m := &model.MessageResponse{Raw: resp.Data}
	s.decode(resp, path, m)
	return m, nil
}

// post sends an unauthenticated JSON POST.
func (s *authService) post(ctx context.Context, path string, body any) (*api.Response, error) {
	start := time.Now()
	resp, err := s.client.Request(ctx, path, api.Options{
		Method:   http.MethodPost,
		Body:     body,
		SkipAuth: true,
	})
	if err != nil {
		s.logger.Debugw("auth call failed", "path", path, "status", api.StatusOf(err), "error", err)
		return nil, err
	}
	s.logger.Debugw("auth call", "path", path, "status", resp.Status, "took", time.Since(start))
	return resp, nil
}

// decode заполняет типизированные поля из ответа. Несовпадение формы не ошибка:
// тело целиком остаётся в Raw, поля, которые не разобрались, остаются пустыми.
func (s *authService) decode(resp *api.Response, path string, out any) {
	if err := resp.Decode(out); err != nil {
		s.logger.Debugw("unexpected reply shape", "path", path, "error", err)
	}
}
