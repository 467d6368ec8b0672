package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"donee/internal/config"
)

// withTempConfig возвращает конфиг клиента, у которого токен лежит во временном каталоге.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		ServerURL:  serverURL,
		TokenStore: config.StoreFile,
		TokenFile:  filepath.Join(dir, "donee", "access_token"),
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newFakeAPI поднимает сервер с маршрутами auth API; токен "T" выдаётся на пароль "pw-12345".
func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["email"] == "taken@b.c" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email already registered."})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": "u-1", "email": req["email"], "username": req["username"]})
	})
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["password"] != "pw-12345" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "T", "token_type": "bearer"})
	})
	r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"id": "u-1", "email": "a@b.c", "username": "alice"})
	})
	r.Post("/auth/forgot-password", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Reset code sent", "debug_code": "123456"})
	})
	r.Post("/auth/verify-reset-code", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Code is valid."})
	})
	r.Post("/auth/reset-password", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "code"}, "msg": "String should match pattern"}},
		})
	})
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}
