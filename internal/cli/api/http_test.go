package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donee/internal/cli/repo"
	fsrepo "donee/internal/cli/repo/fs"
	"donee/internal/cli/repo/memory"
)

func newTestClient(t *testing.T, h http.HandlerFunc, store repo.TokenStore) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL+"/", store)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestRequest_JSONSuccess_ReturnsBodyUnchanged(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(w, http.StatusOK, `{"id":"u1","email":"a@b.c","extra":[1,2]}`)
	}, nil)

	resp, err := c.Request(context.Background(), "/auth/me", Options{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"id":"u1","email":"a@b.c","extra":[1,2]}`, string(resp.Data))

	var out map[string]any
	require.NoError(t, resp.Decode(&out))
	assert.Equal(t, "u1", out["id"])
}

func TestRequest_SendsJSONBodyAndHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		var m map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&m))
		assert.Equal(t, "a@b.c", m["email"])
		writeJSON(w, http.StatusCreated, `{"ok":true}`)
	}, nil)

	resp, err := c.Request(context.Background(), "/auth/register", Options{
		Method:  http.MethodPost,
		Body:    map[string]string{"email": "a@b.c"},
		Headers: map[string]string{"X-Extra": "yes"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
}

func TestRequest_CallerHeadersOverrideDefaults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}, nil)
	_, err := c.Request(context.Background(), "/x", Options{Headers: map[string]string{"Content-Type": "text/plain"}})
	require.NoError(t, err)
}

func TestRequest_NoBodyWhenNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		assert.Empty(t, b)
		w.WriteHeader(http.StatusOK)
	}, nil)
	resp, err := c.Request(context.Background(), "/x", Options{Method: http.MethodPost})
	require.NoError(t, err)
	assert.Nil(t, resp.Data)
}

func TestRequest_AuthHeader(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTokenStore()
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, `{}`)
	}, store)

	// нет токена — нет заголовка
	_, err := c.Request(ctx, "/auth/me", Options{})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Save(ctx, "T"))
	_, err = c.Request(ctx, "/auth/me", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer T", got)

	// SkipAuth подавляет заголовок даже при наличии токена
	_, err = c.Request(ctx, "/auth/login", Options{SkipAuth: true})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRequest_UnreadableTokenSendsNoHeader(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "token.key")
	store := fsrepo.NewTokenStore(filepath.Join(dir, "access_token"), fsrepo.WithKeyFile(keyPath))
	require.NoError(t, store.Save(ctx, "T"))
	require.NoError(t, os.Remove(keyPath))

	got := "unset"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		writeJSON(w, http.StatusUnauthorized, `{"detail":"Not authenticated"}`)
	}, store)
	_, err := c.Request(ctx, "/auth/me", Options{})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Empty(t, got)
}

type brokenStore struct{ memory.TokenStore }

func (*brokenStore) Load(context.Context) (string, error) { return "", errors.New("disk on fire") }

func TestRequest_TokenStoreErrorPropagates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("request must not be sent")
	}, &brokenStore{})
	_, err := c.Request(context.Background(), "/auth/me", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestRequest_PlainTextIsWrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "pong")
	}, nil)
	resp, err := c.Request(context.Background(), "/ping", Options{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"pong"}`, string(resp.Data))
}

func TestRequest_InvalidJSONOnSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{`)
	}, nil)
	_, err := c.Request(context.Background(), "/x", Options{})
	require.Error(t, err)
	var re *RequestError
	assert.False(t, errors.As(err, &re))
}

func TestRequest_ErrorMessages(t *testing.T) {
	cases := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
	}{
		{"detail string", 400, "application/json", `{"detail":"x"}`, "x"},
		{"validation list", 422, "application/json",
			`{"detail":[{"loc":["body","email"],"msg":"invalid","type":"value_error"}]}`, "body.email: invalid"},
		{"validation list multi", 422, "application/json",
			`{"detail":[{"loc":["body","email"],"msg":"invalid"},{"loc":["body","items",0],"msg":"bad"}]}`,
			"body.email: invalid\nbody.items.0: bad"},
		{"validation entry without loc", 422, "application/json", `{"detail":[{"msg":"oops"}]}`, "oops"},
		{"message fallback", 409, "application/json", `{"message":"taken"}`, "taken"},
		{"empty detail falls through to message", 400, "application/json", `{"detail":"","message":"m"}`, "m"},
		{"object detail rendered as json", 400, "application/json", `{"detail":{"code":7}}`, `{"code":7}`},
		{"empty list is generic", 422, "application/json", `{"detail":[]}`, "Request failed (422)"},
		{"no fields", 500, "application/json", `{"error":"x"}`, "Request failed (500)"},
		{"text body", 502, "text/html", "Bad Gateway", "Bad Gateway"},
		{"empty text body", 503, "text/plain", "", "Request failed (503)"},
		{"broken json", 500, "application/json", "{", "Request failed (500)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}, nil)
			_, err := c.Request(context.Background(), "/x", Options{})
			require.Error(t, err)
			assert.Equal(t, tc.want, err.Error())

			var re *RequestError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tc.status, re.Status)
			assert.Equal(t, tc.status, StatusOf(err))
		})
	}
}

func TestRequestError_CarriesData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"detail":"Invalid credentials."}`)
	}, nil)
	_, err := c.Request(context.Background(), "/auth/login", Options{Method: http.MethodPost})
	var re *RequestError
	require.True(t, errors.As(err, &re))
	assert.JSONEq(t, `{"detail":"Invalid credentials."}`, string(re.Data))
	assert.Equal(t, MessageDetail("Invalid credentials."), re.Detail)
}

func TestRequest_TransportErrors(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", nil)
	_, err := c.Request(context.Background(), "/x", Options{})
	assert.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))

	c = NewClient("http://[::1", nil)
	_, err = c.Request(context.Background(), "/x", Options{})
	assert.Error(t, err)

	_, err = NewClient("http://example.invalid", nil).Request(context.Background(), "/x",
		Options{Body: map[string]any{"c": make(chan int)}})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "encode request body"))
}

func TestRequest_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{}`)
	}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Request(ctx, "/x", Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
