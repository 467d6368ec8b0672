package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"donee/internal/cli/repo"
	"donee/internal/middleware"
)

// Options describe a single request. The zero value is an authenticated GET without body.
type Options struct {
	Method  string
	Body    any
	Headers map[string]string
	// SkipAuth disables the Authorization header even when a token is stored.
	SkipAuth bool
}

// Response is a decoded 2xx response.
// Data holds the JSON body as received, or {"message": text} for non-JSON bodies.
// Data is nil when the body was empty.
type Response struct {
	Status int
	Header http.Header
	Data   json.RawMessage
}

// Decode unmarshals Data into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Client talks to the auth API rooted at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  repo.TokenStore
}

type ClientOption func(*Client)

// WithHTTPClient replaces the default client (request id + logging transport).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, tokens repo.TokenStore, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: middleware.Chain(http.DefaultTransport)},
		tokens:  tokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the origin all paths are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// Request issues one HTTP request against baseURL+path.
// Non-2xx responses are returned as *RequestError.
func (c *Client) Request(ctx context.Context, path string, opts Options) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	if !opts.SkipAuth && c.tokens != nil {
		token, err := c.tokens.Load(ctx)
		switch {
		case err == nil && token != "":
			req.Header.Set("Authorization", "Bearer "+token)
		case err != nil && !errors.Is(err, repo.ErrNoToken):
			return nil, fmt.Errorf("load token: %w", err)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	data, err := decodeBody(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		if ok {
			return nil, err
		}
		// недекодируемое тело ошибки не скрывает статус
		data = nil
	}

	if !ok {
		return nil, newRequestError(resp.StatusCode, data)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Data: data}, nil
}

// decodeBody normalizes a body: JSON is kept as is, anything else becomes {"message": text}.
func decodeBody(contentType string, raw []byte) (json.RawMessage, error) {
	if strings.Contains(contentType, "application/json") {
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil
		}
		if !json.Valid(raw) {
			return nil, errors.New("decode response: invalid JSON body")
		}
		return json.RawMessage(raw), nil
	}
	if len(raw) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(map[string]string{"message": string(raw)})
	if err != nil {
		return nil, err
	}
	return b, nil
}
