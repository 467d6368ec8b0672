package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

var sugar = zap.NewNop().Sugar()

// SetLogger задаёт логгер для мидлварей.
func SetLogger(l *zap.SugaredLogger) {
	if l != nil {
		sugar = l
	}
}

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// WithLogging logs every outgoing request with its status and duration.
// The Authorization header is never logged.
func WithLogging(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := next.RoundTrip(r)
		duration := time.Since(start)
		if err != nil {
			sugar.Warnw("request failed",
				"method", r.Method,
				"url", r.URL.String(),
				"request_id", r.Header.Get(RequestIDHeader),
				"duration", duration,
				"error", err,
			)
			return nil, err
		}
		sugar.Debugw("request",
			"method", r.Method,
			"url", r.URL.String(),
			"request_id", r.Header.Get(RequestIDHeader),
			"status", resp.StatusCode,
			"authenticated", r.Header.Get("Authorization") != "",
			"duration", duration,
		)
		return resp, nil
	})
}
