package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// WithRequestID tags each request with a fresh uuid unless the caller set one.
func WithRequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		if r.Header.Get(RequestIDHeader) != "" {
			return next.RoundTrip(r)
		}
		// RoundTripper must not modify the caller's request
		r2 := r.Clone(r.Context())
		r2.Header.Set(RequestIDHeader, uuid.NewString())
		return next.RoundTrip(r2)
	})
}

// Chain wraps base with WithLogging and WithRequestID, the stack used by the CLI client.
func Chain(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return WithRequestID(WithLogging(base))
}
