package http

import (
	"context"
	"fmt"
	"net/http"
)

// TokenSource supplies bearer tokens for outbound requests.
// Implementations are expected to cache and refresh tokens themselves.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a plain function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

type authTransport struct {
	tokens    TokenSource
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Token(req.Context())
	if err != nil {
		return nil, fmt.Errorf("acquire access token: %w", err)
	}

	reqCopy := req.Clone(req.Context())
	if token != "" {
		reqCopy.Header.Set("Authorization", "Bearer "+token)
	}

	return t.transport.RoundTrip(reqCopy)
}

type headerTransport struct {
	header    string
	value     string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set(t.header, t.value)

	return t.transport.RoundTrip(reqCopy)
}

// WithTokenSource fetches a bearer token per request from ts.
func WithTokenSource(ts TokenSource) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			tokens:    ts,
			transport: rt,
		}
	})
}

// WithAPIKey sends a static key in the given header instead of a bearer token.
func WithAPIKey(header, key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			header:    header,
			value:     key,
			transport: rt,
		}
	})
}
