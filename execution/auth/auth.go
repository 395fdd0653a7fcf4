// Package auth produces per-request Authorization headers for the Engine
// API. Headers are fetched fresh for every call (spec.md §6): tokens are
// short-lived and must never be cached across requests.
package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"github.com/sentineld/beacon-execd/network/authorization"
)

// HeaderSource produces the HTTP headers to attach to one Engine API
// request. Implementations must be safe for concurrent use; the Execution
// API Client calls Headers() once per fallback attempt, potentially from
// many goroutines at once.
type HeaderSource interface {
	Headers() (http.Header, error)
}

// NoAuth attaches no headers, for execution nodes that don't require
// Engine API authentication (local devnets, test fixtures).
type NoAuth struct{}

// Headers implements HeaderSource.
func (NoAuth) Headers() (http.Header, error) { return http.Header{}, nil }

// JWTHeaderSource mints a fresh HS256 bearer token per call from a shared
// secret, the way the Engine API's JWT authentication scheme requires: the
// token's iat claim must be within a short clock-skew window of the
// execution node's own clock, so tokens cannot be minted once and reused.
type JWTHeaderSource struct {
	secret []byte
	now    func() time.Time
}

// NewJWTHeaderSource builds a JWTHeaderSource from a raw 32-byte secret.
func NewJWTHeaderSource(secret []byte) *JWTHeaderSource {
	return &JWTHeaderSource{secret: secret, now: time.Now}
}

// Headers implements HeaderSource, returning {"Authorization": "Bearer <jwt>"}.
func (s *JWTHeaderSource) Headers() (http.Header, error) {
	claims := jwt.RegisteredClaims{
		IssuedAt: jwt.NewNumericDate(s.now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "sign engine api jwt")
	}

	h := http.Header{}
	h.Set("Authorization", "Bearer "+signed)
	return h, nil
}

// StaticHeaders builds the Authorization header for a per-endpoint static
// auth suffix parsed by network/authorization.HTTPEndpoint. ok is false for
// authorization.None, meaning the caller's shared HeaderSource (e.g. a
// JWTHeaderSource) should be used instead.
func StaticHeaders(d authorization.Data) (http.Header, bool) {
	switch d.Method {
	case authorization.Basic:
		h := http.Header{}
		h.Set("Authorization", "Basic "+d.Value)
		return h, true
	case authorization.Bearer:
		h := http.Header{}
		h.Set("Authorization", "Bearer "+d.Value)
		return h, true
	default:
		return nil, false
	}
}
