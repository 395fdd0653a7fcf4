package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/sentineld/beacon-execd/execution/auth"
	"github.com/sentineld/beacon-execd/network/authorization"
)

func TestJWTHeaderSourceProducesValidBearerToken(t *testing.T) {
	secret := []byte("01234567890123456789012345678901")
	src := auth.NewJWTHeaderSource(secret)

	headers, err := src.Headers()
	require.NoError(t, err)

	authHeader := headers.Get("Authorization")
	require.True(t, strings.HasPrefix(authHeader, "Bearer "))

	rawToken := strings.TrimPrefix(authHeader, "Bearer ")
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(rawToken, claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)
}

func TestNoAuthReturnsEmptyHeaders(t *testing.T) {
	headers, err := auth.NoAuth{}.Headers()
	require.NoError(t, err)
	require.Empty(t, headers.Get("Authorization"))
}

func TestStaticHeadersForNoneMethodDefersToFallback(t *testing.T) {
	_, ok := auth.StaticHeaders(authorization.Data{Method: authorization.None})
	require.False(t, ok)
}

func TestStaticHeadersForBasicMethod(t *testing.T) {
	headers, ok := auth.StaticHeaders(authorization.Data{Method: authorization.Basic, Value: "dXNlcjpwYXNz"})
	require.True(t, ok)
	require.Equal(t, "Basic dXNlcjpwYXNz", headers.Get("Authorization"))
}

func TestStaticHeadersForBearerMethod(t *testing.T) {
	headers, ok := auth.StaticHeaders(authorization.Data{Method: authorization.Bearer, Value: "token"})
	require.True(t, ok)
	require.Equal(t, "Bearer token", headers.Get("Authorization"))
}

func TestHeadersAreMintedFreshEachCall(t *testing.T) {
	secret := []byte("01234567890123456789012345678901")
	src := auth.NewJWTHeaderSource(secret)

	for i := 0; i < 2; i++ {
		headers, err := src.Headers()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(headers.Get("Authorization"), "Bearer "))
	}
}
