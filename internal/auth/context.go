package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoCredential = errors.New("no bearer credential available")
	ErrTokenExpired = errors.New("bearer credential expired")
	ErrMalformedJWT = errors.New("bearer credential is not a valid JWT")
)

// TokenSource hands out the bearer credential for privileged backend calls.
// The identity provider owns issuing and storing tokens.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type tokenKey struct{}

// WithToken attaches a bearer token to ctx; it takes precedence over the
// configured TokenSource.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(tokenKey{}).(string); ok {
		return val
	}
	return ""
}

// StaticTokenSource serves a single pre-issued token. When the token is a JWT
// its exp claim is checked before each use; opaque tokens are passed through.
type StaticTokenSource struct {
	token string
	now   func() time.Time
}

func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: strings.TrimSpace(token), now: time.Now}
}

func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	if tok := TokenFromContext(ctx); tok != "" {
		return tok, checkExpiry(tok, s.now())
	}
	if s.token == "" {
		return "", ErrNoCredential
	}
	return s.token, checkExpiry(s.token, s.now())
}

func checkExpiry(token string, now time.Time) error {
	if strings.Count(token, ".") != 2 {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ErrMalformedJWT
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return ErrMalformedJWT
	}
	if exp != nil && !now.Before(exp.Time) {
		return ErrTokenExpired
	}
	return nil
}
