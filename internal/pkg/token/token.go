// Package token inspects upstream-issued access tokens. The gateway
// never holds the signing secret - verification is the backend's job -
// so parsing is unverified and only used for expiry checks and claim
// projection into the request context.
package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var ErrMalformed = errors.New("malformed access token")

type Claims struct {
	UserID int64  `json:"user_id"`
	Mode   string `json:"mode,omitempty"`
	jwtlib.RegisteredClaims
}

// Inspect decodes the token without signature verification.
func Inspect(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parser := jwtlib.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, ErrMalformed
	}
	return claims, nil
}

// Expired reports whether the token's exp claim has passed. Tokens
// without an exp claim are treated as unexpired.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(now)
}

// ExpiresWithin reports whether the token expires inside the window,
// used to refresh the profile proactively on bootstrap.
func (c *Claims) ExpiresWithin(now time.Time, window time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(now.Add(window))
}
