package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt reads the exp claim of a JWT bearer token without verifying the
// signature. The token stays opaque to everything else; this only feeds the
// "expires in" hint in the header. ok is false for non-JWT tokens.
func ExpiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Remaining is the time left before the token expires, zero when unknown or
// already past.
func (s State) Remaining(now time.Time) time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	left := s.ExpiresAt.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
