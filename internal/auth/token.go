// Package auth inspects bearer tokens on the client side. The client never
// validates signatures (that is the backend's job); it only peeks at claims
// to avoid restoring a session whose token is already dead.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Expired reports whether token is a JWT whose expiry has passed. Opaque
// non-JWT tokens and JWTs without an exp claim are treated as live; the
// backend's 401 handling remains the authority either way.
func Expired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
