package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the subset of access-token claims the client reads. The
// token is issued and verified by the backend; the client only decodes it.
type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// parseClaims decodes the claims of an access token without verifying the
// signature — the signing key belongs to the backend.
func parseClaims(token string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
