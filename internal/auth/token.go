// Package auth verifies the HS256 bearer tokens issued by the platform's
// identity service. This service never mints tokens; it only checks them and
// extracts the acting user.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"gigmate/marketplace-service/internal/model"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload. The registered subject carries the user ID;
// role is one of employee, employer or admin.
type Claims struct {
	jwt.RegisteredClaims

	Role string `json:"role"`
}

// Verifier checks bearer tokens against the shared signing secret.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier returns a Verifier for tokens signed with secret. Only HS256 is
// accepted and an expiry claim is mandatory.
func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256"}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Verify parses the token and returns the user ID and role. Expiry and
// not-before run through the parser's own validation; a missing subject or an
// unknown role fails verification.
func (v *Verifier) Verify(tokenString string) (string, model.Role, error) {
	claims := &Claims{}
	tok, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return "", "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	role := model.Role(claims.Role)
	if !role.Valid() {
		return "", "", fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return claims.Subject, role, nil
}
