package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mahimDev/bistro-boss-server/config"
)

// TokenTTL is the fixed validity window for issued tokens.
const TokenTTL = time.Hour

// Claims holds the typed JWT payload. Email identifies the principal;
// everything else a caller asserts at issuance is carried as-is.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// IssueToken creates a signed JWT for the asserted claims.
//
// Issuance performs no authorization check: any caller may request a token
// for any claims body, so a token proves nothing beyond what the caller
// already asserted. Authorization happens on use (see app/guard).
func IssueToken(email, name string) (string, error) {
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// ValidateToken parses and validates a JWT string, checking signature and
// expiry.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
