package callprovider

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Join permissions understood by the token-based provider.
const (
	PermAllowJoin = "allow_join"
	PermAllowMod  = "allow_mod"
)

// MintToken produces a signed join credential for the token-based call
// provider: an HS256 JWT binding the API identity, the permission set and a
// validity window starting at issuedAt. Pure computation; the secret never
// leaves the server.
func MintToken(apiKey, secret string, permissions []string, validity time.Duration, issuedAt time.Time) (string, error) {
	if apiKey == "" || secret == "" {
		return "", fmt.Errorf("mint token: %w", ErrNotConfigured)
	}

	claims := jwt.MapClaims{
		"apikey":      apiKey,
		"permissions": permissions,
		"version":     2,
		"iat":         issuedAt.Unix(),
		"exp":         issuedAt.Add(validity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	return signed, nil
}
