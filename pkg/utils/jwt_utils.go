package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "sdtech-backend"

var ErrEmptySecret = errors.New("jwt secret is not configured")

// Claims defines the JWT claims structure.
// The field names follow the access tokens issued by Supabase Auth, so tokens minted
// by the hosted provider with the same secret validate here too.
type Claims struct {
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`     // "authenticated" for Supabase tokens
	AppRole string `json:"app_role,omitempty"` // profile role at issue time
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a signed HS256 token for a user id.
func GenerateAccessToken(secret []byte, userID, email, appRole string, ttl time.Duration) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, ErrEmptySecret
	}
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		Email:   email,
		Role:    "authenticated",
		AppRole: appRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken parses and validates a JWT token string.
// It returns the claims if the token is valid, otherwise an error.
func ValidateToken(secret []byte, tokenString string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}
