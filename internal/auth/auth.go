package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid shooter token")

// ShooterClaims identify the table a shooter token was issued for. TokenID
// must equal the table's own token.
type ShooterClaims struct {
	SessionID string
	TokenID   string
}

// IssueShooterToken signs an HS256 token that allows shooting on one table.
func IssueShooterToken(secret, sessionID, tokenID string, ttl time.Duration) (string, time.Time, error) {
	exp := time.Now().Add(ttl)
	claims := jwt.MapClaims{
		"session_id": sessionID,
		"jti":        tokenID,
		"scope":      "shoot",
		"exp":        jwt.NewNumericDate(exp).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign shooter token: %w", err)
	}
	return signed, exp, nil
}

// ParseShooterToken validates a shooter token and returns its claims.
func ParseShooterToken(secret, token string) (ShooterClaims, error) {
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return ShooterClaims{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ShooterClaims{}, ErrInvalidToken
	}
	if scope, _ := claims["scope"].(string); scope != "shoot" {
		return ShooterClaims{}, ErrInvalidToken
	}
	sessionID, _ := claims["session_id"].(string)
	tokenID, _ := claims["jti"].(string)
	if sessionID == "" || tokenID == "" {
		return ShooterClaims{}, ErrInvalidToken
	}
	return ShooterClaims{SessionID: sessionID, TokenID: tokenID}, nil
}
