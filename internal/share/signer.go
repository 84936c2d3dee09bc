// Package share issues short-lived signed tokens that gate read-only
// access to a single record's dispatch summary.
package share

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Signer generates and validates HMAC-signed share tokens.
type Signer struct {
	secretKey []byte
}

// NewSigner creates a signer over the configured secret.
func NewSigner(secretKey []byte) *Signer {
	return &Signer{secretKey: secretKey}
}

// Issue signs a token granting access to one record until the TTL
// elapses.
func (s *Signer) Issue(recordID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"record_id": recordID,
		"jti":       uuid.New().String(),
		"exp":       time.Now().Add(ttl).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry and returns the record id the
// token grants access to.
func (s *Signer) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}

	recordID, ok := (*claims)["record_id"].(string)
	if !ok || recordID == "" {
		return "", errors.New("missing or invalid record_id claim")
	}
	return recordID, nil
}
