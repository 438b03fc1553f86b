// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// PINPrefix starts every participant PIN
	PINPrefix = "MM-"
	pinDigits = "0123456789"
	pinLength = 4

	adminSubject = "admin"
	tokenIssuer  = "manito-manita"
)

var (
	ErrInvalidToken = errors.New("invalid admin token")
	ErrEmptySecret  = errors.New("token secret is empty")
)

// NewID returns a random UUID for database rows
func NewID() string {
	return uuid.NewString()
}

// GeneratePIN creates a participant PIN of the form MM-####.
// Uniqueness is enforced by the store, not here.
func GeneratePIN() (string, error) {
	digits, err := gonanoid.Generate(pinDigits, pinLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate PIN: %w", err)
	}
	return PINPrefix + digits, nil
}

// VerifyAdminPin compares a supplied admin PIN against the stored one in constant time
func VerifyAdminPin(given, stored string) bool {
	if given == "" || stored == "" {
		return false
	}
	return hmac.Equal([]byte(given), []byte(stored))
}

// IssueAdminToken signs an HS256 admin session token valid for ttl
func IssueAdminToken(secret string, ttl time.Duration) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrEmptySecret
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   adminSubject,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAdminToken validates signature, expiry and subject of an admin session token
func ParseAdminToken(secret, tokenString string) error {
	if secret == "" {
		return ErrEmptySecret
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithSubject(adminSubject),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
