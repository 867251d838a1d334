// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

// package token issues and validates the signed bearer tokens that
// authenticate quote submissions. Tokens are HMAC-SHA256 JWTs whose
// subject is the user's numeric id.
package token // import "github.com/toeirei/quoteboard/internal/token"

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/toeirei/quoteboard/internal/model"
)

// Service signs and verifies tokens with a single shared secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. A ttl of zero issues tokens without
// an expiry claim.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity. The subject claim carries
// the user id in decimal form.
func (s *Service) Issue(identity *model.UserIdentity) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  strconv.Itoa(identity.ID),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate parses and verifies a raw token string and returns the user id
// from its subject. An empty string is ErrMissing; anything that fails to
// parse or verify is ErrInvalid regardless of the underlying cause.
func (s *Service) Validate(raw string) (int, error) {
	if raw == "" {
		return 0, ErrMissing
	}
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalid
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, ErrInvalid
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id <= 0 {
		return 0, ErrInvalid
	}
	return id, nil
}

// FromAuthorizationHeader extracts the bearer token from an Authorization
// header value. An absent header is ErrMissing; a present header that is
// not of the form "Bearer <token>" is ErrMalformed.
func FromAuthorizationHeader(header string) (string, error) {
	if header == "" {
		return "", ErrMissing
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrMalformed
	}
	return parts[1], nil
}
