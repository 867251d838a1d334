// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

// package credential manages user registration and password verification.
// Passwords are stored only as salted bcrypt hashes; plaintext never leaves
// the scope of the two methods below and is never logged.
package credential // import "github.com/toeirei/quoteboard/internal/credential"

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/toeirei/quoteboard/internal/db"
	"github.com/toeirei/quoteboard/internal/model"
)

// Service is the credential store. It is stateless apart from the storage
// backend it was constructed with.
type Service struct {
	store db.Store
}

// NewService creates a credential service backed by the given store.
func NewService(store db.Store) *Service {
	return &Service{store: store}
}

// Register creates a new user with a bcrypt-hashed password. Inputs are
// trimmed first; empty values yield a *ValidationError. A username that
// already exists yields ErrUsernameTaken. Uniqueness is enforced by the
// backend's constraint, so under concurrent registration exactly one
// caller wins and the rest land here.
func (s *Service) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" {
		return &ValidationError{Field: "username"}
	}
	if password == "" {
		return &ValidationError{Field: "password"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.store.CreateUser(ctx, username, string(hash)); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Verify checks a username/password pair and returns the matching identity.
// An unknown username and a wrong password both return
// ErrInvalidCredentials; bcrypt's comparison does the same work in either
// case, so the two are indistinguishable from outside.
func (s *Service) Verify(ctx context.Context, username, password string) (*model.UserIdentity, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" {
		return nil, &ValidationError{Field: "username"}
	}
	if password == "" {
		return nil, &ValidationError{Field: "password"}
	}

	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &model.UserIdentity{ID: user.ID, Username: user.Username}, nil
}
