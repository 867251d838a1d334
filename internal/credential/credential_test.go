// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package credential

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/toeirei/quoteboard/internal/db"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := "file:test_cred_" + t.Name() + "?mode=memory&cache=shared"
	s, err := db.NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewService(s)
}

func TestRegisterAndVerify(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("unexpected error registering: %v", err)
	}

	identity, err := svc.Verify(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error verifying: %v", err)
	}
	if identity.Username != "alice" || identity.ID <= 0 {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestRegister_TrimsInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "  bob  ", "  hunter2  "); err != nil {
		t.Fatalf("unexpected error registering with padding: %v", err)
	}

	// The trimmed forms are what got stored.
	if _, err := svc.Verify(ctx, "bob", "hunter2"); err != nil {
		t.Fatalf("expected trimmed credentials to verify: %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "carol", "first"); err != nil {
		t.Fatalf("unexpected error registering: %v", err)
	}
	if err := svc.Register(ctx, "carol", "second"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegister_EmptyFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw"},
		{"whitespace username", "   ", "pw"},
		{"empty password", "dave", ""},
		{"whitespace password", "dave", "   "},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := svc.Register(ctx, c.username, c.password)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestVerify_InvalidCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Register(ctx, "erin", "correct"); err != nil {
		t.Fatalf("unexpected error registering: %v", err)
	}

	// Unknown user and wrong password must be indistinguishable.
	if _, err := svc.Verify(ctx, "nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.Verify(ctx, "erin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestRegister_StoresOnlyHashes(t *testing.T) {
	dsn := "file:test_cred_hashes?mode=memory&cache=shared"
	s, err := db.NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	defer func() { _ = s.Close() }()
	svc := NewService(s)
	ctx := context.Background()

	const password = "plaintext-password"
	if err := svc.Register(ctx, "frank", password); err != nil {
		t.Fatalf("unexpected error registering: %v", err)
	}

	u, err := s.GetUserByUsername(ctx, "frank")
	if err != nil {
		t.Fatalf("unexpected error fetching user: %v", err)
	}
	if u.PasswordHash == password || strings.Contains(u.PasswordHash, password) {
		t.Fatalf("plaintext password leaked into storage")
	}
	if !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", u.PasswordHash)
	}
}
