// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"os"
	"testing"
)

// Cross-backend integration checks. These tests run only when the corresponding
// DSN environment variable is set. They are skipped by default to keep local
// developer test runs fast.
func TestCrossBackend_Postgres(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set; skipping Postgres integration test")
	}
	runBackendSmoke(t, "postgres", dsn)
}

func TestCrossBackend_MySQL(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set; skipping MySQL integration test")
	}
	runBackendSmoke(t, "mysql", dsn)
}

// runBackendSmoke exercises the full Store surface against a live backend:
// migrations, the unique-username mapping, and the attributed listing.
func runBackendSmoke(t *testing.T, dbType, dsn string) {
	t.Helper()
	ctx := context.Background()

	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		t.Fatalf("%s NewStoreFromDSN failed: %v", dbType, err)
	}
	defer func() { _ = s.Close() }()

	username := "smoke_" + t.Name()
	id, err := s.CreateUser(ctx, username, "hash")
	if err != nil {
		t.Fatalf("%s CreateUser failed: %v", dbType, err)
	}
	if _, err := s.CreateUser(ctx, username, "hash"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("%s expected ErrDuplicate, got %v", dbType, err)
	}

	if _, err := s.InsertQuote(ctx, "smoke quote", "smoke author", &id); err != nil {
		t.Fatalf("%s InsertQuote failed: %v", dbType, err)
	}
	quotes, err := s.ListQuotes(ctx, 5, 0)
	if err != nil {
		t.Fatalf("%s ListQuotes failed: %v", dbType, err)
	}
	if len(quotes) == 0 {
		t.Fatalf("%s expected at least one quote in listing", dbType)
	}

	// A full import preserves row ids, which bypasses the backend's id
	// generator. Regular inserts afterwards must still get fresh ids
	// instead of colliding with imported rows.
	data, err := s.ExportDataForBackup(ctx)
	if err != nil {
		t.Fatalf("%s ExportDataForBackup failed: %v", dbType, err)
	}
	if err := s.ImportDataFromBackup(ctx, data); err != nil {
		t.Fatalf("%s ImportDataFromBackup failed: %v", dbType, err)
	}
	if _, err := s.CreateUser(ctx, username+"_post_import", "hash"); err != nil {
		t.Fatalf("%s CreateUser after import failed: %v", dbType, err)
	}
	if _, err := s.InsertQuote(ctx, "post-import quote", "smoke author", nil); err != nil {
		t.Fatalf("%s InsertQuote after import failed: %v", dbType, err)
	}
}
