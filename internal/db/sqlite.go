// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Quoteboard.
// This file contains the SQLite implementation of the database store, the
// embedded file-backed backend used by default.
package db // import "github.com/toeirei/quoteboard/internal/db"

import (
	"context"

	"github.com/toeirei/quoteboard/internal/model"
	"github.com/uptrace/bun"
)

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct {
	bun *bun.DB
}

// CreateUser adds a new user row and returns its generated id.
func (s *SqliteStore) CreateUser(ctx context.Context, username, passwordHash string) (int, error) {
	return CreateUserBun(ctx, s.bun, username, passwordHash)
}

// GetUserByUsername retrieves a user by exact username match.
func (s *SqliteStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return GetUserByUsernameBun(ctx, s.bun, username)
}

// CountQuotes returns the total number of quotes.
func (s *SqliteStore) CountQuotes(ctx context.Context) (int, error) {
	return CountQuotesBun(ctx, s.bun)
}

// ListQuotes retrieves one bounded page of quote views.
func (s *SqliteStore) ListQuotes(ctx context.Context, limit, offset int) ([]model.QuoteView, error) {
	return ListQuotesBun(ctx, s.bun, limit, offset)
}

// InsertQuote persists a quote and returns the created view.
func (s *SqliteStore) InsertQuote(ctx context.Context, content, author string, ownerID *int) (*model.QuoteView, error) {
	return InsertQuoteBun(ctx, s.bun, content, author, ownerID)
}

// ExportDataForBackup retrieves all data from the database for a backup.
// It uses a transaction to ensure a consistent snapshot of the data.
func (s *SqliteStore) ExportDataForBackup(ctx context.Context) (*model.BackupData, error) {
	return ExportDataForBackupBun(ctx, s.bun)
}

// ImportDataFromBackup restores the database from a backup data structure.
// It performs a full wipe-and-replace within a single transaction.
func (s *SqliteStore) ImportDataFromBackup(ctx context.Context, backup *model.BackupData) error {
	return ImportDataFromBackupBun(ctx, s.bun, backup)
}

// IntegrateDataFromBackup restores data from a backup in a non-destructive
// way, skipping entries that already exist.
func (s *SqliteStore) IntegrateDataFromBackup(ctx context.Context, backup *model.BackupData) error {
	return IntegrateDataFromBackupBun(ctx, s.bun, backup)
}

// Close releases the underlying database handle.
func (s *SqliteStore) Close() error {
	return s.bun.Close()
}
