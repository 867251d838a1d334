// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/toeirei/quoteboard/internal/model"
)

// Store defines the interface for all database operations in Quoteboard.
// This allows for multiple database backends to be implemented. Exactly
// one implementation is selected at startup and used for the lifetime of
// the process.
type Store interface {
	// User methods
	CreateUser(ctx context.Context, username, passwordHash string) (int, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Quote methods
	CountQuotes(ctx context.Context) (int, error)
	ListQuotes(ctx context.Context, limit, offset int) ([]model.QuoteView, error)
	InsertQuote(ctx context.Context, content, author string, ownerID *int) (*model.QuoteView, error)

	// Backup methods
	ExportDataForBackup(ctx context.Context) (*model.BackupData, error)
	ImportDataFromBackup(ctx context.Context, backup *model.BackupData) error
	IntegrateDataFromBackup(ctx context.Context, backup *model.BackupData) error

	Close() error
}

// StoreFactory creates stores for migration targets. It exists so the
// migrate path can be exercised with fakes in tests.
type StoreFactory interface {
	NewStoreFromDSN(dbType, dsn string) (Store, error)
}
