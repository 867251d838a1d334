// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

// package backup moves board data in and out of zstd-compressed JSON
// archives, and migrates entire boards between storage backends.
package backup // import "github.com/toeirei/quoteboard/internal/backup"

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/toeirei/quoteboard/internal/db"
	"github.com/toeirei/quoteboard/internal/model"
)

// RestoreOptions controls restore behavior used by Restore.
type RestoreOptions struct {
	// Full indicates whether to perform a full restore (true) or an
	// incremental/merge restore (false).
	Full bool
}

// Export collects the store's users and quotes into BackupData.
func Export(ctx context.Context, st db.Store) (*model.BackupData, error) {
	return st.ExportDataForBackup(ctx)
}

// Write writes compressed JSON backup data to writer.
func Write(data *model.BackupData, w io.Writer) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	defer func() { _ = zw.Close() }()
	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush backup: %w", err)
	}
	return nil
}

// Restore reads a zstd-compressed JSON backup and imports it via the
// store. A full restore replaces the board; otherwise existing users and
// quotes are kept and only new entries are merged in.
func Restore(ctx context.Context, r io.Reader, opts RestoreOptions, st db.Store) error {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return fmt.Errorf("decode backup: %w", err)
	}
	if opts.Full {
		return st.ImportDataFromBackup(ctx, &data)
	}
	return st.IntegrateDataFromBackup(ctx, &data)
}

// Migrate performs a backup from the source store and imports it into a
// newly created target store.
func Migrate(ctx context.Context, factory db.StoreFactory, st db.Store, targetType, targetDSN string) error {
	data, err := st.ExportDataForBackup(ctx)
	if err != nil {
		return fmt.Errorf("export backup: %w", err)
	}
	targetStore, err := factory.NewStoreFromDSN(targetType, targetDSN)
	if err != nil {
		return fmt.Errorf("init target store: %w", err)
	}
	defer func() { _ = targetStore.Close() }()
	if err := targetStore.ImportDataFromBackup(ctx, data); err != nil {
		return fmt.Errorf("import to target: %w", err)
	}
	return nil
}
