// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/toeirei/quoteboard/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// UserModel maps the `users` table for Bun queries.
type UserModel struct {
	bun.BaseModel `bun:"table:users"`
	ID            int       `bun:"id,pk,autoincrement"`
	Username      string    `bun:"username"`
	PasswordHash  string    `bun:"password_hash"`
	CreatedAt     time.Time `bun:"created_at,nullzero"`
}

// QuoteModel maps the `quotes` table for Bun queries.
type QuoteModel struct {
	bun.BaseModel `bun:"table:quotes"`
	ID            int           `bun:"id,pk,autoincrement"`
	Content       string        `bun:"content"`
	Author        string        `bun:"author"`
	UserID        sql.NullInt64 `bun:"user_id"`
	CreatedAt     time.Time     `bun:"created_at,nullzero"`
}

// quoteViewRow is the scan target for the listing join. AddedBy is null for
// quotes whose user_id matches no surviving user.
type quoteViewRow struct {
	ID        int            `bun:"id"`
	Content   string         `bun:"content"`
	Author    string         `bun:"author"`
	AddedBy   sql.NullString `bun:"added_by"`
	CreatedAt time.Time      `bun:"created_at"`
}

func userModelToModel(u UserModel) model.User {
	return model.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func quoteModelToModel(q QuoteModel) model.Quote {
	m := model.Quote{
		ID:        q.ID,
		Content:   q.Content,
		Author:    q.Author,
		CreatedAt: q.CreatedAt,
	}
	if q.UserID.Valid {
		owner := int(q.UserID.Int64)
		m.OwnerID = &owner
	}
	return m
}

func quoteViewRowToModel(r quoteViewRow) model.QuoteView {
	v := model.QuoteView{
		ID:        r.ID,
		Content:   r.Content,
		Author:    r.Author,
		CreatedAt: r.CreatedAt,
	}
	if r.AddedBy.Valid {
		name := r.AddedBy.String
		v.AddedBy = &name
	}
	return v
}

// --- User helpers ---

// CreateUserBun inserts a new user row and returns its generated id.
// A username collision surfaces as ErrDuplicate.
func CreateUserBun(ctx context.Context, bdb *bun.DB, username, passwordHash string) (int, error) {
	m := &UserModel{Username: username, PasswordHash: passwordHash}
	if _, err := bdb.NewInsert().Model(m).Exec(ctx); err != nil {
		return 0, MapDBError(err)
	}
	return m.ID, nil
}

// GetUserByUsernameBun retrieves a user by exact username match.
func GetUserByUsernameBun(ctx context.Context, bdb *bun.DB, username string) (*model.User, error) {
	var um UserModel
	err := bdb.NewSelect().Model(&um).Where("username = ?", username).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u := userModelToModel(um)
	return &u, nil
}

// --- Quote helpers ---

const quoteViewSelect = `
	SELECT q.id, q.content, q.author, u.username AS added_by, q.created_at
	FROM quotes q
	LEFT JOIN users u ON q.user_id = u.id`

// CountQuotesBun returns the total number of quote rows.
func CountQuotesBun(ctx context.Context, bdb *bun.DB) (int, error) {
	var n int
	if err := QueryRawInto(ctx, bdb, &n, "SELECT COUNT(*) FROM quotes"); err != nil {
		return 0, err
	}
	return n, nil
}

// ListQuotesBun returns one bounded page of quote views, newest first with
// ties broken by ascending id so the order is stable across identical
// timestamps.
func ListQuotesBun(ctx context.Context, bdb *bun.DB, limit, offset int) ([]model.QuoteView, error) {
	var rows []quoteViewRow
	err := QueryRawInto(ctx, bdb, &rows,
		quoteViewSelect+" ORDER BY q.created_at DESC, q.id ASC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	views := make([]model.QuoteView, 0, len(rows))
	for _, r := range rows {
		views = append(views, quoteViewRowToModel(r))
	}
	return views, nil
}

// InsertQuoteBun persists a quote and returns the created view including the
// generated id and the owner's username.
func InsertQuoteBun(ctx context.Context, bdb *bun.DB, content, author string, ownerID *int) (*model.QuoteView, error) {
	m := &QuoteModel{Content: content, Author: author}
	if ownerID != nil {
		m.UserID = sql.NullInt64{Int64: int64(*ownerID), Valid: true}
	}
	if _, err := bdb.NewInsert().Model(m).Exec(ctx); err != nil {
		return nil, MapDBError(err)
	}

	var row quoteViewRow
	if err := QueryRawInto(ctx, bdb, &row, quoteViewSelect+" WHERE q.id = ?", m.ID); err != nil {
		return nil, err
	}
	v := quoteViewRowToModel(row)
	return &v, nil
}

// --- Backup helpers ---

// ExportDataForBackupBun exports all tables' data into a model.BackupData
// using a Bun transaction so the backup is a consistent snapshot.
func ExportDataForBackupBun(ctx context.Context, bdb *bun.DB) (*model.BackupData, error) {
	var backup *model.BackupData
	err := WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		backup = &model.BackupData{}

		var users []UserModel
		if err := tx.NewSelect().Model(&users).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, u := range users {
			backup.Users = append(backup.Users, userModelToModel(u))
		}

		var quotes []QuoteModel
		if err := tx.NewSelect().Model(&quotes).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, q := range quotes {
			backup.Quotes = append(backup.Quotes, quoteModelToModel(q))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return backup, nil
}

// ImportDataFromBackupBun performs a full wipe-and-replace using a Bun
// transaction. Row ids are preserved so quote ownership references survive.
func ImportDataFromBackupBun(ctx context.Context, bdb *bun.DB, backup *model.BackupData) error {
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		// Wipe tables; quotes first because of the owner reference.
		for _, t := range []string{"quotes", "users"} {
			if _, err := ExecRaw(ctx, tx, "DELETE FROM "+t); err != nil {
				return err
			}
		}

		for _, u := range backup.Users {
			if _, err := ExecRaw(ctx, tx,
				"INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)",
				u.ID, u.Username, u.PasswordHash, u.CreatedAt); err != nil {
				return MapDBError(err)
			}
		}
		for _, q := range backup.Quotes {
			var owner sql.NullInt64
			if q.OwnerID != nil {
				owner = sql.NullInt64{Int64: int64(*q.OwnerID), Valid: true}
			}
			if _, err := ExecRaw(ctx, tx,
				"INSERT INTO quotes (id, content, author, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
				q.ID, q.Content, q.Author, owner, q.CreatedAt); err != nil {
				return MapDBError(err)
			}
		}
		return resetIDSequences(ctx, tx, bdb.Dialect().Name())
	})
}

// IntegrateDataFromBackupBun performs a non-destructive restore. Users are
// merged by username: an existing name keeps its local row, a new name is
// inserted with a fresh id, and imported quotes have their owner reference
// remapped accordingly. The two boards may have assigned the same ids to
// different rows, so the backup's user ids are treated as labels to resolve,
// never as positions to occupy. Quotes whose id already exists are skipped.
func IntegrateDataFromBackupBun(ctx context.Context, bdb *bun.DB, backup *model.BackupData) error {
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		ownerIDs := make(map[int]int, len(backup.Users))
		for _, u := range backup.Users {
			var localID int
			err := QueryRawInto(ctx, tx, &localID, "SELECT id FROM users WHERE username = ?", u.Username)
			if err == nil {
				ownerIDs[u.ID] = localID
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			m := &UserModel{Username: u.Username, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt}
			if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
				return MapDBError(err)
			}
			ownerIDs[u.ID] = m.ID
		}
		for _, q := range backup.Quotes {
			var exists int
			err := QueryRawInto(ctx, tx, &exists, "SELECT 1 FROM quotes WHERE id = ?", q.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			// An owner id the backup's user set does not explain stays
			// NULL rather than pointing at an unrelated local user.
			var owner sql.NullInt64
			if q.OwnerID != nil {
				if localID, ok := ownerIDs[*q.OwnerID]; ok {
					owner = sql.NullInt64{Int64: int64(localID), Valid: true}
				}
			}
			if _, err := ExecRaw(ctx, tx,
				"INSERT INTO quotes (id, content, author, user_id, created_at) VALUES (?, ?, ?, ?, ?)",
				q.ID, q.Content, q.Author, owner, q.CreatedAt); err != nil {
				return MapDBError(err)
			}
		}
		return resetIDSequences(ctx, tx, bdb.Dialect().Name())
	})
}

// resetIDSequences realigns Postgres id sequences after explicit-id inserts.
// Those inserts bypass nextval, so the sequence would otherwise still hand
// out ids the imported rows already occupy and the next regular insert would
// fail as a duplicate. SQLite and MySQL advance their counters on explicit
// inserts and need no correction.
func resetIDSequences(ctx context.Context, tx bun.Tx, name dialect.Name) error {
	if name != dialect.PG {
		return nil
	}
	for _, t := range []string{"users", "quotes"} {
		stmt := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s','id'), COALESCE(MAX(id), 1)) FROM %s", t, t)
		if _, err := ExecRaw(ctx, tx, stmt); err != nil {
			return fmt.Errorf("failed to reset %s id sequence: %w", t, err)
		}
	}
	return nil
}
