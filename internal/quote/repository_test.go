// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package quote

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/toeirei/quoteboard/internal/db"
	"github.com/toeirei/quoteboard/internal/model"
)

// fakeStore records the limit/offset the repository asked for and serves a
// fixed board size, so clamping can be checked without a database.
type fakeStore struct {
	total      int
	lastLimit  int
	lastOffset int
}

func (f *fakeStore) CreateUser(ctx context.Context, username, passwordHash string) (int, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, db.ErrNotFound
}

func (f *fakeStore) CountQuotes(ctx context.Context) (int, error) {
	return f.total, nil
}

func (f *fakeStore) ListQuotes(ctx context.Context, limit, offset int) ([]model.QuoteView, error) {
	f.lastLimit = limit
	f.lastOffset = offset
	n := f.total - offset
	if n < 0 {
		n = 0
	}
	if n > limit {
		n = limit
	}
	out := make([]model.QuoteView, n)
	for i := range out {
		out[i] = model.QuoteView{ID: offset + i + 1, Content: fmt.Sprintf("quote %d", offset+i+1), Author: "author"}
	}
	return out, nil
}

func (f *fakeStore) InsertQuote(ctx context.Context, content, author string, ownerID *int) (*model.QuoteView, error) {
	f.total++
	return &model.QuoteView{ID: f.total, Content: content, Author: author}, nil
}

func (f *fakeStore) ExportDataForBackup(ctx context.Context) (*model.BackupData, error) {
	return &model.BackupData{}, nil
}

func (f *fakeStore) ImportDataFromBackup(ctx context.Context, backup *model.BackupData) error {
	return nil
}

func (f *fakeStore) IntegrateDataFromBackup(ctx context.Context, backup *model.BackupData) error {
	return nil
}

func (f *fakeStore) Close() error { return nil }

func TestList_ClampsPageParams(t *testing.T) {
	cases := []struct {
		name       string
		page       int
		pageSize   int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults", 1, 10, 1, 10, 0},
		{"zero page", 0, 10, 1, 10, 0},
		{"negative page", -3, 10, 1, 10, 0},
		{"zero size", 1, 0, 1, 10, 0},
		{"negative size", 1, -5, 1, 10, 0},
		{"oversized", 1, 500, 1, 50, 0},
		{"second page", 2, 10, 2, 10, 10},
		{"deep page", 7, 25, 7, 25, 150},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store := &fakeStore{total: 1000}
			repo := NewRepository(store, DefaultBounds)

			page, err := repo.List(context.Background(), c.page, c.pageSize)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page.Page != c.wantPage || page.PageSize != c.wantSize {
				t.Fatalf("expected page %d size %d, got page %d size %d", c.wantPage, c.wantSize, page.Page, page.PageSize)
			}
			if store.lastLimit != c.wantSize || store.lastOffset != c.wantOffset {
				t.Fatalf("expected store query limit %d offset %d, got limit %d offset %d",
					c.wantSize, c.wantOffset, store.lastLimit, store.lastOffset)
			}
		})
	}
}

func TestList_TotalPages(t *testing.T) {
	cases := []struct {
		total    int
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 50, 2},
	}

	for _, c := range cases {
		store := &fakeStore{total: c.total}
		repo := NewRepository(store, DefaultBounds)
		page, err := repo.List(context.Background(), 1, c.pageSize)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.TotalPages != c.want {
			t.Fatalf("total %d size %d: expected %d total pages, got %d", c.total, c.pageSize, c.want, page.TotalPages)
		}
		if page.Total != c.total {
			t.Fatalf("expected total %d, got %d", c.total, page.Total)
		}
	}
}

func TestList_PastEndIsEmptyNotError(t *testing.T) {
	store := &fakeStore{total: 5}
	repo := NewRepository(store, DefaultBounds)

	page, err := repo.List(context.Background(), 99, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Quotes) != 0 {
		t.Fatalf("expected empty page past the end, got %d quotes", len(page.Quotes))
	}
	if page.Quotes == nil {
		t.Fatalf("expected empty slice, not nil, so JSON renders [] rather than null")
	}
}

func TestInsert_Validation(t *testing.T) {
	repo := NewRepository(&fakeStore{}, DefaultBounds)
	ctx := context.Background()

	cases := []struct {
		name    string
		content string
		author  string
	}{
		{"empty content", "", "someone"},
		{"whitespace content", "   ", "someone"},
		{"empty author", "something", ""},
		{"whitespace author", "something", "  \t "},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := repo.Insert(ctx, c.content, c.author, 1)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestInsert_TrimsFields(t *testing.T) {
	repo := NewRepository(&fakeStore{}, DefaultBounds)

	view, err := repo.Insert(context.Background(), "  wisdom  ", "  sage  ", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Content != "wisdom" || view.Author != "sage" {
		t.Fatalf("expected trimmed fields, got %q by %q", view.Content, view.Author)
	}
}

func TestParsePageParams(t *testing.T) {
	repo := NewRepository(&fakeStore{}, DefaultBounds)

	cases := []struct {
		name     string
		pageStr  string
		sizeStr  string
		wantPage int
		wantSize int
	}{
		{"both valid", "3", "20", 3, 20},
		{"both absent", "", "", 1, 10},
		{"non-numeric page", "abc", "20", 1, 20},
		{"non-numeric size", "3", "lots", 3, 10},
		{"negative passthrough", "-1", "-2", -1, -2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, size := repo.ParsePageParams(c.pageStr, c.sizeStr)
			if page != c.wantPage || size != c.wantSize {
				t.Fatalf("ParsePageParams(%q, %q) = (%d, %d), want (%d, %d)",
					c.pageStr, c.sizeStr, page, size, c.wantPage, c.wantSize)
			}
		})
	}
}
