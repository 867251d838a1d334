// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

// package quote provides paginated read access to the quote board and
// attributed inserts. Pagination bounds are enforced here so every
// storage backend sees the same sanitized limit/offset.
package quote // import "github.com/toeirei/quoteboard/internal/quote"

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/toeirei/quoteboard/internal/db"
	"github.com/toeirei/quoteboard/internal/model"
)

// Bounds holds the pagination policy: the page size used when the caller
// does not ask for one, and the hard cap on what they may ask for.
type Bounds struct {
	DefaultSize int
	MaxSize     int
}

// DefaultBounds is the standard pagination policy.
var DefaultBounds = Bounds{DefaultSize: 10, MaxSize: 50}

// Repository serves quote pages and inserts from a storage backend.
type Repository struct {
	store  db.Store
	bounds Bounds
}

// NewRepository creates a quote repository. Zero or negative bounds fall
// back to DefaultBounds.
func NewRepository(store db.Store, bounds Bounds) *Repository {
	if bounds.DefaultSize <= 0 {
		bounds.DefaultSize = DefaultBounds.DefaultSize
	}
	if bounds.MaxSize <= 0 {
		bounds.MaxSize = DefaultBounds.MaxSize
	}
	return &Repository{store: store, bounds: bounds}
}

// List returns one page of quotes, newest first, together with the board
// totals. Page numbers below 1 are clamped to 1; a non-positive size uses
// the default and anything above the cap is clamped down. A page past the
// end comes back with an empty slice, never an error.
func (r *Repository) List(ctx context.Context, page, pageSize int) (*model.Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = r.bounds.DefaultSize
	}
	if pageSize > r.bounds.MaxSize {
		pageSize = r.bounds.MaxSize
	}

	total, err := r.store.CountQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}

	offset := (page - 1) * pageSize
	quotes, err := r.store.ListQuotes(ctx, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	if quotes == nil {
		quotes = []model.QuoteView{}
	}

	return &model.Page{
		Quotes:     quotes,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// Insert stores a new quote owned by the given user and returns it as the
// listing would render it. Content and author are trimmed first; empty
// values yield a *ValidationError.
func (r *Repository) Insert(ctx context.Context, content, author string, ownerID int) (*model.QuoteView, error) {
	content = strings.TrimSpace(content)
	author = strings.TrimSpace(author)
	if content == "" {
		return nil, &ValidationError{Field: "content"}
	}
	if author == "" {
		return nil, &ValidationError{Field: "author"}
	}

	view, err := r.store.InsertQuote(ctx, content, author, &ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quote: %w", err)
	}
	return view, nil
}

// ParsePageParams turns raw query-string values into pagination numbers.
// Values that are absent or not valid integers fall back to page 1 and
// the default size; range clamping happens in List.
func (r *Repository) ParsePageParams(pageStr, sizeStr string) (page, pageSize int) {
	page = 1
	if n, err := strconv.Atoi(pageStr); err == nil {
		page = n
	}
	pageSize = r.bounds.DefaultSize
	if n, err := strconv.Atoi(sizeStr); err == nil {
		pageSize = n
	}
	return page, pageSize
}
