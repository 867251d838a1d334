// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures for Quoteboard.
package model // import "github.com/toeirei/quoteboard/internal/model"

import "time"

// User represents a registered account. The password hash is opaque to
// everything outside the credential store; plaintext passwords never
// appear in this struct.
type User struct {
	ID           int       // Surrogate primary key, assigned by the backend.
	Username     string    // Unique, case-sensitive login name.
	PasswordHash string    // Salted bcrypt hash, write-once.
	CreatedAt    time.Time // Set by the backend at insertion.
}

// UserIdentity is the minimal identity a successful credential check
// yields. It is what the token service signs.
type UserIdentity struct {
	ID       int
	Username string
}

// Quote is a stored quotation. OwnerID is a weak reference: seeded rows
// and rows whose owner was removed have none.
type Quote struct {
	ID        int
	Content   string
	Author    string
	OwnerID   *int
	CreatedAt time.Time
}

// QuoteView is a quote joined with the username of whoever added it.
// AddedBy is nil when the quote has no surviving owner.
type QuoteView struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	AddedBy   *string   `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Page is one page of quote views plus the pagination bookkeeping the
// API echoes back to clients.
type Page struct {
	Quotes     []QuoteView `json:"quotes"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"total_pages"`
}

// BackupData is the complete exportable state of a store. Password
// hashes travel with it so a restored store stays loginable; the backup
// file itself is the holder's secret to protect.
type BackupData struct {
	Users  []User  `json:"users"`
	Quotes []Quote `json:"quotes"`
}
