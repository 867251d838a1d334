// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package token

import "errors"

var (
	// ErrMissing means no token was supplied at all.
	ErrMissing = errors.New("token missing")
	// ErrMalformed means the Authorization header did not carry a bearer token.
	ErrMalformed = errors.New("authorization header malformed")
	// ErrInvalid covers every way a supplied token can fail: bad signature,
	// wrong algorithm, expired, or an unusable subject claim.
	ErrInvalid = errors.New("token invalid")
)
