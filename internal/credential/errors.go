// Copyright (c) 2025 ToeiRei
// Quoteboard - shared quote board service
// This source code is licensed under the MIT license found in the LICENSE file.

package credential

import "errors"

// ErrUsernameTaken is returned by Register when the username already exists.
var ErrUsernameTaken = errors.New("username already exists")

// ErrInvalidCredentials is returned by Verify for both an unknown username
// and a wrong password. Keeping the two indistinguishable prevents username
// enumeration through the login endpoint.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError reports a required field that was missing or empty after
// trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " must not be empty"
}
