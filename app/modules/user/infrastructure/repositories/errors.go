package userdb

import "errors"

// Sentinel errors for the user repository layer. The service decides how they
// surface to callers.
var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user record not found")

	// ErrDuplicateEmail indicates the unique email constraint rejected a write.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrDuplicateName indicates the case-insensitive unique name index rejected a write.
	ErrDuplicateName = errors.New("name already exists")
)
