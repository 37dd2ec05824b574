package userservice

import "errors"

// Domain failures returned inside an OperationResult.
var (
	ErrMissingFields     = errors.New("name, email and password are required")
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrPasswordTooShort  = errors.New("password too short")
	ErrPasswordTooLong   = errors.New("password too long")
	ErrNameTaken         = errors.New("name already taken")
	ErrEmailTaken        = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
)
