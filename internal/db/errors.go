package db

import "errors"

// Store error kinds. Callers classify with errors.Is; anything else is a
// storage failure.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
	ErrInvalid  = errors.New("invalid input")
)
