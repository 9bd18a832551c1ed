package service

import "errors"

var (
	// ErrInvalidInput marks lookups rejected before reaching the database.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks lookups with no matching reference row.
	ErrNotFound = errors.New("location not found")
)
