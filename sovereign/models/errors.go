package models

import "errors"

var (
	// ErrNotFound means a referenced quest, minion or user identifier does
	// not exist in the backing table. Never retried.
	ErrNotFound = errors.New("not found")

	// ErrValidation means a mutating operation was missing required fields.
	// Rejected before any write is attempted.
	ErrValidation = errors.New("validation failed")
)
