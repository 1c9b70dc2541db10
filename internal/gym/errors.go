package gym

import "errors"

var (
	// ErrValidation marks structurally invalid input. Nothing is mutated.
	ErrValidation = errors.New("validation failed")
	// ErrNoValidSets is returned when a batch submission yields zero sets.
	ErrNoValidSets = errors.New("no valid sets")
	// ErrPersistence wraps background save failures.
	ErrPersistence = errors.New("persistence failed")
	ErrNotFound    = errors.New("not found")
)
