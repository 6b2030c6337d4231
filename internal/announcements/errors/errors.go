package errors

import "errors"

var (
	ErrNotFound = errors.New("announcement not found")

	ErrInvalidID = errors.New("invalid announcement ID format")
)
