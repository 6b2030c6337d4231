package errors

import "errors"

var (
	ErrNotFound = errors.New("coupon not found")

	ErrInvalidID = errors.New("invalid coupon ID format")

	ErrDuplicateCode = errors.New("coupon code already exists")
)
