package domain

import "errors"

// Domain errors
var (
	ErrInvalidDateRange      = errors.New("invalid date range")
	ErrInvalidAmount         = errors.New("amount cannot be negative")
	ErrIncompleteTransaction = errors.New("transaction has missing required fields")
	ErrInternalError         = errors.New("internal error")
)
