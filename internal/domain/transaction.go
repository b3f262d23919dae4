package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single purchase event. Instances are immutable
// once constructed; the reward engine never mutates them.
type Transaction struct {
	ID         int64           `json:"id"`
	CustomerID int64           `json:"customerId"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// DateRange is an inclusive calendar-date interval [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate checks the range invariants against the given reference date.
// The reference date must be the current calendar date in UTC so that
// callers in different offsets agree on what "today" means.
func (r DateRange) Validate(today time.Time) error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidDateRange)
	}
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start date cannot be after end date", ErrInvalidDateRange)
	}
	if r.End.After(today) {
		return fmt.Errorf("%w: future dates are not allowed", ErrInvalidDateRange)
	}
	return nil
}

// Contains reports whether the given date falls within the inclusive range.
func (r DateRange) Contains(date time.Time) bool {
	return !date.Before(r.Start) && !date.After(r.End)
}

// TransactionRepository defines the persistence contract for transactions.
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	// FindByDateRange returns all transactions whose date falls within
	// [start, end], both ends inclusive. No ordering guarantee.
	FindByDateRange(start, end time.Time) ([]*Transaction, error)
}
