package domain

import "time"

// MonthlyPoints maps a calendar month to an accumulated point total.
// The year component is deliberately collapsed: points earned in the same
// month of different years accumulate under one key.
type MonthlyPoints map[time.Month]int

// Total returns the sum of all monthly point totals.
func (m MonthlyPoints) Total() int {
	total := 0
	for _, points := range m {
		total += points
	}
	return total
}

// CustomerRewards holds one customer's per-month points breakdown.
// TotalPoints is derived once at construction and never mutated afterwards.
type CustomerRewards struct {
	CustomerID    int64         `json:"customerId"`
	MonthlyPoints MonthlyPoints `json:"monthlyPoints"`
	TotalPoints   int           `json:"totalPoints"`
}

// NewCustomerRewards constructs a CustomerRewards with the total derived
// from the monthly breakdown.
func NewCustomerRewards(customerID int64, monthlyPoints MonthlyPoints) *CustomerRewards {
	return &CustomerRewards{
		CustomerID:    customerID,
		MonthlyPoints: monthlyPoints,
		TotalPoints:   monthlyPoints.Total(),
	}
}

// RewardSummary wraps a full per-customer report with a grand total and the
// resolved reporting window.
type RewardSummary struct {
	CustomerRewards  []*CustomerRewards `json:"customerRewards"`
	GrandTotalPoints int                `json:"grandTotalPoints"`
	ReportStartDate  time.Time          `json:"reportStartDate"`
	ReportEndDate    time.Time          `json:"reportEndDate"`
}
