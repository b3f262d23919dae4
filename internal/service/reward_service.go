package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/retailer/rewards-backend/internal/domain"
	"github.com/retailer/rewards-backend/internal/util"
	"github.com/shopspring/decimal"
)

// RewardService computes loyalty reward points from purchase transactions
// and aggregates them per customer and calendar month.
type RewardService struct {
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

// NewRewardService creates a new RewardService
func NewRewardService(transactionRepo domain.TransactionRepository) *RewardService {
	return NewRewardServiceWithClock(transactionRepo, time.Now)
}

// NewRewardServiceWithClock creates a RewardService with a custom clock,
// so tests can pin "today" deterministically
func NewRewardServiceWithClock(transactionRepo domain.TransactionRepository, now func() time.Time) *RewardService {
	return &RewardService{
		transactionRepo: transactionRepo,
		now:             now,
	}
}

// today returns the current calendar date in UTC. All date-range validation
// is anchored to UTC so callers in different offsets agree on "today".
func (s *RewardService) today() time.Time {
	return util.DateOf(s.now())
}

// CalculatePoints converts a transaction amount into reward points.
// The sub-dollar fraction is discarded entirely before tiering, so the
// result is integer-exact: 2 points per dollar above $100 plus 1 point per
// dollar between $50 and $100.
func (s *RewardService) CalculatePoints(amount decimal.Decimal) (int, error) {
	if amount.IsNegative() {
		return 0, domain.ErrInvalidAmount
	}

	dollars := amount.Truncate(0).IntPart()

	switch {
	case dollars > 100:
		return int(50 + (dollars-100)*2), nil
	case dollars > 50:
		return int(dollars - 50), nil
	default:
		return 0, nil
	}
}

// GetRewardsReport computes the per-customer rewards report for the
// inclusive date interval [start, end], fetching candidate transactions
// from the store. The store's own interval lookup does the filtering.
func (s *RewardService) GetRewardsReport(start, end time.Time) ([]*domain.CustomerRewards, error) {
	if err := (domain.DateRange{Start: start, End: end}).Validate(s.today()); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.FindByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	return s.aggregate(transactions)
}

// TransactionRecord is a caller-supplied transaction for the list-shape
// report. Fields are pointers so that absent values are representable.
type TransactionRecord struct {
	CustomerID *int64
	Amount     *decimal.Decimal
	Date       *time.Time
}

// GetRewardsReportForTransactions computes the rewards report over an
// explicit transaction collection instead of the store. Records outside
// [start, end] are dropped; a record missing any required field fails the
// entire call, never yielding a partial report.
func (s *RewardService) GetRewardsReportForTransactions(records []TransactionRecord, start, end time.Time) ([]*domain.CustomerRewards, error) {
	rng := domain.DateRange{Start: start, End: end}
	if err := rng.Validate(s.today()); err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0, len(records))
	for i, record := range records {
		if record.CustomerID == nil || record.Amount == nil || record.Date == nil {
			return nil, fmt.Errorf("%w: transaction %d", domain.ErrIncompleteTransaction, i)
		}

		date := util.DateOf(*record.Date)
		if !rng.Contains(date) {
			continue
		}

		transactions = append(transactions, &domain.Transaction{
			CustomerID: *record.CustomerID,
			Amount:     *record.Amount,
			Date:       date,
		})
	}

	return s.aggregate(transactions)
}

// GetRecentRewardsSummary computes the rewards report for the rolling
// window ending at UTC today and starting monthsBack calendar months
// earlier, and wraps it with a grand total and the resolved window.
func (s *RewardService) GetRecentRewardsSummary(monthsBack int) (*domain.RewardSummary, error) {
	end := s.today()
	start := util.MonthsBefore(end, monthsBack)

	rewards, err := s.GetRewardsReport(start, end)
	if err != nil {
		return nil, err
	}

	grandTotal := 0
	for _, r := range rewards {
		grandTotal += r.TotalPoints
	}

	return &domain.RewardSummary{
		CustomerRewards:  rewards,
		GrandTotalPoints: grandTotal,
		ReportStartDate:  start,
		ReportEndDate:    end,
	}, nil
}

// aggregate groups transactions by customer and calendar month, summing
// points per (customer, month) key. The grouping map lives only for the
// duration of one call; concurrent reports never share state.
func (s *RewardService) aggregate(transactions []*domain.Transaction) ([]*domain.CustomerRewards, error) {
	grouped := make(map[int64]domain.MonthlyPoints)

	for _, tx := range transactions {
		points, err := s.CalculatePoints(tx.Amount)
		if err != nil {
			return nil, err
		}

		monthly, ok := grouped[tx.CustomerID]
		if !ok {
			monthly = make(domain.MonthlyPoints)
			grouped[tx.CustomerID] = monthly
		}
		monthly[tx.Date.Month()] += points
	}

	rewards := make([]*domain.CustomerRewards, 0, len(grouped))
	for customerID, monthly := range grouped {
		rewards = append(rewards, domain.NewCustomerRewards(customerID, monthly))
	}

	// Stable output for callers; ordering is not part of the contract
	sort.Slice(rewards, func(i, j int) bool {
		return rewards[i].CustomerID < rewards[j].CustomerID
	})

	return rewards, nil
}
