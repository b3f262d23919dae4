package service

import (
	"fmt"
	"time"

	"github.com/retailer/rewards-backend/internal/domain"
	"github.com/retailer/rewards-backend/internal/util"
	"github.com/retailer/rewards-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction ingestion and lookup
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	eventPublisher  websocket.EventPublisher
	now             func() time.Time
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return NewTransactionServiceWithClock(transactionRepo, time.Now)
}

// NewTransactionServiceWithClock creates a TransactionService with a custom clock
func NewTransactionServiceWithClock(transactionRepo domain.TransactionRepository, now func() time.Time) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		now:             now,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *TransactionService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateTransactionInput holds the input for ingesting a transaction.
// Fields are pointers so missing values are representable.
type CreateTransactionInput struct {
	CustomerID *int64
	Amount     *decimal.Decimal
	Date       *time.Time
}

// CreateTransaction validates and persists a purchase transaction
func (s *TransactionService) CreateTransaction(input CreateTransactionInput) (*domain.Transaction, error) {
	if input.CustomerID == nil || input.Amount == nil || input.Date == nil {
		return nil, domain.ErrIncompleteTransaction
	}
	if input.Amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	date := util.DateOf(*input.Date)
	today := util.DateOf(s.now())
	if date.After(today) {
		return nil, fmt.Errorf("%w: transaction date cannot be in the future", domain.ErrInvalidDateRange)
	}

	created, err := s.transactionRepo.Create(&domain.Transaction{
		CustomerID: *input.CustomerID,
		Amount:     *input.Amount,
		Date:       date,
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(websocket.TransactionCreated(created))

	return created, nil
}

// ListTransactions retrieves all transactions within the inclusive
// interval [start, end]
func (s *TransactionService) ListTransactions(start, end time.Time) ([]*domain.Transaction, error) {
	if err := (domain.DateRange{Start: start, End: end}).Validate(util.DateOf(s.now())); err != nil {
		return nil, err
	}
	return s.transactionRepo.FindByDateRange(start, end)
}
