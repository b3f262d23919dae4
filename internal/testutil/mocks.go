package testutil

import (
	"time"

	"github.com/retailer/rewards-backend/internal/domain"
)

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions []*domain.Transaction
	NextID       int64
	CreateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
	FindErr      error
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make([]*domain.Transaction, 0),
		NextID:       1,
	}
}

// Create stores a new transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction)
	}
	transaction.ID = m.NextID
	transaction.CreatedAt = time.Now().UTC()
	m.NextID++
	m.Transactions = append(m.Transactions, transaction)
	return transaction, nil
}

// FindByDateRange returns all stored transactions whose date falls within
// [start, end], both ends inclusive
func (m *MockTransactionRepository) FindByDateRange(start, end time.Time) ([]*domain.Transaction, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	result := make([]*domain.Transaction, 0)
	for _, tx := range m.Transactions {
		if !tx.Date.Before(start) && !tx.Date.After(end) {
			result = append(result, tx)
		}
	}
	return result, nil
}

// AddTransaction adds a transaction to the mock repository (helper for tests)
func (m *MockTransactionRepository) AddTransaction(transaction *domain.Transaction) {
	if transaction.ID == 0 {
		transaction.ID = m.NextID
		m.NextID++
	}
	m.Transactions = append(m.Transactions, transaction)
}
