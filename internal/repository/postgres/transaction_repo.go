package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/retailer/rewards-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create persists a new transaction and returns it with its assigned ID
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	var transactionDate pgtype.Date
	transactionDate.Time = transaction.Date
	transactionDate.Valid = true

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transactions (customer_id, amount, transaction_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		transaction.CustomerID, amount, transactionDate,
	)

	created := &domain.Transaction{
		CustomerID: transaction.CustomerID,
		Amount:     transaction.Amount,
		Date:       transaction.Date,
	}

	var createdAt pgtype.Timestamptz
	if err := row.Scan(&created.ID, &createdAt); err != nil {
		return nil, err
	}
	created.CreatedAt = createdAt.Time

	return created, nil
}

// FindByDateRange returns all transactions dated within [start, end] inclusive
func (r *TransactionRepository) FindByDateRange(start, end time.Time) ([]*domain.Transaction, error) {
	ctx := context.Background()

	var startDate, endDate pgtype.Date
	startDate.Time = start
	startDate.Valid = true
	endDate.Time = end
	endDate.Valid = true

	rows, err := r.pool.Query(ctx, `
		SELECT id, customer_id, amount, transaction_date, created_at
		FROM transactions
		WHERE transaction_date BETWEEN $1 AND $2
		ORDER BY transaction_date, id`,
		startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx := &domain.Transaction{}
		var amount pgtype.Numeric
		var transactionDate pgtype.Date
		var createdAt pgtype.Timestamptz

		if err := rows.Scan(&tx.ID, &tx.CustomerID, &amount, &transactionDate, &createdAt); err != nil {
			return nil, err
		}

		tx.Amount = pgNumericToDecimal(amount)
		tx.Date = transactionDate.Time
		tx.CreatedAt = createdAt.Time
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
