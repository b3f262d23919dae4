package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/retailer/rewards-backend/internal/domain"
	"github.com/retailer/rewards-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	CustomerID *int64  `json:"customerId"`
	Amount     *string `json:"amount"`
	Date       *string `json:"date"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customerId"`
	Amount     string `json:"amount"`
	Date       string `json:"date"`
	CreatedAt  string `json:"createdAt"`
}

// CreateTransaction godoc
// @Summary Ingest a transaction
// @Description Record a purchase transaction for reward calculation
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateTransactionInput{CustomerID: req.CustomerID}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		input.Amount = &amount
	}

	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		input.Date = &date
	}

	transaction, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		if errors.Is(err, domain.ErrIncompleteTransaction) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "customerId/amount/date", Message: "All fields are required"},
			})
		}
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount cannot be negative"},
			})
		}
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "date", Message: "Date cannot be in the future"},
			})
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	log.Info().Int64("transaction_id", transaction.ID).Int64("customer_id", transaction.CustomerID).Msg("Transaction created")

	return c.JSON(http.StatusCreated, toTransactionResponse(transaction))
}

// GetTransactions godoc
// @Summary List transactions
// @Description Get all transactions within an inclusive date range
// @Tags transactions
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	startStr := c.QueryParam("start")
	endStr := c.QueryParam("end")

	var fieldErrors []ValidationError
	if startStr == "" {
		fieldErrors = append(fieldErrors, ValidationError{Field: "start", Message: "Start date is required"})
	}
	if endStr == "" {
		fieldErrors = append(fieldErrors, ValidationError{Field: "end", Message: "End date is required"})
	}
	if len(fieldErrors) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrors)
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return NewValidationError(c, "Invalid start date format (use YYYY-MM-DD)", nil)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return NewValidationError(c, "Invalid end date format (use YYYY-MM-DD)", nil)
	}

	transactions, err := h.transactionService.ListTransactions(start, end)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, toTransactionResponse(tx))
	}

	return c.JSON(http.StatusOK, responses)
}

// toTransactionResponse converts a domain transaction to an API response
func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         tx.ID,
		CustomerID: tx.CustomerID,
		Amount:     tx.Amount.StringFixed(2),
		Date:       tx.Date.Format(dateLayout),
		CreatedAt:  tx.CreatedAt.UTC().Format(time.RFC3339),
	}
}
