package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/retailer/rewards-backend/internal/domain"
	"github.com/retailer/rewards-backend/internal/service"
	"github.com/retailer/rewards-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newTransactionHandler(repo *testutil.MockTransactionRepository) *TransactionHandler {
	return NewTransactionHandler(service.NewTransactionServiceWithClock(repo, testClock))
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	handler := newTransactionHandler(transactionRepo)

	body := `{"customerId": 42, "amount": "120.50", "date": "2026-08-15"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.ID == 0 {
		t.Error("Expected non-zero transaction ID")
	}
	if response.CustomerID != 42 {
		t.Errorf("Expected customer 42, got %d", response.CustomerID)
	}
	if response.Amount != "120.50" {
		t.Errorf("Expected amount 120.50, got %s", response.Amount)
	}
	if response.Date != "2026-08-15" {
		t.Errorf("Expected date 2026-08-15, got %s", response.Date)
	}

	if len(transactionRepo.Transactions) != 1 {
		t.Errorf("Expected 1 stored transaction, got %d", len(transactionRepo.Transactions))
	}
}

func TestCreateTransaction_MissingFields(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	tests := []struct {
		name string
		body string
	}{
		{"missing customerId", `{"amount": "50.00", "date": "2026-08-15"}`},
		{"missing amount", `{"customerId": 1, "date": "2026-08-15"}`},
		{"missing date", `{"customerId": 1, "amount": "50.00"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := handler.CreateTransaction(c); err != nil {
				t.Fatalf("Expected JSON response, got error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestCreateTransaction_NegativeAmount(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	body := `{"customerId": 1, "amount": "-5.00", "date": "2026-08-15"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Status != http.StatusBadRequest {
		t.Errorf("Expected problem status 400, got %d", problem.Status)
	}
}

func TestCreateTransaction_FutureDate(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	body := `{"customerId": 1, "amount": "50.00", "date": "2026-09-02"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_BadAmountFormat(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	body := `{"customerId": 1, "amount": "fifty", "date": "2026-08-15"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetTransactions_Success(t *testing.T) {
	e := echo.New()
	transactionRepo := testutil.NewMockTransactionRepository()
	handler := newTransactionHandler(transactionRepo)

	transactionRepo.AddTransaction(&domain.Transaction{
		ID:         1,
		CustomerID: 1,
		Amount:     decimal.RequireFromString("75.25"),
		Date:       testDate(2026, 8, 10),
	})
	transactionRepo.AddTransaction(&domain.Transaction{
		ID:         2,
		CustomerID: 2,
		Amount:     decimal.RequireFromString("30.00"),
		Date:       testDate(2026, 7, 1),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?start=2026-08-01&end=2026-08-31", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(response))
	}
	if response[0].Amount != "75.25" {
		t.Errorf("Expected amount 75.25, got %s", response[0].Amount)
	}
}

func TestGetTransactions_MissingParams(t *testing.T) {
	e := echo.New()
	handler := newTransactionHandler(testutil.NewMockTransactionRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
