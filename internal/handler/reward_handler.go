package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/retailer/rewards-backend/internal/domain"
	"github.com/retailer/rewards-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

const (
	// DefaultSummaryMonths is the rolling window used when months is not given
	DefaultSummaryMonths = 3
	// MaxSummaryMonths bounds the rolling window accepted by the API
	MaxSummaryMonths = 3
)

// RewardHandler handles reward report HTTP requests
type RewardHandler struct {
	rewardService *service.RewardService
}

// NewRewardHandler creates a new RewardHandler
func NewRewardHandler(rewardService *service.RewardService) *RewardHandler {
	return &RewardHandler{rewardService: rewardService}
}

// CustomerRewardsResponse represents one customer's rewards in API responses
type CustomerRewardsResponse struct {
	CustomerID    int64          `json:"customerId"`
	MonthlyPoints map[string]int `json:"monthlyPoints"`
	TotalPoints   int            `json:"totalPoints"`
}

// RewardSummaryResponse represents a rolling rewards summary in API responses
type RewardSummaryResponse struct {
	CustomerRewards  []CustomerRewardsResponse `json:"customerRewards"`
	GrandTotalPoints int                       `json:"grandTotalPoints"`
	ReportStartDate  string                    `json:"reportStartDate"`
	ReportEndDate    string                    `json:"reportEndDate"`
}

// TransactionRecordRequest is one caller-supplied transaction in the
// list-shape calculate request
type TransactionRecordRequest struct {
	CustomerID *int64  `json:"customerId"`
	Amount     *string `json:"amount"`
	Date       *string `json:"date"`
}

// CalculateRewardsRequest represents the list-shape calculate request body
type CalculateRewardsRequest struct {
	Start        string                     `json:"start"`
	End          string                     `json:"end"`
	Transactions []TransactionRecordRequest `json:"transactions"`
}

// GetRewardsReport godoc
// @Summary Rewards report for a date range
// @Description Compute per-customer reward points over [start, end] from stored transactions
// @Tags rewards
// @Produce json
// @Param start query string true "Start date (YYYY-MM-DD)"
// @Param end query string true "End date (YYYY-MM-DD)"
// @Success 200 {array} CustomerRewardsResponse
// @Failure 400 {object} ProblemDetails
// @Router /rewards [get]
func (h *RewardHandler) GetRewardsReport(c echo.Context) error {
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

	rewards, err := h.rewardService.GetRewardsReport(start, end)
	if err != nil {
		return rewardErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toCustomerRewardsResponses(rewards))
}

// CalculateRewards godoc
// @Summary Rewards report for supplied transactions
// @Description Compute per-customer reward points over [start, end] from transactions in the request body
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body CalculateRewardsRequest true "Transactions and date range"
// @Success 200 {array} CustomerRewardsResponse
// @Failure 400 {object} ProblemDetails
// @Router /rewards/calculate [post]
func (h *RewardHandler) CalculateRewards(c echo.Context) error {
	var req CalculateRewardsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var fieldErrors []ValidationError
	if req.Start == "" {
		fieldErrors = append(fieldErrors, ValidationError{Field: "start", Message: "Start date is required"})
	}
	if req.End == "" {
		fieldErrors = append(fieldErrors, ValidationError{Field: "end", Message: "End date is required"})
	}
	if len(fieldErrors) > 0 {
		return NewValidationError(c, "Validation failed", fieldErrors)
	}

	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		return NewValidationError(c, "Invalid start date format (use YYYY-MM-DD)", nil)
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		return NewValidationError(c, "Invalid end date format (use YYYY-MM-DD)", nil)
	}

	records := make([]service.TransactionRecord, 0, len(req.Transactions))
	for i, tr := range req.Transactions {
		record := service.TransactionRecord{CustomerID: tr.CustomerID}

		if tr.Amount != nil {
			amount, err := decimal.NewFromString(*tr.Amount)
			if err != nil {
				return NewValidationError(c, "Invalid amount", []ValidationError{
					{Field: "transactions[" + strconv.Itoa(i) + "].amount", Message: "Must be a valid decimal number"},
				})
			}
			record.Amount = &amount
		}

		if tr.Date != nil {
			date, err := time.Parse(dateLayout, *tr.Date)
			if err != nil {
				return NewValidationError(c, "Invalid date", []ValidationError{
					{Field: "transactions[" + strconv.Itoa(i) + "].date", Message: "Must be in YYYY-MM-DD format"},
				})
			}
			record.Date = &date
		}

		records = append(records, record)
	}

	rewards, err := h.rewardService.GetRewardsReportForTransactions(records, start, end)
	if err != nil {
		return rewardErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toCustomerRewardsResponses(rewards))
}

// GetRecentRewards godoc
// @Summary Rolling rewards summary
// @Description Compute the rewards summary for the window ending today and starting the given number of months back
// @Tags rewards
// @Produce json
// @Param months query int false "Months back (1-3)" default(3)
// @Success 200 {object} RewardSummaryResponse
// @Failure 400 {object} ProblemDetails
// @Router /rewards/recent [get]
func (h *RewardHandler) GetRecentRewards(c echo.Context) error {
	months := DefaultSummaryMonths
	if monthsStr := c.QueryParam("months"); monthsStr != "" {
		parsed, err := strconv.Atoi(monthsStr)
		if err != nil {
			return NewValidationError(c, "Invalid months", []ValidationError{
				{Field: "months", Message: "Must be an integer"},
			})
		}
		months = parsed
	}
	if months < 1 || months > MaxSummaryMonths {
		return NewValidationError(c, "Invalid months", []ValidationError{
			{Field: "months", Message: "Must be between 1 and 3"},
		})
	}

	summary, err := h.rewardService.GetRecentRewardsSummary(months)
	if err != nil {
		return rewardErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, RewardSummaryResponse{
		CustomerRewards:  toCustomerRewardsResponses(summary.CustomerRewards),
		GrandTotalPoints: summary.GrandTotalPoints,
		ReportStartDate:  summary.ReportStartDate.Format(dateLayout),
		ReportEndDate:    summary.ReportEndDate.Format(dateLayout),
	})
}

// rewardErrorResponse maps core reward errors onto HTTP responses
func rewardErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrIncompleteTransaction):
		return NewValidationError(c, err.Error(), nil)
	}

	log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("Failed to compute rewards")
	return NewInternalError(c, "Failed to compute rewards")
}

// toCustomerRewardsResponses converts domain rewards to API responses,
// keying monthly points by English month name
func toCustomerRewardsResponses(rewards []*domain.CustomerRewards) []CustomerRewardsResponse {
	responses := make([]CustomerRewardsResponse, 0, len(rewards))
	for _, r := range rewards {
		monthly := make(map[string]int, len(r.MonthlyPoints))
		for month, points := range r.MonthlyPoints {
			monthly[month.String()] = points
		}
		responses = append(responses, CustomerRewardsResponse{
			CustomerID:    r.CustomerID,
			MonthlyPoints: monthly,
			TotalPoints:   r.TotalPoints,
		})
	}
	return responses
}
