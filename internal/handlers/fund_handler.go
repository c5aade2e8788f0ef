package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "aruskas/internal/errors"
	"aruskas/internal/models"
	"aruskas/internal/pagination"
	"aruskas/internal/services"
)

// FundHandler handles fund balance and ledger requests.
type FundHandler struct {
	fundService services.FundServicer
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundService services.FundServicer) *FundHandler {
	return &FundHandler{fundService: fundService}
}

// ManualEntryRequest represents a manual fund posting.
type ManualEntryRequest struct {
	FundType    string `json:"fund_type" binding:"required,fund_type"`
	Type        string `json:"type" binding:"required,oneof=income expense adjustment"`
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

// TransferRequest represents a fund-to-fund transfer.
type TransferRequest struct {
	FromFundType string `json:"from_fund_type" binding:"required,fund_type"`
	ToFundType   string `json:"to_fund_type" binding:"required,fund_type"`
	Amount       int64  `json:"amount" binding:"required,gt=0"`
	Description  string `json:"description" binding:"max=500"`
}

// LedgerQuery holds the query parameters of the ledger history endpoint.
type LedgerQuery struct {
	pagination.PageRequest
	FundType   string `form:"fund_type" binding:"omitempty,fund_type"`
	Type       string `form:"type" binding:"omitempty,fund_transaction_type"`
	SourceType string `form:"source_type"`
	FromDate   string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate     string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
}

// GetBalances returns the current balance of every fund.
// @Summary     Get fund balances
// @Description Current balance of each fund account
// @Tags        funds
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.FundAccount "Fund balances"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /funds [get]
func (h *FundHandler) GetBalances(c *gin.Context) {
	accounts, err := h.fundService.GetBalances()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"funds": accounts})
}

// GetLedger returns paginated, filtered ledger history.
// @Summary     Get ledger history
// @Description Paginated fund ledger entries, newest first
// @Tags        funds
// @Produce     json
// @Security    BearerAuth
// @Param       fund_type   query string false "Filter by fund type"
// @Param       type        query string false "Filter by transaction type"
// @Param       source_type query string false "Filter by source kind"
// @Param       from_date   query string false "Start date (YYYY-MM-DD)"
// @Param       to_date     query string false "End date (YYYY-MM-DD)"
// @Param       page        query int    false "Page number"
// @Param       page_size   query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.FundTransaction] "Ledger page"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /funds/ledger [get]
func (h *FundHandler) GetLedger(c *gin.Context) {
	var query LedgerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := buildLedgerFilter(query)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.fundService.GetLedger(query.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func buildLedgerFilter(query LedgerQuery) (services.LedgerFilter, error) {
	var filter services.LedgerFilter
	if query.FundType != "" {
		ft := models.FundType(query.FundType)
		filter.FundType = &ft
	}
	if query.Type != "" {
		tt := models.FundTransactionType(query.Type)
		filter.Type = &tt
	}
	if query.SourceType != "" {
		filter.SourceType = &query.SourceType
	}
	if query.FromDate != "" {
		from, err := time.Parse("2006-01-02", query.FromDate)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid from_date")
		}
		filter.FromDate = &from
	}
	if query.ToDate != "" {
		to, err := time.Parse("2006-01-02", query.ToDate)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid to_date")
		}
		// Include the whole end day.
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.ToDate = &to
	}
	return filter, nil
}

// CreateManualEntry posts a manual, caller-signed ledger entry.
// @Summary     Create a manual fund entry
// @Description Post a signed amount directly to a fund
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ManualEntryRequest true "Manual entry"
// @Success     201 {object} models.FundTransaction "Ledger entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /funds/entries [post]
func (h *FundHandler) CreateManualEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	// Manual entries follow the ledger's sign convention: income positive,
	// expense negative, adjustment as given.
	txType := models.FundTransactionType(req.Type)
	amount := req.Amount
	switch txType {
	case models.FundTxIncome:
		if amount < 0 {
			amount = -amount
		}
	case models.FundTxExpense:
		if amount > 0 {
			amount = -amount
		}
	}

	entry, err := h.fundService.Post(services.Posting{
		FundType:    models.FundType(req.FundType),
		Type:        txType,
		Amount:      amount,
		Description: req.Description,
		SourceType:  models.SourceManualEntry,
		CreatedByID: userID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// CreateTransfer moves money between the two funds.
// @Summary     Transfer between funds
// @Description Move an amount from one fund to the other as two linked ledger entries
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TransferRequest true "Transfer details"
// @Success     201 {object} services.TransferResult "Transfer legs"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Partial posting"
// @Router      /funds/transfer [post]
func (h *FundHandler) CreateTransfer(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.fundService.Transfer(
		models.FundType(req.FromFundType),
		models.FundType(req.ToFundType),
		req.Amount,
		req.Description,
		userID,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transfer": result})
}
