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

// TransactionHandler handles project/sale transaction requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction.
type CreateTransactionRequest struct {
	Name              string `json:"name" binding:"required,min=1,max=200"`
	ClientName        string `json:"client_name" binding:"max=200"`
	Description       string `json:"description" binding:"max=500"`
	TotalProfit       int64  `json:"total_profit" binding:"required,gt=0"`
	DownPaymentAmount int64  `json:"down_payment_amount" binding:"gte=0"`
	PaymentStatus     string `json:"payment_status" binding:"omitempty,payment_status"`
	FundType          string `json:"fund_type" binding:"omitempty,fund_type"`
	TransactionDate   string `json:"transaction_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdatePaymentStatusRequest represents a payment status edit. Down payment
// and fund type are optional; omitted fields keep their stored values.
type UpdatePaymentStatusRequest struct {
	PaymentStatus     string  `json:"payment_status" binding:"required,payment_status"`
	DownPaymentAmount *int64  `json:"down_payment_amount" binding:"omitempty,gte=0"`
	FundType          *string `json:"fund_type" binding:"omitempty,fund_type"`
}

// CreateTransaction handles the creation of a new transaction.
// @Summary     Create a transaction
// @Description Create a new project/sale; cash implied by the initial payment status is posted to the fund ledger
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} models.Transaction "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	status := models.PaymentStatus(req.PaymentStatus)
	if req.PaymentStatus == "" {
		status = models.PaymentStatusUnpaid
	}
	fundType := models.FundType(req.FundType)
	if req.FundType == "" {
		fundType = models.FundTypeProfitBank
	}

	var date time.Time
	if req.TransactionDate != "" {
		date, _ = time.Parse("2006-01-02", req.TransactionDate)
	}

	transaction, fundUpdates, err := h.transactionService.CreateTransaction(
		userID,
		req.Name,
		req.ClientName,
		req.Description,
		req.TotalProfit,
		req.DownPaymentAmount,
		status,
		fundType,
		date,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"transaction":  transaction,
		"fund_updates": fundUpdates,
	})
}

// GetTransactions returns a paginated list of transactions.
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number"
// @Param       page_size query int false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Transaction page"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.transactionService.GetTransactions(page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns a single transaction.
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} models.Transaction "Transaction"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transaction, err := h.transactionService.GetTransactionByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdatePaymentStatus edits a transaction's payment status, down payment
// and/or destination fund. The status write is authoritative; the ledger
// outcome is reported separately in fund_updates.
// @Summary     Update payment status
// @Description Move a transaction between payment states and post the implied cash delta
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                     true "Transaction ID"
// @Param       request body UpdatePaymentStatusRequest true "New status"
// @Success     200 {object} models.Transaction "Transaction updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /transactions/{id}/payment-status [put]
func (h *TransactionHandler) UpdatePaymentStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var newFundType *models.FundType
	if req.FundType != nil {
		ft := models.FundType(*req.FundType)
		newFundType = &ft
	}

	transaction, fundUpdates, err := h.transactionService.UpdatePaymentStatus(
		userID,
		c.Param("id"),
		models.PaymentStatus(req.PaymentStatus),
		req.DownPaymentAmount,
		newFundType,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction":  transaction,
		"fund_updates": fundUpdates,
	})
}
