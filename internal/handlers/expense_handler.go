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

// ExpenseHandler handles expense requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
type CreateExpenseRequest struct {
	Name               string  `json:"name" binding:"required,min=1,max=200"`
	Category           string  `json:"category" binding:"max=100"`
	Description        string  `json:"description" binding:"max=500"`
	Amount             int64   `json:"amount" binding:"required,gt=0"`
	FundType           string  `json:"fund_type" binding:"omitempty,fund_type"`
	ExpenseDate        string  `json:"expense_date" binding:"omitempty,datetime=2006-01-02"`
	TransactionID      *string `json:"transaction_id"`
	InventoryID        *string `json:"inventory_id"`
	IsRecurringExpense bool    `json:"is_recurring_expense"`
	RecurringFrequency string  `json:"recurring_frequency" binding:"omitempty,recurring_frequency"`
	NextBillingDate    string  `json:"next_billing_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateExpenseRequest represents an expense edit. Nil fields are unchanged.
type UpdateExpenseRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Amount      *int64  `json:"amount" binding:"omitempty,gt=0"`
	FundType    *string `json:"fund_type" binding:"omitempty,fund_type"`
}

// ExpenseListQuery holds the query parameters of the expense list endpoint.
type ExpenseListQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	FundType    string `form:"fund_type" binding:"omitempty,fund_type"`
	Category    string `form:"category"`
	IsRecurring *bool  `form:"is_recurring"`
	FromDate    string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate      string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
}

// CreateExpense handles the creation of a new expense or recurring template.
// @Summary     Create an expense
// @Description Create a concrete expense (posted to its fund) or a recurring template (never posted directly)
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} models.Expense "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fundType := models.FundType(req.FundType)
	if req.FundType == "" {
		fundType = models.FundTypePettyCash
	}

	input := services.CreateExpenseInput{
		Name:               req.Name,
		Category:           req.Category,
		Description:        req.Description,
		Amount:             req.Amount,
		FundType:           fundType,
		TransactionID:      req.TransactionID,
		InventoryID:        req.InventoryID,
		IsRecurringExpense: req.IsRecurringExpense,
		RecurringFrequency: models.RecurringFrequency(req.RecurringFrequency),
	}
	if req.ExpenseDate != "" {
		date, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid expense_date"))
			return
		}
		input.ExpenseDate = date
	}
	if req.NextBillingDate != "" {
		next, err := time.Parse("2006-01-02", req.NextBillingDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid next_billing_date"))
			return
		}
		input.NextBillingDate = &next
	}

	expense, fundUpdates, err := h.expenseService.CreateExpense(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"expense":      expense,
		"fund_updates": fundUpdates,
	})
}

// GetExpenses returns a paginated, filtered list of expenses.
// @Summary     List expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       fund_type    query string false "Filter by fund type"
// @Param       category     query string false "Filter by category"
// @Param       is_recurring query bool   false "Filter templates vs concrete expenses"
// @Param       from_date    query string false "Start date (YYYY-MM-DD)"
// @Param       to_date      query string false "End date (YYYY-MM-DD)"
// @Param       page         query int    false "Page number"
// @Param       page_size    query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Expense page"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	var query ExpenseListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var filter services.ExpenseFilter
	if query.FundType != "" {
		ft := models.FundType(query.FundType)
		filter.FundType = &ft
	}
	if query.Category != "" {
		filter.Category = &query.Category
	}
	filter.IsRecurring = query.IsRecurring
	if query.FromDate != "" {
		from, err := time.Parse("2006-01-02", query.FromDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid from_date"))
			return
		}
		filter.FromDate = &from
	}
	if query.ToDate != "" {
		to, err := time.Parse("2006-01-02", query.ToDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid to_date"))
			return
		}
		// Include the whole end day.
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.ToDate = &to
	}

	page := pagination.PageRequest{Page: query.Page, PageSize: query.PageSize}
	result, err := h.expenseService.GetExpenses(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetExpenseByID returns a single expense.
// @Summary     Get an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	expense, err := h.expenseService.GetExpenseByID(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense edits an expense and posts correcting ledger entries.
// @Summary     Update an expense
// @Description Edit an expense; amount and fund changes post correcting ledger entries best-effort
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} models.Expense "Expense updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	fields := services.ExpenseUpdateFields{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.FundType != nil {
		ft := models.FundType(*req.FundType)
		fields.FundType = &ft
	}

	expense, fundUpdates, err := h.expenseService.UpdateExpense(userID, c.Param("id"), fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"expense":      expense,
		"fund_updates": fundUpdates,
	})
}

// DeleteExpense removes an expense, refunding its posted amount.
// @Summary     Delete an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} services.FundUpdates "Expense deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	fundUpdates, err := h.expenseService.DeleteExpense(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Expense deleted",
		"fund_updates": fundUpdates,
	})
}
