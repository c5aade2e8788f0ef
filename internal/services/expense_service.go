package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"aruskas/internal/billing"
	apperrors "aruskas/internal/errors"
	"aruskas/internal/logger"
	"aruskas/internal/models"
	"aruskas/internal/pagination"
)

// expenseService handles expense business logic, including keeping the fund
// ledger synchronized with expense writes on a best-effort basis.
type expenseService struct {
	db          *gorm.DB
	fundService FundServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, fundService FundServicer) ExpenseServicer {
	return &expenseService{db: db, fundService: fundService}
}

// CreateExpense records a new expense. Concrete expenses post their amount
// to the fund ledger after the row commits; recurring templates never post,
// only the instances they spawn do. The expense row is authoritative even
// when the ledger posting fails; FundUpdates reports the outcome.
func (s *expenseService) CreateExpense(userID string, input CreateExpenseInput) (*models.Expense, *FundUpdates, error) {
	if input.Name == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense name is required")
	}
	if input.Amount <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.FundType == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidFundType, "fund type is required")
	}
	if input.ExpenseDate.IsZero() {
		input.ExpenseDate = time.Now()
	}

	expense := &models.Expense{
		Name:               input.Name,
		Category:           input.Category,
		Description:        input.Description,
		Amount:             input.Amount,
		FundType:           input.FundType,
		ExpenseDate:        input.ExpenseDate,
		TransactionID:      input.TransactionID,
		InventoryID:        input.InventoryID,
		IsRecurringExpense: input.IsRecurringExpense,
		CreatedByID:        userID,
	}

	if input.IsRecurringExpense {
		expense.RecurringFrequency = input.RecurringFrequency
		if input.NextBillingDate != nil {
			expense.NextBillingDate = input.NextBillingDate
		} else {
			next := billing.NextBillingDate(input.ExpenseDate, input.RecurringFrequency)
			expense.NextBillingDate = &next
		}
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	fundUpdates := &FundUpdates{Success: true}
	if !expense.IsRecurringExpense {
		_, err := s.fundService.Post(Posting{
			FundType:    expense.FundType,
			Type:        models.FundTxExpense,
			Amount:      -expense.Amount,
			Description: fmt.Sprintf("Pengeluaran: %s", expense.Name),
			SourceType:  models.SourceExpense,
			SourceID:    &expense.ID,
			CreatedByID: userID,
		})
		if err != nil {
			logger.Get().Errorw("ledger posting for new expense failed",
				"expense_id", expense.ID, "fund_type", expense.FundType,
				"amount", expense.Amount, "error", err.Error(),
			)
			fundUpdates.Success = false
			fundUpdates.Error = err.Error()
		}
	}

	return expense, fundUpdates, nil
}

// GetExpenses retrieves a paginated, filtered list of expenses, newest first.
func (s *expenseService) GetExpenses(page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{})
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.FundType != nil {
		q = q.Where("fund_type = ?", *f.FundType)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.IsRecurring != nil {
		q = q.Where("is_recurring_expense = ?", *f.IsRecurring)
	}
	if f.FromDate != nil {
		q = q.Where("expense_date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("expense_date <= ?", *f.ToDate)
	}
	return q
}

// GetExpenseByID retrieves an expense by ID.
func (s *expenseService) GetExpenseByID(expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ?", expenseID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense edits an expense. The row is written first; for concrete
// expenses the ledger is then corrected best-effort: a fund change moves
// the already-posted amount between funds, and an amount change posts the
// difference as an adjustment to the current fund.
func (s *expenseService) UpdateExpense(userID, expenseID string, fields ExpenseUpdateFields) (*models.Expense, *FundUpdates, error) {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return nil, nil, err
	}

	oldAmount := expense.Amount
	oldFund := expense.FundType

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Amount != nil {
		if *fields.Amount <= 0 {
			return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *fields.Amount
	}
	if fields.FundType != nil {
		if *fields.FundType == "" {
			return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidFundType, "fund type is required")
		}
		updates["fund_type"] = *fields.FundType
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", expense.ID).First(expense).Error; err != nil {
			return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	fundUpdates := &FundUpdates{Success: true}
	if !expense.IsRecurringExpense {
		// The original posting charged oldAmount to oldFund. Moving the
		// expense to another fund shifts that charge: the new fund pays,
		// the old fund is made whole.
		if expense.FundType != oldFund {
			_, err := s.fundService.Transfer(expense.FundType, oldFund, oldAmount,
				fmt.Sprintf("Pindah dana pengeluaran %s", expense.Name), userID)
			if err != nil {
				logger.Get().Errorw("expense fund reassignment transfer failed",
					"expense_id", expense.ID, "from", expense.FundType, "to", oldFund,
					"amount", oldAmount, "error", err.Error(),
				)
				fundUpdates.Success = false
				fundUpdates.Error = err.Error()
			}
		}

		if expense.Amount != oldAmount {
			_, err := s.fundService.Post(Posting{
				FundType:    expense.FundType,
				Type:        models.FundTxAdjustment,
				Amount:      oldAmount - expense.Amount,
				Description: fmt.Sprintf("Koreksi jumlah pengeluaran %s", expense.Name),
				SourceType:  models.SourceExpense,
				SourceID:    &expense.ID,
				CreatedByID: userID,
			})
			if err != nil {
				logger.Get().Errorw("expense amount correction posting failed",
					"expense_id", expense.ID, "fund_type", expense.FundType,
					"old_amount", oldAmount, "new_amount", expense.Amount, "error", err.Error(),
				)
				fundUpdates.Success = false
				if fundUpdates.Error != "" {
					fundUpdates.Error += "; "
				}
				fundUpdates.Error += err.Error()
			}
		}
	}

	return expense, fundUpdates, nil
}

// DeleteExpense soft-deletes an expense. For concrete expenses the posted
// amount is refunded to the fund as an adjustment, best-effort.
func (s *expenseService) DeleteExpense(userID, expenseID string) (*FundUpdates, error) {
	expense, err := s.GetExpenseByID(expenseID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	fundUpdates := &FundUpdates{Success: true}
	if !expense.IsRecurringExpense {
		_, err := s.fundService.Post(Posting{
			FundType:    expense.FundType,
			Type:        models.FundTxAdjustment,
			Amount:      expense.Amount,
			Description: fmt.Sprintf("Pembatalan pengeluaran %s", expense.Name),
			SourceType:  models.SourceExpense,
			SourceID:    &expense.ID,
			CreatedByID: userID,
		})
		if err != nil {
			logger.Get().Errorw("expense deletion refund posting failed",
				"expense_id", expense.ID, "fund_type", expense.FundType,
				"amount", expense.Amount, "error", err.Error(),
			)
			fundUpdates.Success = false
			fundUpdates.Error = err.Error()
		}
	}

	return fundUpdates, nil
}
