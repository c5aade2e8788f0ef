package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"aruskas/internal/billing"
	apperrors "aruskas/internal/errors"
	"aruskas/internal/logger"
	"aruskas/internal/models"
)

// recurringService materializes due recurring expense templates into
// concrete expenses and advances their billing schedule.
type recurringService struct {
	db          *gorm.DB
	fundService FundServicer
}

// NewRecurringService creates a new RecurringServicer.
func NewRecurringService(db *gorm.DB, fundService FundServicer) RecurringServicer {
	return &recurringService{db: db, fundService: fundService}
}

// Run processes every active recurring template whose next billing date
// falls before cutoff plus one day, optionally restricted to specificIDs.
// Templates are processed independently: one failure is recorded in its
// result row and never aborts the siblings. Re-running with the same cutoff
// is safe because processed templates advance past the selection window.
//
// Only an infrastructure failure (the due list cannot be read at all) fails
// the run itself.
func (s *recurringService) Run(cutoff time.Time, specificIDs []string, actorID string) ([]ProcessResult, error) {
	dueBefore := cutoff.AddDate(0, 0, 1)

	query := s.db.Where("is_recurring_expense = ? AND next_billing_date < ?", true, dueBefore)
	if len(specificIDs) > 0 {
		query = query.Where("id IN ?", specificIDs)
	}

	var templates []models.Expense
	if err := query.Find(&templates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("recurring billing run started",
		"cutoff", cutoff, "due_templates", len(templates), "actor_id", actorID,
	)

	results := make([]ProcessResult, 0, len(templates))
	for i := range templates {
		results = append(results, s.processTemplate(&templates[i], actorID))
	}
	return results, nil
}

// processTemplate runs one billing cycle for a single template.
func (s *recurringService) processTemplate(template *models.Expense, actorID string) ProcessResult {
	now := time.Now()

	base := now
	if template.NextBillingDate != nil {
		base = *template.NextBillingDate
	}
	nextDate := billing.NextBillingDate(base, template.RecurringFrequency)

	instance := &models.Expense{
		Name:          template.Name,
		Category:      template.Category,
		Description:   fmt.Sprintf("%s (diproses %s)", template.Description, now.Format("2006-01-02")),
		Amount:        template.Amount,
		FundType:      template.FundType,
		ExpenseDate:   now,
		TransactionID: template.TransactionID,
		InventoryID:   template.InventoryID,
		CreatedByID:   actorID,
	}
	if err := s.db.Create(instance).Error; err != nil {
		return ProcessResult{
			ExpenseID: template.ID,
			Status:    ProcessStatusError,
			Error:     fmt.Sprintf("creating expense instance: %v", err),
		}
	}

	updates := map[string]interface{}{
		"last_processed_date": now,
		"next_billing_date":   nextDate,
	}
	if err := s.db.Model(template).Updates(updates).Error; err != nil {
		return ProcessResult{
			ExpenseID:    template.ID,
			NewExpenseID: instance.ID,
			Status:       ProcessStatusError,
			Error:        fmt.Sprintf("advancing template schedule: %v", err),
		}
	}

	if template.InventoryID != nil {
		s.syncSubscription(*template.InventoryID, now, nextDate)
	}

	// Best-effort ledger posting; failure is logged and does not fail the item.
	if _, err := s.fundService.Post(Posting{
		FundType:    template.FundType,
		Type:        models.FundTxExpense,
		Amount:      -template.Amount,
		Description: fmt.Sprintf("Pengeluaran rutin: %s", template.Name),
		SourceType:  models.SourceRecurringExpense,
		SourceID:    &instance.ID,
		CreatedByID: actorID,
	}); err != nil {
		logger.Get().Errorw("ledger posting for recurring expense failed",
			"template_id", template.ID, "expense_id", instance.ID,
			"fund_type", template.FundType, "amount", template.Amount,
			"error", err.Error(),
		)
	}

	return ProcessResult{
		ExpenseID:       template.ID,
		NewExpenseID:    instance.ID,
		Status:          ProcessStatusSuccess,
		NextBillingDate: &nextDate,
	}
}

// syncSubscription mirrors the billing advance onto a linked SUBSCRIPTION
// inventory item. Sync failures are logged for reconciliation; the billing
// cycle itself has already committed.
func (s *recurringService) syncSubscription(inventoryID string, billedAt, nextDate time.Time) {
	var item models.Inventory
	if err := s.db.Where("id = ?", inventoryID).First(&item).Error; err != nil {
		logger.Get().Warnw("linked inventory not found during recurring sync",
			"inventory_id", inventoryID, "error", err.Error(),
		)
		return
	}
	if item.Type != models.InventoryTypeSubscription {
		return
	}

	updates := map[string]interface{}{
		"last_billing_date": billedAt,
		"next_billing_date": nextDate,
		"payment_status":    models.PaymentStatusPaid,
	}
	if err := s.db.Model(&item).Updates(updates).Error; err != nil {
		logger.Get().Errorw("subscription inventory sync failed",
			"inventory_id", inventoryID, "error", err.Error(),
		)
	}
}
