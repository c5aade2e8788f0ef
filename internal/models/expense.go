package models

import "time"

// RecurringFrequency is the billing cadence of a recurring expense template.
// Unrecognized values are treated as MONTHLY by the billing calculator.
type RecurringFrequency string

const (
	FrequencyMonthly   RecurringFrequency = "MONTHLY"
	FrequencyQuarterly RecurringFrequency = "QUARTERLY"
	FrequencyAnnually  RecurringFrequency = "ANNUALLY"
)

// Valid reports whether f is a known recurring frequency.
func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	}
	return false
}

// Expense is a business expense drawing from one fund. A row with
// IsRecurringExpense set is a template: it never posts to the ledger itself
// and instead spawns concrete non-recurring rows each billing cycle.
type Expense struct {
	Base
	Name               string             `gorm:"not null" json:"name"`
	Category           string             `json:"category"`
	Description        string             `json:"description"`
	Amount             int64              `gorm:"type:bigint;not null" json:"amount"`
	FundType           FundType           `gorm:"not null;default:'petty_cash'" json:"fund_type"`
	ExpenseDate        time.Time          `gorm:"not null" json:"expense_date"`
	TransactionID      *string            `gorm:"type:uuid" json:"transaction_id,omitempty"`
	InventoryID        *string            `gorm:"type:uuid" json:"inventory_id,omitempty"`
	IsRecurringExpense bool               `gorm:"default:false" json:"is_recurring_expense"`
	RecurringFrequency RecurringFrequency `json:"recurring_frequency,omitempty"`
	NextBillingDate    *time.Time         `json:"next_billing_date,omitempty"`
	LastProcessedDate  *time.Time         `json:"last_processed_date,omitempty"`
	CreatedByID        string             `gorm:"type:uuid" json:"created_by_id"`
}
