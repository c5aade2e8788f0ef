package models

// FundType identifies one of the named cash pools. The key is stored as a
// free-form string so new pools can be added without a migration, but in
// practice only the two constants below are used.
type FundType string

const (
	FundTypePettyCash  FundType = "petty_cash"
	FundTypeProfitBank FundType = "profit_bank"
)

// FundTransactionType classifies a single ledger posting.
type FundTransactionType string

const (
	FundTxIncome      FundTransactionType = "income"
	FundTxExpense     FundTransactionType = "expense"
	FundTxTransferIn  FundTransactionType = "transfer_in"
	FundTxTransferOut FundTransactionType = "transfer_out"
	FundTxAdjustment  FundTransactionType = "adjustment"
)

// Valid reports whether t is a known fund transaction type.
func (t FundTransactionType) Valid() bool {
	switch t {
	case FundTxIncome, FundTxExpense, FundTxTransferIn, FundTxTransferOut, FundTxAdjustment:
		return true
	}
	return false
}

// Source kinds recorded on ledger rows for provenance.
const (
	SourceExpense           = "expense"
	SourceTransactionUpdate = "transaction_update"
	SourceFundTransfer      = "fund_transfer"
	SourceManualEntry       = "manual_entry"
	SourceRecurringExpense  = "recurring_expense"
)

// FundAccount holds the running balance of one fund. Rows are created
// lazily on first reference and never deleted. The balance may go negative;
// no floor is enforced.
type FundAccount struct {
	Base
	FundType       FundType `gorm:"uniqueIndex;not null" json:"fund_type"`
	CurrentBalance int64    `gorm:"type:bigint;not null;default:0" json:"current_balance"`
}

// FundTransaction is an append-only ledger entry. Every balance mutation on
// a FundAccount writes exactly one row here carrying the resulting balance.
// Rows are immutable after creation, except that the first leg of a transfer
// gets its ReferenceID backfilled once the second leg exists.
type FundTransaction struct {
	Base
	FundType     FundType            `gorm:"not null;index" json:"fund_type"`
	Type         FundTransactionType `gorm:"not null" json:"type"`
	Amount       int64               `gorm:"type:bigint;not null" json:"amount"`
	BalanceAfter int64               `gorm:"type:bigint;not null" json:"balance_after"`
	Description  string              `json:"description"`
	SourceType   string              `gorm:"index" json:"source_type"`
	SourceID     *string             `gorm:"type:uuid" json:"source_id,omitempty"`
	ReferenceID  *string             `gorm:"type:uuid" json:"reference_id,omitempty"`
	CreatedByID  string              `gorm:"type:uuid" json:"created_by_id"`
}
