package services

import (
	"time"

	"aruskas/internal/models"
	"aruskas/internal/pagination"
)

// Posting describes one signed-amount write to a fund. Amount carries the
// caller's sign: callers posting an expense or transfer_out pass a negative
// amount, income and transfer_in a positive one, adjustments either.
type Posting struct {
	FundType    models.FundType
	Type        models.FundTransactionType
	Amount      int64
	Description string
	SourceType  string
	SourceID    *string
	CreatedByID string
}

// TransferResult holds the two linked legs of a fund transfer.
type TransferResult struct {
	Out *models.FundTransaction `json:"out"`
	In  *models.FundTransaction `json:"in"`
}

// LedgerFilter holds optional filter parameters for listing ledger entries.
type LedgerFilter struct {
	FundType   *models.FundType
	Type       *models.FundTransactionType
	SourceType *string
	FromDate   *time.Time
	ToDate     *time.Time
}

// FundUpdates reports the outcome of best-effort ledger postings that ride
// along with a primary business-record write. The primary write succeeds
// even when the ledger side fails; callers inspect this to detect drift.
type FundUpdates struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// FundServicer defines the contract for the fund account store and ledger.
type FundServicer interface {
	GetOrCreate(fundType models.FundType) (*models.FundAccount, error)
	Post(p Posting) (*models.FundTransaction, error)
	Transfer(from, to models.FundType, amount int64, description, createdByID string) (*TransferResult, error)
	GetBalances() ([]models.FundAccount, error)
	GetLedger(page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.FundTransaction], error)
}

// TransactionServicer defines the contract for project/sale transactions.
type TransactionServicer interface {
	CreateTransaction(userID, name, clientName, description string, totalProfit, downPayment int64, status models.PaymentStatus, fundType models.FundType, date time.Time) (*models.Transaction, *FundUpdates, error)
	GetTransactions(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	UpdatePaymentStatus(userID, transactionID string, newStatus models.PaymentStatus, newDownPayment *int64, newFundType *models.FundType) (*models.Transaction, *FundUpdates, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	FundType    *models.FundType
	Category    *string
	IsRecurring *bool
	FromDate    *time.Time
	ToDate      *time.Time
}

// ExpenseUpdateFields carries the mutable fields of an expense edit.
// Nil pointers leave the stored value unchanged.
type ExpenseUpdateFields struct {
	Name        *string
	Category    *string
	Description *string
	Amount      *int64
	FundType    *models.FundType
}

// ExpenseServicer defines the contract for expense business logic.
type ExpenseServicer interface {
	CreateExpense(userID string, input CreateExpenseInput) (*models.Expense, *FundUpdates, error)
	GetExpenses(page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, fields ExpenseUpdateFields) (*models.Expense, *FundUpdates, error)
	DeleteExpense(userID, expenseID string) (*FundUpdates, error)
}

// CreateExpenseInput carries the fields of a new expense.
type CreateExpenseInput struct {
	Name               string
	Category           string
	Description        string
	Amount             int64
	FundType           models.FundType
	ExpenseDate        time.Time
	TransactionID      *string
	InventoryID        *string
	IsRecurringExpense bool
	RecurringFrequency models.RecurringFrequency
	NextBillingDate    *time.Time
}

// ProcessResult is the per-template outcome of one recurring billing run.
type ProcessResult struct {
	ExpenseID       string     `json:"expense_id"`
	NewExpenseID    string     `json:"new_expense_id,omitempty"`
	Status          string     `json:"status"`
	NextBillingDate *time.Time `json:"next_billing_date,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// Per-item statuses in ProcessResult.
const (
	ProcessStatusSuccess = "success"
	ProcessStatusError   = "error"
)

// RecurringServicer defines the contract for the recurring payment processor.
type RecurringServicer interface {
	Run(cutoff time.Time, specificIDs []string, actorID string) ([]ProcessResult, error)
}

// InventoryUpdateFields carries the mutable fields of an inventory edit.
type InventoryUpdateFields struct {
	Name            *string
	Description     *string
	PurchasePrice   *int64
	PaymentStatus   *models.PaymentStatus
	RecurringType   *models.RecurringFrequency
	NextBillingDate *time.Time
}

// InventoryServicer defines the contract for inventory business logic.
type InventoryServicer interface {
	CreateInventory(userID, name, description string, invType models.InventoryType, purchasePrice int64, recurringType models.RecurringFrequency, nextBillingDate *time.Time) (*models.Inventory, error)
	GetInventories(page pagination.PageRequest, invType *models.InventoryType) (*pagination.PageResponse[models.Inventory], error)
	GetInventoryByID(inventoryID string) (*models.Inventory, error)
	UpdateInventory(userID, inventoryID string, fields InventoryUpdateFields) (*models.Inventory, error)
	DeleteInventory(userID, inventoryID string) error
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}
