package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"aruskas/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestFundAccount creates a fund account with the given balance (in rupiah).
func CreateTestFundAccount(t *testing.T, db *gorm.DB, fundType models.FundType, balance int64) *models.FundAccount {
	t.Helper()

	account := &models.FundAccount{
		FundType:       fundType,
		CurrentBalance: balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test fund account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction with the given status and amounts.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, status models.PaymentStatus, totalProfit, downPayment int64, fundType models.FundType) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Name:              fmt.Sprintf("Test Transaction %d", nextID()),
		PaymentStatus:     status,
		TotalProfit:       totalProfit,
		DownPaymentAmount: downPayment,
		FundType:          fundType,
		TransactionDate:   time.Now(),
		CreatedByID:       userID,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestExpense creates a concrete (non-recurring) expense.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, amount int64, fundType models.FundType) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Name:        fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      amount,
		FundType:    fundType,
		ExpenseDate: time.Now(),
		CreatedByID: userID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestRecurringExpense creates a recurring expense template with the
// given frequency and next billing date.
func CreateTestRecurringExpense(t *testing.T, db *gorm.DB, userID string, amount int64, frequency models.RecurringFrequency, nextBilling time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Name:               fmt.Sprintf("Test Recurring Expense %d", nextID()),
		Amount:             amount,
		FundType:           models.FundTypePettyCash,
		ExpenseDate:        time.Now(),
		IsRecurringExpense: true,
		RecurringFrequency: frequency,
		NextBillingDate:    &nextBilling,
		CreatedByID:        userID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test recurring expense: %v", err)
	}
	return expense
}

// CreateTestInventory creates an inventory item of the given type.
func CreateTestInventory(t *testing.T, db *gorm.DB, userID string, invType models.InventoryType) *models.Inventory {
	t.Helper()

	item := &models.Inventory{
		Name:          fmt.Sprintf("Test Inventory %d", nextID()),
		Type:          invType,
		PurchasePrice: 100000,
		CreatedByID:   userID,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test inventory: %v", err)
	}
	return item
}
