package services

import (
	"errors"
	"testing"
	"time"

	apperrors "aruskas/internal/errors"
	"aruskas/internal/models"
	"aruskas/internal/testutil"
)

// failingFundService stands in for a broken ledger backend: every posting
// and transfer fails. Embedding the interface leaves the unused methods nil.
type failingFundService struct {
	FundServicer
}

func (f *failingFundService) Post(p Posting) (*models.FundTransaction, error) {
	return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("ledger unavailable"))
}

func (f *failingFundService) Transfer(from, to models.FundType, amount int64, description, createdByID string) (*TransferResult, error) {
	return nil, apperrors.Wrap(apperrors.ErrInternalServer, errors.New("ledger unavailable"))
}

func TestCreateTransaction(t *testing.T) {
	t.Run("unpaid_posts_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db)
		txSvc := NewTransactionService(db, fundSvc)
		user := testutil.CreateTestUser(t, db)

		tx, fundUpdates, err := txSvc.CreateTransaction(user.ID, "Website company profile", "PT Maju", "",
			10000000, 0, models.PaymentStatusUnpaid, models.FundTypeProfitBank, time.Now())
		testutil.AssertNoError(t, err)
		if !fundUpdates.Success {
			t.Errorf("expected successful fund updates, got error: %s", fundUpdates.Error)
		}
		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}

		var count int64
		if err := db.Model(&models.FundTransaction{}).Count(&count).Error; err != nil {
			t.Fatalf("counting ledger rows: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no ledger rows for unpaid transaction, got %d", count)
		}
	})

	t.Run("dp_posts_down_payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db)
		txSvc := NewTransactionService(db, fundSvc)
		user := testutil.CreateTestUser(t, db)

		_, fundUpdates, err := txSvc.CreateTransaction(user.ID, "Logo design", "", "",
			10000000, 3000000, models.PaymentStatusDownPayment, models.FundTypeProfitBank, time.Now())
		testutil.AssertNoError(t, err)
		if !fundUpdates.Success {
			t.Errorf("expected successful fund updates, got error: %s", fundUpdates.Error)
		}

		account, err := fundSvc.GetOrCreate(models.FundTypeProfitBank)
		testutil.AssertNoError(t, err)
		if account.CurrentBalance != 3000000 {
			t.Errorf("expected balance 3000000, got %d", account.CurrentBalance)
		}
	})

	t.Run("paid_posts_full_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db)
		txSvc := NewTransactionService(db, fundSvc)
		user := testutil.CreateTestUser(t, db)

		tx, _, err := txSvc.CreateTransaction(user.ID, "Video editing", "", "",
			5000000, 0, models.PaymentStatusPaid, models.FundTypeProfitBank, time.Now())
		testutil.AssertNoError(t, err)

		var entry models.FundTransaction
		if err := db.Where("source_id = ?", tx.ID).First(&entry).Error; err != nil {
			t.Fatalf("loading ledger entry: %v", err)
		}
		if entry.Amount != 5000000 || entry.Type != models.FundTxIncome {
			t.Errorf("unexpected entry: amount=%d type=%s", entry.Amount, entry.Type)
		}
		if entry.SourceType != models.SourceTransactionUpdate {
			t.Errorf("expected source_type %s, got %s", models.SourceTransactionUpdate, entry.SourceType)
		}
	})

	t.Run("ledger_failure_keeps_transaction_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, &failingFundService{})
		user := testutil.CreateTestUser(t, db)

		tx, fundUpdates, err := txSvc.CreateTransaction(user.ID, "Maintenance bulanan", "", "",
			5000000, 0, models.PaymentStatusPaid, models.FundTypeProfitBank, time.Now())
		testutil.AssertNoError(t, err)
		if fundUpdates.Success {
			t.Error("expected fund updates to report the posting failure")
		}
		if fundUpdates.Error == "" {
			t.Error("expected fund updates to carry the posting error")
		}

		// The business row is authoritative and survives the failed posting.
		var stored models.Transaction
		if err := db.Where("id = ?", tx.ID).First(&stored).Error; err != nil {
			t.Fatalf("reloading transaction: %v", err)
		}
		if stored.PaymentStatus != models.PaymentStatusPaid {
			t.Errorf("expected stored status Lunas, got %s", stored.PaymentStatus)
		}
	})

	t.Run("missing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, NewFundService(db))

		_, _, err := txSvc.CreateTransaction("u", "", "", "", 100, 0,
			models.PaymentStatusUnpaid, models.FundTypeProfitBank, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, NewFundService(db))

		_, _, err := txSvc.CreateTransaction("u", "X", "", "", 100, 0,
			models.PaymentStatus("Cicilan"), models.FundTypeProfitBank, time.Now())
		testutil.AssertAppError(t, err, "INVALID_PAYMENT_STATUS")
	})

	t.Run("non_positive_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, NewFundService(db))

		_, _, err := txSvc.CreateTransaction("u", "X", "", "", 0, 0,
			models.PaymentStatusUnpaid, models.FundTypeProfitBank, time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	t.Run("unpaid_to_dp_posts_down_payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db)
		txSvc := NewTransactionService(db, fundSvc)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.PaymentStatusUnpaid, 10000000, 0, models.FundTypeProfitBank)

		dp := int64(3000000)
		updated, fundUpdates, err := txSvc.UpdatePaymentStatus(user.ID, tx.ID, models.PaymentStatusDownPayment, &dp, nil)
		testutil.AssertNoError(t, err)
		if !fundUpdates.Success {
			t.Errorf("expected successful fund updates, got error: %s", fundUpdates.Error)
		}
		if updated.PaymentStatus != models.PaymentStatusDownPayment {
			t.Errorf("expected status DP, got %s", updated.PaymentStatus)
		}

		account, err := fundSvc.GetOrCreate(models.FundTypeProfitBank)
		testutil.AssertNoError(t, err)
		if account.CurrentBalance != 3000000 {
			t.Errorf("expected balance 3000000, got %d", account.CurrentBalance)
		}
	})

	t.Run("dp_to_paid_posts_remainder", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db)
		txSvc := NewTransactionService(db, fundSvc)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFundAccount(t, db, models.FundTypeProfitBank, 3000000)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.PaymentStatusDownPayment, 10000000, 3000000, models.FundTypeProfitBank)

		_, fundUpdates, err := txSvc.UpdatePaymentStatus(user.ID, tx.ID, models.PaymentStatusPaid, nil, nil)
		testutil.AssertNoError(t, err)
		if !fundUpdates.Success {
			t.Errorf("expected successful fund updates, got error: %s", fundUpdates.Error)
		}

		account, err := fundSvc.GetOrCreate(models.FundTypeProfitBank)
		testutil.AssertNoError(t, err)
		if account.CurrentBalance != 10000000 {
			t.Errorf("expected balance 10000000, got %d", account.CurrentBalance)
		}

		var entry models.FundTransaction
		if err := db.Where("source_id = ? AND type = ?", tx.ID, models.FundTxIncome).First(&entry).Error; err != nil {
			t.Fatalf("loading delta entry: %v", err)
		}
		if entry.Amount != 7000000 {
			t.Errorf("expected delta 7000000, got %d", entry.Amount)
		}
	})

	t.Run("paid_to_unpaid_reverses_full_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db)
		txSvc := NewTransactionService(db, fundSvc)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFundAccount(t, db, models.FundTypeProfitBank, 5000000)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.PaymentStatusPaid, 5000000, 0, models.FundTypeProfitBank)

		_, fundUpdates, err := txSvc.UpdatePaymentStatus(user.ID, tx.ID, models.PaymentStatusUnpaid, nil, nil)
		testutil.AssertNoError(t, err)
		if !fundUpdates.Success {
			t.Errorf("expected successful fund updates, got error: %s", fundUpdates.Error)
		}

		account, err := fundSvc.GetOrCreate(models.FundTypeProfitBank)
		testutil.AssertNoError(t, err)
		if account.CurrentBalance != 0 {
			t.Errorf("expected balance 0 after reversal, got %d", account.CurrentBalance)
		}

		var entry models.FundTransaction
		if err := db.Where("source_id = ?", tx.ID).First(&entry).Error; err != nil {
			t.Fatalf("loading reversal entry: %v", err)
		}
		if entry.Amount != -5000000 || entry.Type != models.FundTxExpense {
			t.Errorf("unexpected reversal entry: amount=%d type=%s", entry.Amount, entry.Type)
		}
	})

	t.Run("dp_amount_edit_posts_difference", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db)
		txSvc := NewTransactionService(db, fundSvc)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFundAccount(t, db, models.FundTypeProfitBank, 3000000)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.PaymentStatusDownPayment, 10000000, 3000000, models.FundTypeProfitBank)

		dp := int64(4500000)
		_, fundUpdates, err := txSvc.UpdatePaymentStatus(user.ID, tx.ID, models.PaymentStatusDownPayment, &dp, nil)
		testutil.AssertNoError(t, err)
		if !fundUpdates.Success {
			t.Errorf("expected successful fund updates, got error: %s", fundUpdates.Error)
		}

		account, err := fundSvc.GetOrCreate(models.FundTypeProfitBank)
		testutil.AssertNoError(t, err)
		if account.CurrentBalance != 4500000 {
			t.Errorf("expected balance 4500000, got %d", account.CurrentBalance)
		}
	})

	t.Run("fund_reassignment_transfers_recognized_cash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db)
		txSvc := NewTransactionService(db, fundSvc)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestFundAccount(t, db, models.FundTypeProfitBank, 5000000)
		testutil.CreateTestFundAccount(t, db, models.FundTypePettyCash, 0)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.PaymentStatusPaid, 5000000, 0, models.FundTypeProfitBank)

		// Status unchanged, only the fund moves: a single transfer, no status delta.
		petty := models.FundTypePettyCash
		updated, fundUpdates, err := txSvc.UpdatePaymentStatus(user.ID, tx.ID, models.PaymentStatusPaid, nil, &petty)
		testutil.AssertNoError(t, err)
		if !fundUpdates.Success {
			t.Errorf("expected successful fund updates, got error: %s", fundUpdates.Error)
		}
		if updated.FundType != models.FundTypePettyCash {
			t.Errorf("expected fund petty_cash, got %s", updated.FundType)
		}

		bank, err := fundSvc.GetOrCreate(models.FundTypeProfitBank)
		testutil.AssertNoError(t, err)
		if bank.CurrentBalance != 0 {
			t.Errorf("expected bank balance 0, got %d", bank.CurrentBalance)
		}
		cash, err := fundSvc.GetOrCreate(models.FundTypePettyCash)
		testutil.AssertNoError(t, err)
		if cash.CurrentBalance != 5000000 {
			t.Errorf("expected petty cash balance 5000000, got %d", cash.CurrentBalance)
		}

		var count int64
		if err := db.Model(&models.FundTransaction{}).
			Where("source_type = ?", models.SourceFundTransfer).Count(&count).Error; err != nil {
			t.Fatalf("counting transfer legs: %v", err)
		}
		if count != 2 {
			t.Errorf("expected exactly 2 transfer legs, got %d", count)
		}
	})

	t.Run("fund_reassignment_of_unpaid_moves_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db)
		txSvc := NewTransactionService(db, fundSvc)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.PaymentStatusUnpaid, 5000000, 0, models.FundTypeProfitBank)

		petty := models.FundTypePettyCash
		_, fundUpdates, err := txSvc.UpdatePaymentStatus(user.ID, tx.ID, models.PaymentStatusUnpaid, nil, &petty)
		testutil.AssertNoError(t, err)
		if !fundUpdates.Success {
			t.Errorf("expected successful fund updates, got error: %s", fundUpdates.Error)
		}

		var count int64
		if err := db.Model(&models.FundTransaction{}).Count(&count).Error; err != nil {
			t.Fatalf("counting ledger rows: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no ledger rows, got %d", count)
		}
	})

	t.Run("ledger_failure_keeps_status_write", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, &failingFundService{})
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.PaymentStatusDownPayment, 10000000, 3000000, models.FundTypeProfitBank)

		updated, fundUpdates, err := txSvc.UpdatePaymentStatus(user.ID, tx.ID, models.PaymentStatusPaid, nil, nil)
		testutil.AssertNoError(t, err)
		if fundUpdates.Success {
			t.Error("expected fund updates to report the posting failure")
		}
		if fundUpdates.Error == "" {
			t.Error("expected fund updates to carry the posting error")
		}
		if updated.PaymentStatus != models.PaymentStatusPaid {
			t.Errorf("expected returned status Lunas, got %s", updated.PaymentStatus)
		}

		// The status write committed despite the dead ledger.
		var stored models.Transaction
		if err := db.Where("id = ?", tx.ID).First(&stored).Error; err != nil {
			t.Fatalf("reloading transaction: %v", err)
		}
		if stored.PaymentStatus != models.PaymentStatusPaid {
			t.Errorf("expected stored status Lunas, got %s", stored.PaymentStatus)
		}

		var count int64
		if err := db.Model(&models.FundTransaction{}).Count(&count).Error; err != nil {
			t.Fatalf("counting ledger rows: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no ledger rows, got %d", count)
		}
	})

	t.Run("reassignment_transfer_failure_keeps_fund_write", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, &failingFundService{})
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.PaymentStatusPaid, 5000000, 0, models.FundTypeProfitBank)

		petty := models.FundTypePettyCash
		updated, fundUpdates, err := txSvc.UpdatePaymentStatus(user.ID, tx.ID, models.PaymentStatusPaid, nil, &petty)
		testutil.AssertNoError(t, err)
		if fundUpdates.Success {
			t.Error("expected fund updates to report the transfer failure")
		}
		if updated.FundType != models.FundTypePettyCash {
			t.Errorf("expected fund petty_cash, got %s", updated.FundType)
		}
	})

	t.Run("invalid_status", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, NewFundService(db))

		_, _, err := txSvc.UpdatePaymentStatus("u", "no-such-id", models.PaymentStatus("Nunggak"), nil, nil)
		testutil.AssertAppError(t, err, "INVALID_PAYMENT_STATUS")
	})

	t.Run("unknown_transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, NewFundService(db))

		_, _, err := txSvc.UpdatePaymentStatus("u", "no-such-id", models.PaymentStatusPaid, nil, nil)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("negative_down_payment", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		txSvc := NewTransactionService(db, NewFundService(db))
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.PaymentStatusUnpaid, 1000000, 0, models.FundTypeProfitBank)

		dp := int64(-100)
		_, _, err := txSvc.UpdatePaymentStatus(user.ID, tx.ID, models.PaymentStatusDownPayment, &dp, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
