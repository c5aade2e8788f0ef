package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "aruskas/internal/errors"
	"aruskas/internal/logger"
	"aruskas/internal/models"
	"aruskas/internal/pagination"
)

// transactionService handles project/sale transactions and the ledger
// postings implied by their payment status lifecycle.
type transactionService struct {
	db          *gorm.DB
	fundService FundServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, fundService FundServicer) TransactionServicer {
	return &transactionService{db: db, fundService: fundService}
}

// CreateTransaction records a new project/sale. If the initial payment
// status already implies received cash (DP or Lunas), the implied amount is
// posted to the destination fund on a best-effort basis: the transaction
// row is authoritative and is kept even when the posting fails, with the
// ledger outcome reported in FundUpdates.
func (s *transactionService) CreateTransaction(
	userID, name, clientName, description string,
	totalProfit, downPayment int64,
	status models.PaymentStatus,
	fundType models.FundType,
	date time.Time,
) (*models.Transaction, *FundUpdates, error) {
	if name == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction name is required")
	}
	if totalProfit <= 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total profit must be greater than zero")
	}
	if downPayment < 0 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "down payment cannot be negative")
	}
	if !status.Valid() {
		return nil, nil, apperrors.ErrInvalidPaymentStatus
	}
	if fundType == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidFundType, "fund type is required")
	}
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		Name:              name,
		ClientName:        clientName,
		Description:       description,
		PaymentStatus:     status,
		DownPaymentAmount: downPayment,
		TotalProfit:       totalProfit,
		FundType:          fundType,
		TransactionDate:   date,
		CreatedByID:       userID,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	fundUpdates := &FundUpdates{Success: true}
	if received := RecognizedAmount(status, downPayment, totalProfit); received > 0 {
		_, err := s.fundService.Post(Posting{
			FundType:    fundType,
			Type:        models.FundTxIncome,
			Amount:      received,
			Description: fmt.Sprintf("Pemasukan transaksi %s", name),
			SourceType:  models.SourceTransactionUpdate,
			SourceID:    &transaction.ID,
			CreatedByID: userID,
		})
		if err != nil {
			logger.Get().Errorw("ledger posting for new transaction failed",
				"transaction_id", transaction.ID, "fund_type", fundType,
				"amount", received, "error", err.Error(),
			)
			fundUpdates.Success = false
			fundUpdates.Error = err.Error()
		}
	}

	return transaction, fundUpdates, nil
}

// GetTransactions retrieves a paginated list of transactions, newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Transaction{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("transaction_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdatePaymentStatus moves a transaction between payment states and/or
// reassigns its destination fund, posting exactly the implied cash deltas.
//
// The business row is written first and is authoritative. Ledger work then
// runs in fixed order: if the fund changed, the cash recognized under the
// OLD status moves between funds via a transfer; the status delta is then
// posted to the (possibly new) fund. Posting failures are logged and
// reported through FundUpdates, never rolled back into the status write.
func (s *transactionService) UpdatePaymentStatus(
	userID, transactionID string,
	newStatus models.PaymentStatus,
	newDownPayment *int64,
	newFundType *models.FundType,
) (*models.Transaction, *FundUpdates, error) {
	if !newStatus.Valid() {
		return nil, nil, apperrors.ErrInvalidPaymentStatus
	}

	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return nil, nil, err
	}

	oldStatus := transaction.PaymentStatus
	oldDownPayment := transaction.DownPaymentAmount
	oldFund := transaction.FundType

	downPayment := oldDownPayment
	if newDownPayment != nil {
		if *newDownPayment < 0 {
			return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "down payment cannot be negative")
		}
		downPayment = *newDownPayment
	}

	fund := oldFund
	if newFundType != nil {
		if *newFundType == "" {
			return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidFundType, "fund type is required")
		}
		fund = *newFundType
	}

	updates := map[string]interface{}{
		"payment_status":      newStatus,
		"down_payment_amount": downPayment,
		"fund_type":           fund,
	}
	if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	transaction.PaymentStatus = newStatus
	transaction.DownPaymentAmount = downPayment
	transaction.FundType = fund

	fundUpdates := &FundUpdates{Success: true}

	// Fund reassignment first: the cash recognized under the old status
	// follows the transaction to its new fund.
	if fund != oldFund {
		if moved := RecognizedAmount(oldStatus, oldDownPayment, transaction.TotalProfit); moved > 0 {
			_, err := s.fundService.Transfer(oldFund, fund, moved,
				fmt.Sprintf("Pindah dana transaksi %s", transaction.Name), userID)
			if err != nil {
				logger.Get().Errorw("fund reassignment transfer failed",
					"transaction_id", transaction.ID, "from", oldFund, "to", fund,
					"amount", moved, "error", err.Error(),
				)
				fundUpdates.Success = false
				fundUpdates.Error = err.Error()
			}
		}
	}

	// Then the status delta, posted to the current (possibly new) fund.
	if delta := StatusDelta(oldStatus, newStatus, oldDownPayment, downPayment, transaction.TotalProfit); delta != 0 {
		txType := models.FundTxIncome
		if delta < 0 {
			txType = models.FundTxExpense
		}
		_, err := s.fundService.Post(Posting{
			FundType:    fund,
			Type:        txType,
			Amount:      delta,
			Description: fmt.Sprintf("Perubahan status %s: %s -> %s", transaction.Name, oldStatus, newStatus),
			SourceType:  models.SourceTransactionUpdate,
			SourceID:    &transaction.ID,
			CreatedByID: userID,
		})
		if err != nil {
			logger.Get().Errorw("status delta posting failed",
				"transaction_id", transaction.ID, "fund_type", fund,
				"amount", delta, "error", err.Error(),
			)
			fundUpdates.Success = false
			if fundUpdates.Error != "" {
				fundUpdates.Error += "; "
			}
			fundUpdates.Error += err.Error()
		}
	}

	return transaction, fundUpdates, nil
}
