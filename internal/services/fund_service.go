package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "aruskas/internal/errors"
	"aruskas/internal/logger"
	"aruskas/internal/models"
	"aruskas/internal/pagination"
)

// fundService implements the fund account store and the append-only ledger.
type fundService struct {
	db *gorm.DB
}

// NewFundService creates a new FundServicer.
func NewFundService(db *gorm.DB) FundServicer {
	return &fundService{db: db}
}

// GetOrCreate returns the fund account for fundType, creating it with a
// zero balance on first reference. Fund accounts are never deleted.
func (s *fundService) GetOrCreate(fundType models.FundType) (*models.FundAccount, error) {
	return s.getOrCreate(s.db, fundType)
}

func (s *fundService) getOrCreate(tx *gorm.DB, fundType models.FundType) (*models.FundAccount, error) {
	if fundType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidFundType, "fund type is required")
	}

	var account models.FundAccount
	err := tx.Where("fund_type = ?", fundType).First(&account).Error
	if err == nil {
		return &account, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	account = models.FundAccount{FundType: fundType, CurrentBalance: 0}
	if err := tx.Create(&account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &account, nil
}

// applyDelta is the single physical write path for fund balances. It reads
// the current balance, adds delta, and persists the result. There is no
// concurrency token: two concurrent deltas on the same fund can interleave
// and lose one update. Serializing postings is left to the storage layer if
// that ever becomes a problem in practice.
func (s *fundService) applyDelta(tx *gorm.DB, fundType models.FundType, delta int64) (*models.FundAccount, error) {
	account, err := s.getOrCreate(tx, fundType)
	if err != nil {
		return nil, err
	}

	account.CurrentBalance += delta
	if err := tx.Model(account).Update("current_balance", account.CurrentBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// Post applies one caller-signed posting to a fund and appends the matching
// immutable ledger row carrying the resulting balance. The balance write
// and the ledger append commit together; atomicity with whatever business
// record triggered the posting is deliberately NOT provided.
//
// Sign conventions (expense/transfer_out negative, income/transfer_in
// positive) are owned by the call sites, not checked here.
func (s *fundService) Post(p Posting) (*models.FundTransaction, error) {
	if p.FundType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidFundType, "fund type is required")
	}
	if !p.Type.Valid() {
		return nil, apperrors.ErrInvalidFundTransactionType
	}
	if p.Amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "posting amount must be non-zero")
	}

	var entry *models.FundTransaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		account, err := s.applyDelta(tx, p.FundType, p.Amount)
		if err != nil {
			return err
		}

		entry = &models.FundTransaction{
			FundType:     p.FundType,
			Type:         p.Type,
			Amount:       p.Amount,
			BalanceAfter: account.CurrentBalance,
			Description:  p.Description,
			SourceType:   p.SourceType,
			SourceID:     p.SourceID,
			CreatedByID:  p.CreatedByID,
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Transfer moves amount from one fund to another as a pair of linked
// transfer_out/transfer_in postings. The legs are posted sequentially and
// are NOT wrapped in a shared database transaction: if the second leg
// fails, the first stays committed and the one-legged state is surfaced as
// a partial posting error for manual reconciliation, never silently undone.
func (s *fundService) Transfer(from, to models.FundType, amount int64, description, createdByID string) (*TransferResult, error) {
	if from == "" || to == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidFundType, "both funds are required for a transfer")
	}
	if from == to {
		return nil, apperrors.ErrSameFundTransfer
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer amount must be greater than zero")
	}

	out, err := s.Post(Posting{
		FundType:    from,
		Type:        models.FundTxTransferOut,
		Amount:      -amount,
		Description: description,
		SourceType:  models.SourceFundTransfer,
		CreatedByID: createdByID,
	})
	if err != nil {
		return nil, err
	}

	in, err := s.Post(Posting{
		FundType:    to,
		Type:        models.FundTxTransferIn,
		Amount:      amount,
		Description: description,
		SourceType:  models.SourceFundTransfer,
		CreatedByID: createdByID,
	})
	if err != nil {
		logger.Get().Errorw("transfer second leg failed, ledger is one-legged",
			"from", from, "to", to, "amount", amount, "out_leg_id", out.ID,
			"error", err.Error(),
		)
		return &TransferResult{Out: out}, apperrors.Wrap(apperrors.ErrPartialPosting, err)
	}

	// Backfill the mutual reference, the only permitted update to a ledger row.
	if err := s.linkTransferLegs(out, in); err != nil {
		logger.Get().Errorw("transfer legs committed but cross-reference backfill failed",
			"out_leg_id", out.ID, "in_leg_id", in.ID, "error", err.Error(),
		)
		return &TransferResult{Out: out, In: in}, apperrors.Wrap(apperrors.ErrPartialPosting, err)
	}

	return &TransferResult{Out: out, In: in}, nil
}

func (s *fundService) linkTransferLegs(out, in *models.FundTransaction) error {
	if err := s.db.Model(out).Update("reference_id", in.ID).Error; err != nil {
		return fmt.Errorf("linking out leg: %w", err)
	}
	if err := s.db.Model(in).Update("reference_id", out.ID).Error; err != nil {
		return fmt.Errorf("linking in leg: %w", err)
	}
	out.ReferenceID = &in.ID
	in.ReferenceID = &out.ID
	return nil
}

// GetBalances returns all known fund accounts with their current balances.
func (s *fundService) GetBalances() ([]models.FundAccount, error) {
	var accounts []models.FundAccount
	if err := s.db.Order("fund_type ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return accounts, nil
}

// GetLedger retrieves a paginated, filtered slice of the ledger history,
// newest first, with the total count for pagination.
func (s *fundService) GetLedger(page pagination.PageRequest, filter LedgerFilter) (*pagination.PageResponse[models.FundTransaction], error) {
	page.Defaults()

	base := s.db.Model(&models.FundTransaction{})
	base = applyLedgerFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []models.FundTransaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyLedgerFilters(q *gorm.DB, f LedgerFilter) *gorm.DB {
	if f.FundType != nil {
		q = q.Where("fund_type = ?", *f.FundType)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.SourceType != nil {
		q = q.Where("source_type = ?", *f.SourceType)
	}
	if f.FromDate != nil {
		q = q.Where("created_at >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("created_at <= ?", *f.ToDate)
	}
	return q
}
