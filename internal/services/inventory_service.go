package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "aruskas/internal/errors"
	"aruskas/internal/models"
	"aruskas/internal/pagination"
)

// inventoryService handles inventory business logic.
type inventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new InventoryServicer.
func NewInventoryService(db *gorm.DB) InventoryServicer {
	return &inventoryService{db: db}
}

// CreateInventory records a new inventory item.
func (s *inventoryService) CreateInventory(
	userID, name, description string,
	invType models.InventoryType,
	purchasePrice int64,
	recurringType models.RecurringFrequency,
	nextBillingDate *time.Time,
) (*models.Inventory, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "inventory name is required")
	}
	if !invType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid inventory type")
	}
	if purchasePrice < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price cannot be negative")
	}

	item := &models.Inventory{
		Name:          name,
		Type:          invType,
		Description:   description,
		PurchasePrice: purchasePrice,
		PaymentStatus: models.PaymentStatusUnpaid,
		CreatedByID:   userID,
	}
	if invType == models.InventoryTypeSubscription {
		item.RecurringType = recurringType
		item.NextBillingDate = nextBillingDate
	}

	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// GetInventories retrieves a paginated list of inventory items, optionally
// restricted to one type.
func (s *inventoryService) GetInventories(page pagination.PageRequest, invType *models.InventoryType) (*pagination.PageResponse[models.Inventory], error) {
	page.Defaults()

	base := s.db.Model(&models.Inventory{})
	if invType != nil {
		base = base.Where("type = ?", *invType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.Inventory
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(items, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetInventoryByID retrieves an inventory item by ID.
func (s *inventoryService) GetInventoryByID(inventoryID string) (*models.Inventory, error) {
	var item models.Inventory
	if err := s.db.Where("id = ?", inventoryID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInventoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &item, nil
}

// UpdateInventory edits an inventory item. Billing mirror fields only apply
// to SUBSCRIPTION items.
func (s *inventoryService) UpdateInventory(userID, inventoryID string, fields InventoryUpdateFields) (*models.Inventory, error) {
	item, err := s.GetInventoryByID(inventoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.PurchasePrice != nil {
		if *fields.PurchasePrice < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase price cannot be negative")
		}
		updates["purchase_price"] = *fields.PurchasePrice
	}
	if fields.PaymentStatus != nil {
		if !fields.PaymentStatus.Valid() {
			return nil, apperrors.ErrInvalidPaymentStatus
		}
		updates["payment_status"] = *fields.PaymentStatus
	}

	if item.Type == models.InventoryTypeSubscription {
		if fields.RecurringType != nil {
			updates["recurring_type"] = *fields.RecurringType
		}
		if fields.NextBillingDate != nil {
			updates["next_billing_date"] = *fields.NextBillingDate
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(item).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", item.ID).First(item).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return item, nil
}

// DeleteInventory soft-deletes an inventory item.
func (s *inventoryService) DeleteInventory(userID, inventoryID string) error {
	item, err := s.GetInventoryByID(inventoryID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
