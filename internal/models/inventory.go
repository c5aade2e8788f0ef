package models

import "time"

// InventoryType classifies an inventory asset.
type InventoryType string

const (
	InventoryTypeEquipment    InventoryType = "EQUIPMENT"
	InventoryTypeSubscription InventoryType = "SUBSCRIPTION"
)

// Valid reports whether t is a known inventory type.
func (t InventoryType) Valid() bool {
	switch t {
	case InventoryTypeEquipment, InventoryTypeSubscription:
		return true
	}
	return false
}

// Inventory represents a business asset. SUBSCRIPTION items mirror the
// billing fields of the recurring expense template that pays for them and
// are updated in lockstep when the template is processed.
type Inventory struct {
	Base
	Name            string             `gorm:"not null" json:"name"`
	Type            InventoryType      `gorm:"not null;default:'EQUIPMENT'" json:"type"`
	Description     string             `json:"description"`
	PurchasePrice   int64              `gorm:"type:bigint;not null;default:0" json:"purchase_price"`
	PaymentStatus   PaymentStatus      `gorm:"default:'Belum Bayar'" json:"payment_status"`
	RecurringType   RecurringFrequency `json:"recurring_type,omitempty"`
	NextBillingDate *time.Time         `json:"next_billing_date,omitempty"`
	LastBillingDate *time.Time         `json:"last_billing_date,omitempty"`
	CreatedByID     string             `gorm:"type:uuid" json:"created_by_id"`
}
