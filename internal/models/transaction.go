package models

import "time"

// PaymentStatus is the three-state payment lifecycle of a transaction.
// The Indonesian labels are kept as stored values: "Belum Bayar" (unpaid),
// "DP" (down payment), "Lunas" (paid in full).
type PaymentStatus string

const (
	PaymentStatusUnpaid      PaymentStatus = "Belum Bayar"
	PaymentStatusDownPayment PaymentStatus = "DP"
	PaymentStatusPaid        PaymentStatus = "Lunas"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusDownPayment, PaymentStatusPaid:
		return true
	}
	return false
}

// Transaction represents a project/sale record. Its payment status implies
// how much cash has been recognized in the fund ledger: the full
// TotalProfit when Lunas, DownPaymentAmount when DP, nothing when unpaid.
type Transaction struct {
	Base
	Name              string        `gorm:"not null" json:"name"`
	ClientName        string        `json:"client_name"`
	Description       string        `json:"description"`
	PaymentStatus     PaymentStatus `gorm:"not null;default:'Belum Bayar'" json:"payment_status"`
	DownPaymentAmount int64         `gorm:"type:bigint;not null;default:0" json:"down_payment_amount"`
	TotalProfit       int64         `gorm:"type:bigint;not null" json:"total_profit"`
	FundType          FundType      `gorm:"not null;default:'profit_bank'" json:"fund_type"`
	TransactionDate   time.Time     `gorm:"not null" json:"transaction_date"`
	CreatedByID       string        `gorm:"type:uuid" json:"created_by_id"`
}
