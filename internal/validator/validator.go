// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("fund_type", validateFundType)
		_ = v.RegisterValidation("fund_transaction_type", validateFundTransactionType)
		_ = v.RegisterValidation("payment_status", validatePaymentStatus)
		_ = v.RegisterValidation("recurring_frequency", validateRecurringFrequency)
		_ = v.RegisterValidation("inventory_type", validateInventoryType)
	}
}

func validateFundType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "petty_cash", "profit_bank":
		return true
	}
	return false
}

func validateFundTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense", "transfer_in", "transfer_out", "adjustment":
		return true
	}
	return false
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Belum Bayar", "DP", "Lunas":
		return true
	}
	return false
}

func validateRecurringFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "MONTHLY", "QUARTERLY", "ANNUALLY":
		return true
	}
	return false
}

func validateInventoryType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "EQUIPMENT", "SUBSCRIPTION":
		return true
	}
	return false
}
