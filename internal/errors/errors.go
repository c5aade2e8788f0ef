// Package errors provides custom error types for the Aruskas API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Fund ledger errors.
var (
	ErrInvalidFundType            = &AppError{Code: "INVALID_FUND_TYPE", Message: "Invalid fund type", StatusCode: http.StatusBadRequest}
	ErrInvalidFundTransactionType = &AppError{Code: "INVALID_FUND_TRANSACTION_TYPE", Message: "Unsupported fund transaction type", StatusCode: http.StatusBadRequest}
	ErrFundNotFound               = &AppError{Code: "FUND_NOT_FOUND", Message: "Fund account not found", StatusCode: http.StatusNotFound}
	ErrSameFundTransfer           = &AppError{Code: "SAME_FUND_TRANSFER", Message: "Cannot transfer to the same fund", StatusCode: http.StatusBadRequest}
	ErrPartialPosting             = &AppError{Code: "PARTIAL_POSTING", Message: "A ledger posting only partially completed", StatusCode: http.StatusInternalServerError}
)

// Transaction (project/sale) errors.
var (
	ErrTransactionNotFound  = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidPaymentStatus = &AppError{Code: "INVALID_PAYMENT_STATUS", Message: "Unsupported payment status", StatusCode: http.StatusBadRequest}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrNotRecurring    = &AppError{Code: "NOT_RECURRING", Message: "Expense is not a recurring template", StatusCode: http.StatusBadRequest}
)

// Inventory errors.
var (
	ErrInventoryNotFound = &AppError{Code: "INVENTORY_NOT_FOUND", Message: "Inventory item not found", StatusCode: http.StatusNotFound}
)
