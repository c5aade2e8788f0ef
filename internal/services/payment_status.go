package services

import "aruskas/internal/models"

// RecognizedAmount returns the cash already posted to the ledger for a
// transaction in the given payment status: the full total when paid, the
// down payment when partially paid, nothing when unpaid.
func RecognizedAmount(status models.PaymentStatus, downPayment, total int64) int64 {
	switch status {
	case models.PaymentStatusPaid:
		return total
	case models.PaymentStatusDownPayment:
		return downPayment
	default:
		return 0
	}
}

// StatusDelta computes the cash delta implied by moving a transaction from
// oldStatus to newStatus. All six directed status pairs are legal since a
// wrongly entered status can be reverted; reversions produce negative
// deltas. A DP-to-DP "transition" covers edits to the down payment amount.
//
// The delta is exactly the difference between the cash recognized under the
// new state and the cash recognized under the old one.
func StatusDelta(oldStatus, newStatus models.PaymentStatus, oldDownPayment, newDownPayment, total int64) int64 {
	return RecognizedAmount(newStatus, newDownPayment, total) -
		RecognizedAmount(oldStatus, oldDownPayment, total)
}
