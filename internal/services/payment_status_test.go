package services

import (
	"testing"

	"aruskas/internal/models"
)

func TestRecognizedAmount(t *testing.T) {
	if got := RecognizedAmount(models.PaymentStatusUnpaid, 3000000, 10000000); got != 0 {
		t.Errorf("unpaid: expected 0, got %d", got)
	}
	if got := RecognizedAmount(models.PaymentStatusDownPayment, 3000000, 10000000); got != 3000000 {
		t.Errorf("down payment: expected 3000000, got %d", got)
	}
	if got := RecognizedAmount(models.PaymentStatusPaid, 3000000, 10000000); got != 10000000 {
		t.Errorf("paid: expected 10000000, got %d", got)
	}
}

func TestStatusDelta(t *testing.T) {
	const total = 10000000

	tests := []struct {
		name           string
		oldStatus      models.PaymentStatus
		newStatus      models.PaymentStatus
		oldDownPayment int64
		newDownPayment int64
		want           int64
	}{
		{"unpaid_to_dp", models.PaymentStatusUnpaid, models.PaymentStatusDownPayment, 0, 3000000, 3000000},
		{"unpaid_to_paid", models.PaymentStatusUnpaid, models.PaymentStatusPaid, 0, 0, total},
		{"dp_to_paid", models.PaymentStatusDownPayment, models.PaymentStatusPaid, 3000000, 3000000, 7000000},
		{"dp_to_unpaid", models.PaymentStatusDownPayment, models.PaymentStatusUnpaid, 3000000, 3000000, -3000000},
		{"paid_to_unpaid", models.PaymentStatusPaid, models.PaymentStatusUnpaid, 0, 0, -total},
		{"paid_to_dp", models.PaymentStatusPaid, models.PaymentStatusDownPayment, 3000000, 3000000, -7000000},
		{"dp_amount_edited", models.PaymentStatusDownPayment, models.PaymentStatusDownPayment, 3000000, 4500000, 1500000},
		{"same_status_no_change", models.PaymentStatusPaid, models.PaymentStatusPaid, 0, 0, 0},
		{"unpaid_to_unpaid", models.PaymentStatusUnpaid, models.PaymentStatusUnpaid, 0, 5000000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatusDelta(tt.oldStatus, tt.newStatus, tt.oldDownPayment, tt.newDownPayment, total)
			if got != tt.want {
				t.Errorf("expected delta %d, got %d", tt.want, got)
			}
		})
	}
}
