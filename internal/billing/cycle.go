// Package billing computes recurring billing dates. It is pure: no I/O,
// no clock access, no side effects.
package billing

import (
	"time"

	"aruskas/internal/models"
)

// NextBillingDate returns the billing date one period after current.
// MONTHLY advances one calendar month, QUARTERLY three, ANNUALLY one year.
// Any other frequency, including the empty string, falls back to MONTHLY.
//
// Month arithmetic uses time.AddDate rollover semantics: Jan 31 + 1 month
// normalizes past the end of February rather than clamping to it.
func NextBillingDate(current time.Time, frequency models.RecurringFrequency) time.Time {
	switch frequency {
	case models.FrequencyQuarterly:
		return current.AddDate(0, 3, 0)
	case models.FrequencyAnnually:
		return current.AddDate(1, 0, 0)
	case models.FrequencyMonthly:
		return current.AddDate(0, 1, 0)
	default:
		// Unrecognized frequencies bill monthly rather than erroring.
		return current.AddDate(0, 1, 0)
	}
}
