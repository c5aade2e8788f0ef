package scheduler

import (
	"time"

	"aruskas/internal/services"
)

// RecurringBillingJob drives the recurring payment processor on a schedule.
type RecurringBillingJob struct {
	recurring services.RecurringServicer
}

// NewRecurringBillingJob creates the scheduled recurring billing job.
func NewRecurringBillingJob(recurring services.RecurringServicer) *RecurringBillingJob {
	return &RecurringBillingJob{recurring: recurring}
}

// Name implements Job.
func (j *RecurringBillingJob) Name() string { return "recurring-billing" }

// Run processes all templates due as of now. Per-item failures are carried
// in the result rows and already logged by the processor; only an
// infrastructure failure surfaces here.
func (j *RecurringBillingJob) Run() error {
	_, err := j.recurring.Run(time.Now(), nil, "")
	return err
}
