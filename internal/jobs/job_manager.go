package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds the cron expressions of the background jobs.
type Schedules struct {
	DueOrders     string
	CarrierHealth string
	BatchSize     int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	scheduledOrderJob *ScheduledOrderJob
	carrierHealthJob  *CarrierHealthJob
}

func NewJobManager(
	executor DueOrdersExecutor,
	checker HealthChecker,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		scheduledOrderJob: NewScheduledOrderJob(executor, schedules.DueOrders, schedules.BatchSize, logger),
		carrierHealthJob:  NewCarrierHealthJob(checker, schedules.CarrierHealth, logger),
	}
}

// CarrierHealth exposes the carrier probe so its latest result can be served
// by the health endpoint.
func (jm *JobManager) CarrierHealth() *CarrierHealthJob {
	return jm.carrierHealthJob
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.scheduledOrderJob.Start(); err != nil {
		return fmt.Errorf("failed to start scheduled order job: %w", err)
	}

	if err := jm.carrierHealthJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.scheduledOrderJob.Stop()
		return fmt.Errorf("failed to start carrier health job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.carrierHealthJob.Stop()
	jm.scheduledOrderJob.Stop()
}
