// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-resolution
// expressions. Overlapping runs of the same job are skipped.
//
// # Available Jobs
//
// 1. ScheduledOrderJob - claims due scheduled orders in batches and creates an order for each
// 2. CarrierHealthJob - probes the carrier API and logs when it goes down or recovers
//
// # Usage
//
//	jobManager := jobs.NewJobManager(executeDueHandler, aggregator, jobs.Schedules{
//		DueOrders:     "0 * * * * *",
//		CarrierHealth: "*/30 * * * * *",
//		BatchSize:     100,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Handler errors are logged and the next tick retries
// - Failed job starts will stop any already running jobs
// - StopAll waits for running passes to finish
package jobs
