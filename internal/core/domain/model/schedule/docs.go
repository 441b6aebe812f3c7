// Package schedule models deferred and recurring order intents.
//
// A ScheduledOrder holds a cart snapshot and delivery preferences independent
// of any existing order. Each execution materializes a new order and advances
// NextExecutionAt by the Recurrence; once the next occurrence would pass the
// end date the schedule completes.
package schedule
