package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DueOrdersExecutor materializes due scheduled orders.
type DueOrdersExecutor interface {
	Handle(ctx context.Context, cmd commands.ExecuteDueScheduledOrdersCommand) (int, error)
}

// ScheduledOrderJob periodically turns due scheduled orders into real
// orders. A run still in progress when the next tick fires is skipped.
type ScheduledOrderJob struct {
	executor  DueOrdersExecutor
	spec      string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewScheduledOrderJob creates the job. spec is a six-field cron expression
// (seconds first); batchSize bounds how many schedules one run claims.
func NewScheduledOrderJob(executor DueOrdersExecutor, spec string, batchSize int, logger *slog.Logger) *ScheduledOrderJob {
	logger = logger.With("component", "scheduled_order_job")
	return &ScheduledOrderJob{
		executor:  executor,
		spec:      spec,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
		),
		logger: logger,
	}
}

// Run executes one pass and returns the number of schedules executed.
func (j *ScheduledOrderJob) Run(ctx context.Context) int {
	cmd, err := commands.NewExecuteDueScheduledOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid scheduled order batch size", "error", err)
		return 0
	}

	executed, err := j.executor.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Scheduled order job failed", "error", err, "executed", executed)
		return executed
	}
	if executed > 0 {
		j.logger.InfoContext(ctx, "Scheduled orders executed", "count", executed)
	}
	return executed
}

func (j *ScheduledOrderJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Scheduled order job started", "schedule", j.spec)
	return nil
}

// Stop waits for a running pass to finish.
func (j *ScheduledOrderJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Scheduled order job stopped")
}
