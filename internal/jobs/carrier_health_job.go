package jobs

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/shipping"

	"github.com/robfig/cron/v3"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) shipping.Health
}

// CarrierHealthJob probes the carrier API on a schedule and logs state
// changes. Consecutive failures are counted until the next healthy probe.
type CarrierHealthJob struct {
	checker HealthChecker
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger

	mu       sync.Mutex
	last     shipping.Health
	failures int
}

func NewCarrierHealthJob(checker HealthChecker, spec string, logger *slog.Logger) *CarrierHealthJob {
	logger = logger.With("component", "carrier_health_job")
	return &CarrierHealthJob{
		checker: checker,
		spec:    spec,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
		),
		logger: logger,
	}
}

// Run performs one probe.
func (j *CarrierHealthJob) Run(ctx context.Context) shipping.Health {
	h := j.checker.HealthCheck(ctx)

	j.mu.Lock()
	wasHealthy := j.failures == 0
	if h.Healthy {
		j.failures = 0
	} else {
		j.failures++
	}
	failures := j.failures
	j.last = h
	j.mu.Unlock()

	switch {
	case h.Healthy && !wasHealthy:
		j.logger.InfoContext(ctx, "Carrier API recovered", "latency", h.Latency)
	case h.Healthy:
		j.logger.DebugContext(ctx, "Carrier API healthy", "latency", h.Latency)
	case wasHealthy:
		j.logger.ErrorContext(ctx, "Carrier API unhealthy", "error", h.Error, "latency", h.Latency)
	default:
		j.logger.WarnContext(ctx, "Carrier API still unhealthy", "error", h.Error, "consecutive_failures", failures)
	}
	return h
}

// Last returns the most recent probe and the current failure streak.
func (j *CarrierHealthJob) Last() (shipping.Health, int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last, j.failures
}

func (j *CarrierHealthJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Carrier health job started", "schedule", j.spec)
	return nil
}

func (j *CarrierHealthJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Carrier health job stopped")
}

// cronLogger routes robfig/cron's own messages (skipped runs, recovered
// panics) into slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append([]any{"error", err}, keysAndValues...)...)
}
