package jobs

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/shipping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDueOrdersExecutor struct {
	mock.Mock
}

func (m *MockDueOrdersExecutor) Handle(ctx context.Context, cmd commands.ExecuteDueScheduledOrdersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) shipping.Health {
	args := m.Called(ctx)
	return args.Get(0).(shipping.Health)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestScheduledOrderJob_RunUsesBatchSize(t *testing.T) {
	executor := new(MockDueOrdersExecutor)
	executor.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExecuteDueScheduledOrdersCommand) bool {
		return cmd.Limit() == 25
	})).Return(4, nil).Once()

	job := NewScheduledOrderJob(executor, "0 * * * * *", 25, discardLogger())

	assert.Equal(t, 4, job.Run(t.Context()))
	executor.AssertExpectations(t)
}

func TestScheduledOrderJob_RunReturnsPartialCountOnError(t *testing.T) {
	executor := new(MockDueOrdersExecutor)
	executor.On("Handle", mock.Anything, mock.Anything).Return(2, assert.AnError).Once()

	job := NewScheduledOrderJob(executor, "0 * * * * *", 10, discardLogger())

	assert.Equal(t, 2, job.Run(t.Context()))
}

func TestScheduledOrderJob_InvalidBatchSizeSkipsHandler(t *testing.T) {
	executor := new(MockDueOrdersExecutor)
	job := NewScheduledOrderJob(executor, "0 * * * * *", 0, discardLogger())

	assert.Equal(t, 0, job.Run(t.Context()))
	executor.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestScheduledOrderJob_TicksWhileStarted(t *testing.T) {
	executor := new(MockDueOrdersExecutor)
	ran := make(chan struct{}, 10)
	executor.On("Handle", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { ran <- struct{}{} }).
		Return(0, nil)

	job := NewScheduledOrderJob(executor, "* * * * * *", 10, discardLogger())
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestCarrierHealthJob_TracksFailureStreak(t *testing.T) {
	checker := new(MockHealthChecker)
	checker.On("HealthCheck", mock.Anything).Return(shipping.Health{Healthy: false, Error: "boom"}).Twice()
	checker.On("HealthCheck", mock.Anything).Return(shipping.Health{Healthy: true, Latency: time.Millisecond}).Once()

	job := NewCarrierHealthJob(checker, "*/30 * * * * *", discardLogger())

	job.Run(t.Context())
	h, failures := job.Last()
	assert.False(t, h.Healthy)
	assert.Equal(t, 1, failures)

	job.Run(t.Context())
	_, failures = job.Last()
	assert.Equal(t, 2, failures)

	job.Run(t.Context())
	h, failures = job.Last()
	assert.True(t, h.Healthy)
	assert.Equal(t, 0, failures)
	checker.AssertExpectations(t)
}

func TestJobManager_InvalidScheduleFailsStart(t *testing.T) {
	manager := NewJobManager(new(MockDueOrdersExecutor), new(MockHealthChecker), Schedules{
		DueOrders:     "0 * * * * *",
		CarrierHealth: "not a cron expression",
		BatchSize:     10,
	}, discardLogger())

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier health job")
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := NewJobManager(new(MockDueOrdersExecutor), new(MockHealthChecker), Schedules{
		DueOrders:     "0 0 0 1 1 *",
		CarrierHealth: "0 0 0 1 1 *",
		BatchSize:     10,
	}, discardLogger())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
