package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/schedule"
	"fulfillment/internal/core/ports"
)

// ExecuteDueScheduledOrdersCommandHandler materializes every due schedule
// into a real order and advances it.
//
// Each schedule is handled on its own: a failure is logged and the schedule is
// left due, so the next run retries it. The order id is derived from the
// schedule and its execution count, which lets the order creator treat a
// retry after a lost commit as already done.
type ExecuteDueScheduledOrdersCommandHandler struct {
	uowFactory ScheduleUoWFactory
	creator    ports.OrderCreator
	clock      Clock
	logger     *slog.Logger
}

func NewExecuteDueScheduledOrdersCommandHandler(
	uowFactory ScheduleUoWFactory,
	creator ports.OrderCreator,
	clock Clock,
	logger *slog.Logger,
) ExecuteDueScheduledOrdersCommandHandler {
	return ExecuteDueScheduledOrdersCommandHandler{
		uowFactory: uowFactory,
		creator:    creator,
		clock:      clock,
		logger:     logger.With("component", "scheduled_order_executor"),
	}
}

// Handle returns the number of schedules that produced an order.
func (h ExecuteDueScheduledOrdersCommandHandler) Handle(ctx context.Context, cmd ExecuteDueScheduledOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock()
	due, err := h.listDue(ctx, now, cmd.Limit())
	if err != nil {
		return 0, err
	}

	executed := 0
	for _, s := range due {
		orderID := s.NextOrderID()
		if err = h.creator.CreateOrder(ctx, orderID, s); err != nil {
			h.logger.ErrorContext(ctx, "Scheduled order materialization failed",
				"schedule_id", s.ID().String(), "order_id", orderID.String(), "error", err)
			continue
		}

		recorded, recordErr := h.record(ctx, s.ID(), orderID, now)
		if recordErr != nil {
			h.logger.ErrorContext(ctx, "Recording scheduled order execution failed",
				"schedule_id", s.ID().String(), "order_id", orderID.String(), "error", recordErr)
			continue
		}
		if !recorded {
			h.logger.WarnContext(ctx, "Scheduled order changed concurrently, execution not recorded",
				"schedule_id", s.ID().String(), "order_id", orderID.String())
			continue
		}
		executed++
	}

	return executed, nil
}

func (h ExecuteDueScheduledOrdersCommandHandler) listDue(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*schedule.ScheduledOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	due, err := uow.ScheduledOrderRepository().ListDue(ctx, now, limit)
	if err != nil {
		return nil, err
	}
	return due, uow.Commit(ctx)
}

// record advances the schedule if it is still waiting for orderID. It
// reports false when another run or a pause got there first.
func (h ExecuteDueScheduledOrdersCommandHandler) record(
	ctx context.Context,
	scheduleID, orderID kernel.UUID,
	now time.Time,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	current, err := uow.ScheduledOrderRepository().GetForUpdate(ctx, scheduleID)
	if err != nil {
		return false, err
	}
	if !current.IsDue(now) || !current.NextOrderID().IsEqual(orderID) {
		return false, nil
	}

	if err = current.RecordExecution(orderID, now); err != nil {
		return false, err
	}
	if err = uow.ScheduledOrderRepository().Update(ctx, current); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
