package commands

import (
	"context"
)

// ChangeScheduledOrderStateCommandHandler pauses, resumes or cancels a
// schedule and persists the result.
type ChangeScheduledOrderStateCommandHandler struct {
	uowFactory ScheduleUoWFactory
	clock      Clock
}

func NewChangeScheduledOrderStateCommandHandler(
	uowFactory ScheduleUoWFactory,
	clock Clock,
) ChangeScheduledOrderStateCommandHandler {
	return ChangeScheduledOrderStateCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h ChangeScheduledOrderStateCommandHandler) Handle(ctx context.Context, cmd ChangeScheduledOrderStateCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	scheduled, err := uow.ScheduledOrderRepository().GetForUpdate(ctx, cmd.ScheduleID())
	if err != nil {
		return err
	}

	now := h.clock()
	switch cmd.Action() {
	case PauseSchedule:
		err = scheduled.Pause(now)
	case ResumeSchedule:
		err = scheduled.Resume(now)
	case CancelSchedule:
		err = scheduled.Cancel(now)
	}
	if err != nil {
		return err
	}

	if err = uow.ScheduledOrderRepository().Update(ctx, scheduled); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
