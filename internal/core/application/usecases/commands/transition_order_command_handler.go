package commands

import (
	"context"
)

// TransitionOrderCommandHandler applies a manual status change. The order row
// is locked for the transaction and written with a version check, so a
// concurrent writer yields errs.ErrVersionConflict instead of a lost update.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	transition, err := o.ChangeStatus(cmd.To(), cmd.Actor(), cmd.Metadata(), h.clock())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err = uow.TransitionRepository().Add(ctx, transition); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
