package commands

import (
	"context"
)

type DecideCancellationCommandHandler struct {
	uowFactory CancellationUoWFactory
	clock      Clock
}

func NewDecideCancellationCommandHandler(uowFactory CancellationUoWFactory, clock Clock) DecideCancellationCommandHandler {
	return DecideCancellationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h DecideCancellationCommandHandler) Handle(ctx context.Context, cmd DecideCancellationCommand) error {
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

	request, err := uow.CancellationRepository().Get(ctx, cmd.CancellationID())
	if err != nil {
		return err
	}
	if err = request.Decide(cmd.Approve(), h.clock()); err != nil {
		return err
	}
	if err = uow.CancellationRepository().Update(ctx, request); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
