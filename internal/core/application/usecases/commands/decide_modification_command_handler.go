package commands

import (
	"context"
)

// DecideModificationCommandHandler records the decision on a request. The
// order itself is not touched.
type DecideModificationCommandHandler struct {
	uowFactory ModificationUoWFactory
	clock      Clock
}

func NewDecideModificationCommandHandler(uowFactory ModificationUoWFactory, clock Clock) DecideModificationCommandHandler {
	return DecideModificationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h DecideModificationCommandHandler) Handle(ctx context.Context, cmd DecideModificationCommand) error {
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

	request, err := uow.ModificationRepository().Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if cmd.Approve() {
		err = request.Approve(h.clock())
	} else {
		err = request.Reject(h.clock())
	}
	if err != nil {
		return err
	}

	if err = uow.ModificationRepository().Update(ctx, request); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
