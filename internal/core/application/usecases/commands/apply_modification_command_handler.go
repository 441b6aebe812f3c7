package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/modification"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// ApplyModificationCommandHandler writes an approved request into its order.
//
// Eligibility is checked again at this point: an order that moved past
// processing, or was canceled, since the request was approved rejects it with
// errs.ErrNotModifiable. The order status itself never changes here.
type ApplyModificationCommandHandler struct {
	uowFactory ModificationUoWFactory
	gate       services.OrderGate
	clock      Clock
}

func NewApplyModificationCommandHandler(
	uowFactory ModificationUoWFactory,
	gate services.OrderGate,
	clock Clock,
) ApplyModificationCommandHandler {
	return ApplyModificationCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		clock:      clock,
	}
}

func (h ApplyModificationCommandHandler) Handle(ctx context.Context, cmd ApplyModificationCommand) error {
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
	if request.Status() != modification.StatusApproved {
		return errs.NewInvalidStateError("modification request", request.Status().String(), "apply")
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, request.OrderID())
	if err != nil {
		return err
	}

	cancellations, err := uow.CancellationRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	if err = h.gate.EnsureModifiable(o, cancellations); err != nil {
		return err
	}

	if err = request.Apply(o, h.clock()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}
	if err = uow.ModificationRepository().Update(ctx, request); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
