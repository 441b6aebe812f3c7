package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CancellationProcessedReason is the transition reason recorded when a
// processed cancellation cancels its order.
const CancellationProcessedReason = "cancellation_processed"

// ProcessCancellationCommandHandler executes an approved cancellation.
//
// Steps, all inside one transaction:
//  1. re-check the order with the OrderGate
//  2. request the refund unless the amount is zero
//  3. mark the cancellation processed
//  4. move the order to canceled as the automated actor
//
// The refund is keyed by the cancellation id, so retrying after a failed
// commit does not refund twice.
type ProcessCancellationCommandHandler struct {
	uowFactory CancellationUoWFactory
	gate       services.OrderGate
	refunds    ports.RefundProcessor
	clock      Clock
}

func NewProcessCancellationCommandHandler(
	uowFactory CancellationUoWFactory,
	gate services.OrderGate,
	refunds ports.RefundProcessor,
	clock Clock,
) ProcessCancellationCommandHandler {
	return ProcessCancellationCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		refunds:    refunds,
		clock:      clock,
	}
}

func (h ProcessCancellationCommandHandler) Handle(ctx context.Context, cmd ProcessCancellationCommand) error {
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
	if request.Status() != cancellation.StatusApproved {
		return errs.NewInvalidStateError("cancellation request", request.Status().String(), "process")
	}

	o, err := uow.OrderRepository().GetForUpdate(ctx, request.OrderID())
	if err != nil {
		return err
	}

	history, err := uow.CancellationRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return err
	}
	if err = h.gate.EnsureCancellable(o, history); err != nil {
		return err
	}

	if request.Refund().Amount() > 0 {
		if err = h.refunds.Refund(ctx, o.ID(), request.ID(), request.Refund()); err != nil {
			return fmt.Errorf("refund for cancellation %s: %w", request.ID(), err)
		}
	}

	now := h.clock()
	if err = request.MarkProcessed(now); err != nil {
		return err
	}
	if err = uow.CancellationRepository().Update(ctx, request); err != nil {
		return err
	}

	transition, err := o.ChangeStatus(order.Canceled, order.AutomatedActor, order.TransitionMetadata{
		Reason:     CancellationProcessedReason,
		Attributes: map[string]string{"cancellation_id": request.ID().String()},
	}, now)
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
