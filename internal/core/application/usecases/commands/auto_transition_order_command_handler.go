package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// AutoTransitionOrderCommandHandler applies the transition a trigger event
// implies, if the order's current status has that edge.
//
// Handle returns false without writing when the event does not apply, which
// makes redelivered events harmless: once the order has moved, the same event
// no longer matches.
type AutoTransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewAutoTransitionOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) AutoTransitionOrderCommandHandler {
	return AutoTransitionOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h AutoTransitionOrderCommandHandler) Handle(ctx context.Context, cmd AutoTransitionOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if !cmd.Event().AppliesTo(o.Status()) {
		return false, nil
	}

	target, err := cmd.Event().Target()
	if err != nil {
		return false, err
	}

	metadata := order.TransitionMetadata{
		Trigger:    cmd.Event(),
		Attributes: cmd.Attributes(),
	}
	transition, err := o.ChangeStatus(target, order.AutomatedActor, metadata, h.clock())
	if err != nil {
		return false, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return false, err
	}
	if err = uow.TransitionRepository().Add(ctx, transition); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
