package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// TransitionOrderCommand moves an order to a direct successor status on behalf
// of a user.
type TransitionOrderCommand struct {
	orderID  kernel.UUID
	to       order.Status
	actor    order.Actor
	metadata order.TransitionMetadata

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(
	orderID kernel.UUID,
	to order.Status,
	actor order.Actor,
	metadata order.TransitionMetadata,
) (TransitionOrderCommand, error) {
	var actorErr error
	if actor == "" {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := errors.Join(orderID.Validate(), to.Validate(), actorErr); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID:  orderID,
		to:       to,
		actor:    actor,
		metadata: metadata,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID               { return c.orderID }
func (c TransitionOrderCommand) To() order.Status                   { return c.to }
func (c TransitionOrderCommand) Actor() order.Actor                 { return c.actor }
func (c TransitionOrderCommand) Metadata() order.TransitionMetadata { return c.metadata }
