package commands

import (
	"errors"
	"maps"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAutoTransitionOrderCommandIsNotConstructed = errors.New(
		"AutoTransitionOrderCommand must be created via NewAutoTransitionOrderCommand constructor",
	)
)

// AutoTransitionOrderCommand reports a system event for an order.
type AutoTransitionOrderCommand struct {
	orderID    kernel.UUID
	event      order.TriggerEvent
	attributes map[string]string

	guard guard.ConstructorGuard
}

func NewAutoTransitionOrderCommand(
	orderID kernel.UUID,
	event order.TriggerEvent,
	attributes map[string]string,
) (AutoTransitionOrderCommand, error) {
	_, eventErr := event.Target()
	if err := errors.Join(orderID.Validate(), eventErr); err != nil {
		return AutoTransitionOrderCommand{}, err
	}

	return AutoTransitionOrderCommand{
		orderID:    orderID,
		event:      event,
		attributes: maps.Clone(attributes),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AutoTransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrAutoTransitionOrderCommandIsNotConstructed)
}

func (c AutoTransitionOrderCommand) OrderID() kernel.UUID          { return c.orderID }
func (c AutoTransitionOrderCommand) Event() order.TriggerEvent     { return c.event }
func (c AutoTransitionOrderCommand) Attributes() map[string]string { return maps.Clone(c.attributes) }
