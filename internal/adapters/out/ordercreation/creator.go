// Package ordercreation materializes scheduled orders by running the order
// creation command in-process.
package ordercreation

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/schedule"
	"fulfillment/internal/pkg/errs"
)

type createOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

// Creator implements ports.OrderCreator. Orders start in to_pay and are
// attributed to the automated actor. Line ids are derived from the order id,
// so a retried execution builds an identical order.
type Creator struct {
	handler createOrderHandler
}

func NewCreator(handler createOrderHandler) *Creator {
	return &Creator{handler: handler}
}

func (c *Creator) CreateOrder(ctx context.Context, orderID kernel.UUID, scheduled *schedule.ScheduledOrder) error {
	if err := scheduled.Validate(); err != nil {
		return err
	}

	cart := scheduled.Cart()
	items := make([]order.LineItem, 0, len(cart.Lines()))
	for i, line := range cart.Lines() {
		item, err := order.NewLineItem(kernel.DeriveUUID(orderID, fmt.Sprintf("line-%d", i)),
			line.SKU, line.Quantity, line.UnitPrice)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		scheduled.BuyerID(),
		scheduled.VendorID(),
		cart.Currency(),
		scheduled.Preferences().Address(),
		items,
		order.ToPay,
		order.AutomatedActor,
	)
	if err != nil {
		return err
	}

	err = c.handler.Handle(ctx, cmd)
	if errors.Is(err, errs.ErrAlreadyExists) {
		return nil
	}
	return err
}
