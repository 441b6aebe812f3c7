package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand registers a new order together with its creation
// transition.
//
// Example:
//
//	addr, _ := kernel.NewAddress("1 Main St", "", "Springfield", "12345", "US")
//	item, _ := order.NewLineItem(kernel.NewUUID(), "SKU-1", 2, 1500)
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), buyerID, vendorID, "USD",
//	    addr, []order.LineItem{item}, order.ToPay, "user-42")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	buyerID  kernel.UUID
	vendorID kernel.UUID
	currency string
	address  kernel.Address
	items    []order.LineItem
	initial  order.Status
	actor    order.Actor

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates ids, address, a non-empty item list and an
// initial status of pending or to_pay. Deep validation of the aggregate
// happens in order.NewOrder.
func NewCreateOrderCommand(
	orderID, buyerID, vendorID kernel.UUID,
	currency string,
	address kernel.Address,
	items []order.LineItem,
	initial order.Status,
	actor order.Actor,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(orderID, buyerID, vendorID),
		cmd.setAddress(address),
		cmd.setItems(items),
		cmd.setInitial(initial),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID    { return c.orderID }
func (c CreateOrderCommand) BuyerID() kernel.UUID    { return c.buyerID }
func (c CreateOrderCommand) VendorID() kernel.UUID   { return c.vendorID }
func (c CreateOrderCommand) Currency() string        { return c.currency }
func (c CreateOrderCommand) Address() kernel.Address { return c.address }
func (c CreateOrderCommand) Items() []order.LineItem { return append([]order.LineItem(nil), c.items...) }
func (c CreateOrderCommand) Initial() order.Status   { return c.initial }
func (c CreateOrderCommand) Actor() order.Actor      { return c.actor }

func (c *CreateOrderCommand) setIDs(orderID, buyerID, vendorID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), buyerID.Validate(), vendorID.Validate()); err != nil {
		return err
	}
	c.orderID, c.buyerID, c.vendorID = orderID, buyerID, vendorID
	return nil
}

func (c *CreateOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = append([]order.LineItem(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setInitial(initial order.Status) error {
	if !initial.IsInitial() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("orders cannot be created in %s status", initial))
	}
	c.initial = initial
	return nil
}

func (c *CreateOrderCommand) setActor(actor order.Actor) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = actor
	return nil
}
