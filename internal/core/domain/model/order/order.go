package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder constructor")
)

// Order is the aggregate root of the fulfillment lifecycle.
//
// Order follows these invariants:
//   - status changes only through ChangeStatus, along the Status graph
//   - the total is always the sum of line subtotals
//   - line items, address and delivery time change only while the status
//     allows change requests
//   - version is bumped by the repository on every successful update
type Order struct {
	id       kernel.UUID
	buyerID  kernel.UUID
	vendorID kernel.UUID

	status   Status
	currency string
	address  kernel.Address
	items    []LineItem

	deliveryTime *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID           kernel.UUID
	BuyerID      kernel.UUID
	VendorID     kernel.UUID
	Status       Status
	Currency     string
	Address      kernel.Address
	Items        []LineItem
	DeliveryTime *time.Time
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOrder creates an order in an initial status (Pending or ToPay). The
// returned transition is the creation record and must be stored with it.
//
// Example:
//
//	addr, _ := kernel.NewAddress("1 Main St", "", "Springfield", "12345", "US")
//	item, _ := order.NewLineItem(kernel.NewUUID(), "SKU-1", 2, 1500)
//	o, created, err := order.NewOrder(id, buyer, vendor, "USD", addr,
//	    []order.LineItem{item}, order.Pending, "user-1", time.Now())
func NewOrder(
	id, buyerID, vendorID kernel.UUID,
	currency string,
	address kernel.Address,
	items []LineItem,
	initial Status,
	actor Actor,
	now time.Time,
) (*Order, *Transition, error) {
	o := &Order{
		status:        initial,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	var initialErr error
	if !initial.IsInitial() {
		initialErr = errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("orders cannot be created in %s status", initial))
	}

	if err := errors.Join(
		o.setIDs(id, buyerID, vendorID),
		o.setCurrency(currency),
		o.setAddress(address),
		o.setItems(items, true),
		initialErr,
	); err != nil {
		return nil, nil, err
	}

	created := newTransition(o.id, nil, o.status, actor, TransitionMetadata{Reason: "order_created"}, now)
	return o, created, nil
}

// RestoreOrder rebuilds an order loaded from storage. Quantities of zero are
// accepted since quantity changes may have zeroed a line.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		status:        s.Status,
		deliveryTime:  s.DeliveryTime,
		version:       s.Version,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setIDs(s.ID, s.BuyerID, s.VendorID),
		o.setCurrency(s.Currency),
		o.setAddress(s.Address),
		o.setItems(s.Items, false),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) BuyerID() kernel.UUID    { return o.buyerID }
func (o *Order) VendorID() kernel.UUID   { return o.vendorID }
func (o *Order) Status() Status          { return o.status }
func (o *Order) Currency() string        { return o.currency }
func (o *Order) Address() kernel.Address { return o.address }
func (o *Order) Version() int64          { return o.version }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }

// DeliveryTime returns the requested delivery time, or nil.
func (o *Order) DeliveryTime() *time.Time {
	if o.deliveryTime == nil {
		return nil
	}
	t := *o.deliveryTime
	return &t
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Item looks a line up by id.
func (o *Order) Item(lineID kernel.UUID) (LineItem, bool) {
	for _, item := range o.items {
		if item.ID().IsEqual(lineID) {
			return item, true
		}
	}
	return LineItem{}, false
}

// TotalAmount is the sum of line subtotals in minor units.
func (o *Order) TotalAmount() int64 {
	var total int64
	for _, item := range o.items {
		total += item.Subtotal()
	}
	return total
}

// Total returns the order total as Money.
func (o *Order) Total() kernel.Money {
	m, _ := kernel.NewMoney(o.TotalAmount(), o.currency)
	return m
}

// IncrementVersion is called by the repository after a successful
// compare-and-set update.
func (o *Order) IncrementVersion() {
	o.version++
}

// ChangeStatus moves the order along one edge of the status graph and returns
// the transition record to append to its history.
func (o *Order) ChangeStatus(to Status, actor Actor, metadata TransitionMetadata, now time.Time) (*Transition, error) {
	if actor == "" {
		return nil, errs.NewValueIsRequiredError("actor")
	}
	if err := o.status.ValidateTransition(to); err != nil {
		return nil, err
	}

	from := o.status
	o.status = to
	o.updatedAt = now
	return newTransition(o.id, &from, to, actor, metadata, now), nil
}

// SetLineQuantities sets absolute quantities for existing lines. Lines not
// mentioned keep their quantity. At least one line must remain non-zero.
func (o *Order) SetLineQuantities(quantities []LineQuantity, now time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if len(quantities) == 0 {
		return errs.NewValueIsRequiredError("quantities")
	}

	items := o.Items()
	for _, q := range quantities {
		idx := o.indexOf(q.LineID)
		if idx < 0 {
			return errs.NewObjectNotFoundError("lineId", q.LineID.String())
		}
		updated, err := items[idx].WithQuantity(q.Quantity)
		if err != nil {
			return err
		}
		items[idx] = updated
	}
	if !hasPositiveQuantity(items) {
		return errs.NewValueIsInvalidErrorWithCause("quantities", errors.New("order must keep at least one item"))
	}

	o.items = items
	o.updatedAt = now
	return nil
}

// ChangeAddress replaces the delivery address.
func (o *Order) ChangeAddress(address kernel.Address, now time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := o.setAddress(address); err != nil {
		return err
	}
	o.updatedAt = now
	return nil
}

// ChangeDeliveryTime sets the requested delivery time, which must be in the
// future relative to now.
func (o *Order) ChangeDeliveryTime(at time.Time, now time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if !at.After(now) {
		return errs.NewValueIsInvalidErrorWithCause("delivery time", fmt.Errorf("%s is not in the future", at.Format(time.RFC3339)))
	}
	t := at.UTC()
	o.deliveryTime = &t
	o.updatedAt = now
	return nil
}

// AddLineItem appends a new line with a positive quantity.
func (o *Order) AddLineItem(item LineItem, now time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if item.Quantity() <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", item.Quantity()))
	}
	if o.indexOf(item.ID()) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("lineId", fmt.Errorf("line %s already exists", item.ID()))
	}
	o.items = append(o.Items(), item)
	o.updatedAt = now
	return nil
}

// RemoveLineItem drops a line. The last non-empty line cannot be removed.
func (o *Order) RemoveLineItem(lineID kernel.UUID, now time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	idx := o.indexOf(lineID)
	if idx < 0 {
		return errs.NewObjectNotFoundError("lineId", lineID.String())
	}

	items := make([]LineItem, 0, len(o.items)-1)
	items = append(items, o.items[:idx]...)
	items = append(items, o.items[idx+1:]...)
	if !hasPositiveQuantity(items) {
		return errs.NewValueIsInvalidErrorWithCause("lineId", errors.New("order must keep at least one item"))
	}

	o.items = items
	o.updatedAt = now
	return nil
}

func (o *Order) ensureMutable() error {
	if !o.status.AllowsChangeRequests() {
		return errs.NewNotModifiableError(o.id.String(), o.status.String())
	}
	return nil
}

func (o *Order) indexOf(lineID kernel.UUID) int {
	for i, item := range o.items {
		if item.ID().IsEqual(lineID) {
			return i
		}
	}
	return -1
}

func hasPositiveQuantity(items []LineItem) bool {
	for _, item := range items {
		if item.Quantity() > 0 {
			return true
		}
	}
	return false
}

func (o *Order) setIDs(id, buyerID, vendorID kernel.UUID) error {
	if err := errors.Join(id.Validate(), buyerID.Validate(), vendorID.Validate()); err != nil {
		return err
	}
	o.id, o.buyerID, o.vendorID = id, buyerID, vendorID
	return nil
}

func (o *Order) setCurrency(currency string) error {
	m, err := kernel.NewMoney(0, currency)
	if err != nil {
		return err
	}
	o.currency = m.Currency()
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []LineItem, requirePositive bool) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if requirePositive && item.Quantity() <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("line %s: %d is not greater than 0", item.SKU(), item.Quantity()))
		}
		if _, dup := seen[item.ID()]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("duplicate line %s", item.ID()))
		}
		seen[item.ID()] = struct{}{}
	}
	o.items = append([]LineItem(nil), items...)
	return nil
}
