package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError("line item must be created via NewLineItem")

// LineItem is one product line of an order. Quantity may drop to zero through
// a quantity change; such a line stays on the order and contributes nothing
// to the total.
type LineItem struct {
	id        kernel.UUID
	sku       string
	quantity  int
	unitPrice int64
	guard     guard.ConstructorGuard
}

// LineQuantity is an absolute quantity for one line, used by quantity
// changes instead of relative deltas.
type LineQuantity struct {
	LineID   kernel.UUID
	Quantity int
}

// NewLineItem validates id, sku, quantity >= 0 and unitPrice >= 0 (minor units).
func NewLineItem(id kernel.UUID, sku string, quantity int, unitPrice int64) (LineItem, error) {
	item := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setSKU(sku),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (l LineItem) Validate() error {
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}

func (l LineItem) ID() kernel.UUID  { return l.id }
func (l LineItem) SKU() string      { return l.sku }
func (l LineItem) Quantity() int    { return l.quantity }
func (l LineItem) UnitPrice() int64 { return l.unitPrice }
func (l LineItem) Subtotal() int64  { return int64(l.quantity) * l.unitPrice }

// WithQuantity returns a copy with an absolute quantity.
func (l LineItem) WithQuantity(quantity int) (LineItem, error) {
	if err := l.setQuantity(quantity); err != nil {
		return LineItem{}, err
	}
	return l, nil
}

// IsEqual compares every field.
func (l LineItem) IsEqual(other LineItem) bool {
	return l.id.IsEqual(other.id) &&
		l.sku == other.sku &&
		l.quantity == other.quantity &&
		l.unitPrice == other.unitPrice
}

func (l *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *LineItem) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	l.sku = sku
	return nil
}

func (l *LineItem) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *LineItem) setUnitPrice(unitPrice int64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%d is negative", unitPrice))
	}
	l.unitPrice = unitPrice
	return nil
}
