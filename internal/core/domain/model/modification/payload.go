package modification

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Payload is one variant of the modification data union.
type Payload interface {
	Type() Type
	Validate() error
	ApplyTo(o *order.Order, now time.Time) error
}

var (
	_ Payload = QuantityPayload{}
	_ Payload = AddressPayload{}
	_ Payload = DeliveryTimePayload{}
	_ Payload = ItemAdditionPayload{}
	_ Payload = ItemRemovalPayload{}
)

// QuantityPayload holds absolute quantities for the listed lines.
type QuantityPayload struct {
	Lines []order.LineQuantity
}

func (QuantityPayload) Type() Type { return QuantityChange }

func (p QuantityPayload) Validate() error {
	if len(p.Lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	seen := make(map[kernel.UUID]struct{}, len(p.Lines))
	for _, l := range p.Lines {
		if err := l.LineID.Validate(); err != nil {
			return err
		}
		if l.Quantity < 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("line %s: %d is negative", l.LineID, l.Quantity))
		}
		if _, dup := seen[l.LineID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("line %s listed twice", l.LineID))
		}
		seen[l.LineID] = struct{}{}
	}
	return nil
}

func (p QuantityPayload) ApplyTo(o *order.Order, now time.Time) error {
	return o.SetLineQuantities(p.Lines, now)
}

// AddressPayload replaces the delivery address.
type AddressPayload struct {
	Address kernel.Address
}

func (AddressPayload) Type() Type { return AddressChange }

func (p AddressPayload) Validate() error {
	return p.Address.Validate()
}

func (p AddressPayload) ApplyTo(o *order.Order, now time.Time) error {
	return o.ChangeAddress(p.Address, now)
}

// DeliveryTimePayload sets the requested delivery time.
type DeliveryTimePayload struct {
	DeliveryTime time.Time
}

func (DeliveryTimePayload) Type() Type { return DeliveryTimeChange }

func (p DeliveryTimePayload) Validate() error {
	if p.DeliveryTime.IsZero() {
		return errs.NewValueIsRequiredError("delivery time")
	}
	return nil
}

func (p DeliveryTimePayload) ApplyTo(o *order.Order, now time.Time) error {
	return o.ChangeDeliveryTime(p.DeliveryTime, now)
}

// ItemAdditionPayload adds one line.
type ItemAdditionPayload struct {
	Item order.LineItem
}

func (ItemAdditionPayload) Type() Type { return ItemAddition }

func (p ItemAdditionPayload) Validate() error {
	if err := p.Item.Validate(); err != nil {
		return err
	}
	if p.Item.Quantity() <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", p.Item.Quantity()))
	}
	return nil
}

func (p ItemAdditionPayload) ApplyTo(o *order.Order, now time.Time) error {
	return o.AddLineItem(p.Item, now)
}

// ItemRemovalPayload removes one line.
type ItemRemovalPayload struct {
	LineID kernel.UUID
}

func (ItemRemovalPayload) Type() Type { return ItemRemoval }

func (p ItemRemovalPayload) Validate() error {
	return p.LineID.Validate()
}

func (p ItemRemovalPayload) ApplyTo(o *order.Order, now time.Time) error {
	return o.RemoveLineItem(p.LineID, now)
}

// Capture reads the current values of the fields proposed would change. For
// an item addition the original is an empty addition; for a removal it is the
// removed line id. Proposals that could never apply, such as removing an
// unknown line or adding a line id the order already has, are rejected.
func Capture(o *order.Order, proposed Payload) (Payload, error) {
	switch p := proposed.(type) {
	case QuantityPayload:
		lines := make([]order.LineQuantity, 0, len(p.Lines))
		for _, l := range p.Lines {
			item, ok := o.Item(l.LineID)
			if !ok {
				return nil, unknownLine(l.LineID)
			}
			lines = append(lines, order.LineQuantity{LineID: l.LineID, Quantity: item.Quantity()})
		}
		return QuantityPayload{Lines: lines}, nil
	case AddressPayload:
		return AddressPayload{Address: o.Address()}, nil
	case DeliveryTimePayload:
		if dt := o.DeliveryTime(); dt != nil {
			return DeliveryTimePayload{DeliveryTime: *dt}, nil
		}
		return DeliveryTimePayload{}, nil
	case ItemAdditionPayload:
		if _, ok := o.Item(p.Item.ID()); ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("item",
				fmt.Errorf("line %s is already on the order", p.Item.ID()))
		}
		return ItemAdditionPayload{}, nil
	case ItemRemovalPayload:
		if _, ok := o.Item(p.LineID); !ok {
			return nil, unknownLine(p.LineID)
		}
		return ItemRemovalPayload{LineID: p.LineID}, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", errors.New("unsupported payload"))
	}
}

func unknownLine(id kernel.UUID) error {
	return errs.NewValueIsInvalidErrorWithCause("lineId", fmt.Errorf("line %s is not on the order", id))
}
