package modification

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Type is the kind of change a request makes.
type Type string

const (
	QuantityChange     Type = "quantity_change"
	AddressChange      Type = "address_change"
	DeliveryTimeChange Type = "delivery_time_change"
	ItemAddition       Type = "item_addition"
	ItemRemoval        Type = "item_removal"
)

// ParseType validates a modification type name.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case QuantityChange, AddressChange, DeliveryTimeChange, ItemAddition, ItemRemoval:
		return t, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("modification type", fmt.Errorf("%q is not supported", s))
	}
}

func (t Type) String() string {
	return string(t)
}

// Status of a modification request.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusApplied  Status = "applied"
)

// ParseStatus validates a persisted status name.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusApproved, StatusRejected, StatusApplied:
		return st, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("modification status", fmt.Errorf("%q is not supported", s))
	}
}

func (s Status) String() string {
	return string(s)
}
