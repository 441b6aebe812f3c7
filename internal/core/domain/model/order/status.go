package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Forward edges (every non-terminal status may also move to Canceled):
//
//	Pending, ToPay  -> Paid
//	Paid            -> Processing
//	Processing      -> ReadyToShip | Packaging
//	Packaging       -> ReadyToShip | Shipped
//	ReadyToShip     -> Shipped
//	Shipped         -> InTransit | Delivered
//	InTransit       -> OutForDelivery | Delivered
//	OutForDelivery  -> Delivered
//	Delivered       -> Completed
//
// Completed and Canceled are terminal. There are no back-edges.
type Status int

const (
	Unknown Status = iota
	Pending
	ToPay
	Paid
	Processing
	Packaging
	ReadyToShip
	Shipped
	InTransit
	OutForDelivery
	Delivered
	Completed
	Canceled
)

var statusNames = map[Status]string{
	Pending:        "pending",
	ToPay:          "to_pay",
	Paid:           "paid",
	Processing:     "processing",
	Packaging:      "packaging",
	ReadyToShip:    "ready_to_ship",
	Shipped:        "shipped",
	InTransit:      "in_transit",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Completed:      "completed",
	Canceled:       "canceled",
}

// forwardEdges lists the successors of each status, excluding Canceled which
// is added for every non-terminal status by Successors.
var forwardEdges = map[Status][]Status{
	Pending:        {Paid},
	ToPay:          {Paid},
	Paid:           {Processing},
	Processing:     {ReadyToShip, Packaging},
	Packaging:      {ReadyToShip, Shipped},
	ReadyToShip:    {Shipped},
	Shipped:        {InTransit, Delivered},
	InTransit:      {OutForDelivery, Delivered},
	OutForDelivery: {Delivered},
	Delivered:      {Completed},
}

// ParseStatus converts the persisted/wire name ("ready_to_ship") to a Status.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		Pending, ToPay, Paid, Processing, Packaging, ReadyToShip,
		Shipped, InTransit, OutForDelivery, Delivered, Completed, Canceled,
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no transition can leave s.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Canceled
}

// AllowsChangeRequests reports whether an order in s may receive new
// modification or cancellation requests.
func (s Status) AllowsChangeRequests() bool {
	switch s {
	case Pending, ToPay, Paid, Processing:
		return true
	default:
		return false
	}
}

// Successors returns the direct successors of s.
func (s Status) Successors() []Status {
	if s.Validate() != nil || s.IsTerminal() {
		return nil
	}
	next := make([]Status, 0, len(forwardEdges[s])+1)
	next = append(next, forwardEdges[s]...)
	return append(next, Canceled)
}

// CanTransitionTo reports whether to is a direct successor of s.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range s.Successors() {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError when to is not a
// direct successor of s.
func (s Status) ValidateTransition(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(to) {
		return errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return nil
}

// IsInitial reports whether an order may be created in s.
func (s Status) IsInitial() bool {
	return s == Pending || s == ToPay
}
