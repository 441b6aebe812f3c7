package services

import (
	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// OrderGate decides whether an order may still receive change requests.
//
// Business rules:
//   - the order status must be pending, to_pay, paid or processing
//   - no cancellation of the order may have been processed
//
// Both rules apply to modifications and cancellations alike; the gate is
// consulted when a request is created and again when it takes effect.
//
// Example usage:
//
//	gate := services.NewOrderGate()
//	if err := gate.EnsureModifiable(o, cancellations); err != nil {
//	    return err // errs.ErrNotModifiable
//	}
type OrderGate interface {
	EnsureModifiable(o *order.Order, cancellations []*cancellation.Request) error
	EnsureCancellable(o *order.Order, cancellations []*cancellation.Request) error
}

var _ OrderGate = &orderGate{}

type orderGate struct{}

func NewOrderGate() OrderGate {
	return &orderGate{}
}

func (g *orderGate) EnsureModifiable(o *order.Order, cancellations []*cancellation.Request) error {
	return g.ensureOpen(o, cancellations)
}

func (g *orderGate) EnsureCancellable(o *order.Order, cancellations []*cancellation.Request) error {
	return g.ensureOpen(o, cancellations)
}

func (g *orderGate) ensureOpen(o *order.Order, cancellations []*cancellation.Request) error {
	if err := o.Validate(); err != nil {
		return err
	}
	for _, c := range cancellations {
		if c.IsProcessed() {
			return errs.NewNotModifiableErrorWithReason(o.ID().String(), o.Status().String(),
				"a cancellation has already been processed")
		}
	}
	if !o.Status().AllowsChangeRequests() {
		return errs.NewNotModifiableError(o.ID().String(), o.Status().String())
	}
	return nil
}
