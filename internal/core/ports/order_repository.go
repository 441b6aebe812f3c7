// Package ports defines the contracts between the application core and its
// adapters: repositories, the unit of work and outbound collaborators.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. An existing id yields errs.ErrAlreadyExists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order if its stored version still equals
	// aggregate.Version(), then increments the version on both sides.
	// A stale version yields errs.ErrVersionConflict and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and locks its row until the surrounding
	// transaction ends, serializing competing writers of the same order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// TransitionRepository stores the append-only status history.
type TransitionRepository interface {
	Add(ctx context.Context, transition *order.Transition) error

	// ListByOrder returns transitions oldest first; ties on creation time are
	// broken by insertion order. An unknown order yields an empty slice.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Transition, error)
}
