// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/shipping"
	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TransitionRepoFactory interface {
		TransitionRepository() ports.TransitionRepository
	}

	ModificationRepoFactory interface {
		ModificationRepository() ports.ModificationRepository
	}

	CancellationRepoFactory interface {
		CancellationRepository() ports.CancellationRepository
	}

	ScheduledOrderRepoFactory interface {
		ScheduledOrderRepository() ports.ScheduledOrderRepository
	}

	// OrderUoW covers order creation and status transitions.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		TransitionRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ModificationUoW covers the modification workflow. Cancellations are
	// read to decide eligibility.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   history, err := uow.CancellationRepository().ListByOrder(ctx, orderID)
	//   // ... gate, build request
	//   err = uow.ModificationRepository().Add(ctx, request)
	//
	//   err = uow.Commit(ctx)
	ModificationUoW interface {
		TxManager
		OrderRepoFactory
		ModificationRepoFactory
		CancellationRepoFactory
	}

	ModificationUoWFactory interface {
		Create() ModificationUoW
	}

	// CancellationUoW covers the cancellation workflow, including the final
	// transition of the order to canceled.
	CancellationUoW interface {
		TxManager
		OrderRepoFactory
		TransitionRepoFactory
		CancellationRepoFactory
	}

	CancellationUoWFactory interface {
		Create() CancellationUoW
	}

	ScheduleUoW interface {
		TxManager
		ScheduledOrderRepoFactory
	}

	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}
)

// RateQuoter prices a parcel. Implementations degrade to synthetic quotes
// instead of failing when the carrier is unavailable.
type RateQuoter interface {
	FetchRates(ctx context.Context, query shipping.RateQuery) (shipping.RateResult, error)
}

// Clock returns the current time. Handlers take one so tests can pin time.
type Clock func() time.Time
