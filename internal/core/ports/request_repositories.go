package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/modification"
	"fulfillment/internal/core/domain/model/schedule"
)

// ModificationRepository persists order modification requests.
type ModificationRepository interface {
	Add(ctx context.Context, request *modification.Request) error
	Update(ctx context.Context, request *modification.Request) error
	Get(ctx context.Context, id kernel.UUID) (*modification.Request, error)
	// ListByOrder returns requests oldest first, or an empty slice.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*modification.Request, error)
}

// CancellationRepository persists order cancellation requests.
type CancellationRepository interface {
	Add(ctx context.Context, request *cancellation.Request) error
	Update(ctx context.Context, request *cancellation.Request) error
	Get(ctx context.Context, id kernel.UUID) (*cancellation.Request, error)
	// ListByOrder returns requests oldest first, or an empty slice.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*cancellation.Request, error)
}

// ScheduledOrderRepository persists scheduled orders.
type ScheduledOrderRepository interface {
	Add(ctx context.Context, scheduled *schedule.ScheduledOrder) error
	Update(ctx context.Context, scheduled *schedule.ScheduledOrder) error
	Get(ctx context.Context, id kernel.UUID) (*schedule.ScheduledOrder, error)
	// GetForUpdate loads and row-locks a schedule for the current transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*schedule.ScheduledOrder, error)
	// ListByBuyer returns the buyer's schedules by next execution, or an empty slice.
	ListByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*schedule.ScheduledOrder, error)
	// ListDue returns at most limit scheduled (not paused) orders whose next
	// execution is at or before now, earliest first.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*schedule.ScheduledOrder, error)
}
