package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/schedule"
	"fulfillment/internal/core/domain/model/shipping"
)

// RefundProcessor hands a refund to the payment side. The cancellation id is
// the idempotency key: repeating a call for the same cancellation must not
// refund twice.
type RefundProcessor interface {
	Refund(ctx context.Context, orderID, cancellationID kernel.UUID, amount kernel.Money) error
}

// OrderCreator materializes a scheduled order into a real order with the
// given id. Creating an id that already exists is a success.
type OrderCreator interface {
	CreateOrder(ctx context.Context, orderID kernel.UUID, scheduled *schedule.ScheduledOrder) error
}

// EventPublisher announces committed status changes to the notification side.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, transition *order.Transition) error
}

// CarrierAPI is the upstream shipping provider.
type CarrierAPI interface {
	Rates(ctx context.Context, query shipping.RateQuery) ([]shipping.Quote, error)
	CreateShipment(ctx context.Context, request shipping.ShipmentRequest) (shipping.ShipmentResult, error)
	Track(ctx context.Context, reference string) (shipping.TrackingInfo, error)
}
