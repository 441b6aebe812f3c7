package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type publisher interface {
	Publish(ctx context.Context, topic, key string, value []byte, headers map[string]string) error
}

// OrderStatusChangedEvent is the wire form of a committed transition.
type OrderStatusChangedEvent struct {
	EventID    string                   `json:"event_id"`
	OrderID    string                   `json:"order_id"`
	FromStatus *string                  `json:"from_status"`
	ToStatus   string                   `json:"to_status"`
	Actor      string                   `json:"actor"`
	Automated  bool                     `json:"automated"`
	Metadata   order.TransitionMetadata `json:"metadata"`
	OccurredAt time.Time                `json:"occurred_at"`
}

// StatusChangePublisher implements ports.EventPublisher. Messages are keyed
// by order id so one order's events stay in a single partition.
type StatusChangePublisher struct {
	producer publisher
	topic    string
}

func NewStatusChangePublisher(producer publisher, topic string) *StatusChangePublisher {
	return &StatusChangePublisher{producer: producer, topic: topic}
}

func (p *StatusChangePublisher) PublishStatusChanged(ctx context.Context, transition *order.Transition) error {
	event := OrderStatusChangedEvent{
		EventID:    transition.ID().String(),
		OrderID:    transition.OrderID().String(),
		ToStatus:   transition.To().String(),
		Actor:      transition.Actor().String(),
		Automated:  transition.Automated(),
		Metadata:   transition.Metadata(),
		OccurredAt: transition.CreatedAt().UTC(),
	}
	if from := transition.From(); from != nil {
		name := from.String()
		event.FromStatus = &name
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, p.topic, event.OrderID, payload, map[string]string{
		"event_type": "order_status_changed",
	})
}

// RefundRequestedEvent asks the payment side to refund a cancelled order.
type RefundRequestedEvent struct {
	CancellationID string    `json:"cancellation_id"`
	OrderID        string    `json:"order_id"`
	Amount         int64     `json:"amount"`
	Currency       string    `json:"currency"`
	RequestedAt    time.Time `json:"requested_at"`
}

// RefundRequester implements ports.RefundProcessor by emitting a refund
// request. The cancellation id is both the message key and the
// idempotency-key header, so consumers can drop redeliveries.
type RefundRequester struct {
	producer publisher
	topic    string
	now      func() time.Time
}

func NewRefundRequester(producer publisher, topic string, now func() time.Time) *RefundRequester {
	if now == nil {
		now = time.Now
	}
	return &RefundRequester{producer: producer, topic: topic, now: now}
}

func (r *RefundRequester) Refund(ctx context.Context, orderID, cancellationID kernel.UUID, amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	event := RefundRequestedEvent{
		CancellationID: cancellationID.String(),
		OrderID:        orderID.String(),
		Amount:         amount.Amount(),
		Currency:       amount.Currency(),
		RequestedAt:    r.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.producer.Publish(ctx, r.topic, event.CancellationID, payload, map[string]string{
		"event_type":      "refund_requested",
		"idempotency_key": event.CancellationID,
	})
}
