package queries

import (
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListOrderRequestsQueryIsNotConstructed = errors.New(
		"ListOrderRequestsQuery must be created via NewListOrderRequestsQuery constructor",
	)
)

// ListOrderRequestsQuery selects the modification or cancellation requests
// of one order. The same query value serves both handlers.
type ListOrderRequestsQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListOrderRequestsQuery(orderID kernel.UUID) (ListOrderRequestsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return ListOrderRequestsQuery{}, err
	}
	return ListOrderRequestsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrderRequestsQuery) Validate() error {
	return q.guard.Validate(ErrListOrderRequestsQueryIsNotConstructed)
}

func (q ListOrderRequestsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ModificationResponse carries both payloads in their stored JSON form.
type ModificationResponse struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	Type         string
	OriginalData json.RawMessage
	NewData      json.RawMessage
	Reason       string
	Status       string
	CreatedAt    time.Time
	DecidedAt    *time.Time
	AppliedAt    *time.Time
}

type CancellationResponse struct {
	ID           kernel.UUID
	OrderID      kernel.UUID
	Reason       string
	RefundType   string
	RefundAmount int64
	Currency     string
	Status       string
	CreatedAt    time.Time
	DecidedAt    *time.Time
	ProcessedAt  *time.Time
}
