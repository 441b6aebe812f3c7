package queries

import (
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrListScheduledOrdersQueryIsNotConstructed = errors.New(
		"ListScheduledOrdersQuery must be created via NewListScheduledOrdersQuery constructor",
	)
)

// ListScheduledOrdersQuery lists a buyer's schedules by next execution time.
type ListScheduledOrdersQuery struct {
	buyerID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListScheduledOrdersQuery(buyerID kernel.UUID) (ListScheduledOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return ListScheduledOrdersQuery{}, err
	}
	return ListScheduledOrdersQuery{buyerID: buyerID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListScheduledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListScheduledOrdersQueryIsNotConstructed)
}

func (q ListScheduledOrdersQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

type ScheduledOrderResponse struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	VendorID        kernel.UUID
	ScheduledFor    time.Time
	Recurrence      *RecurrenceResponse
	Cart            json.RawMessage
	Preferences     json.RawMessage
	Status          string
	NextExecutionAt time.Time
	LastExecutedAt  *time.Time
	Executions      int
	LastOrderID     *kernel.UUID
}

type RecurrenceResponse struct {
	Type     string
	Interval int
	EndDate  time.Time
}
