package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const MaxOpenOrdersLimit = 1000

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
)

// GetOpenOrdersQuery lists orders that have not reached a terminal status,
// oldest first. It is the operator's view of work still in flight.
//
// Example:
//
//	query, err := NewGetOpenOrdersQuery(50)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
//	for _, o := range orders {
//	    fmt.Printf("%s %s\n", o.ID, o.Status)
//	}
type GetOpenOrdersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery accepts a limit in [1, MaxOpenOrdersLimit].
func NewGetOpenOrdersQuery(limit int) (GetOpenOrdersQuery, error) {
	if limit < 1 || limit > MaxOpenOrdersLimit {
		return GetOpenOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxOpenOrdersLimit)
	}
	return GetOpenOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

func (q GetOpenOrdersQuery) Limit() int {
	return q.limit
}

type GetOpenOrdersQueryResponse struct {
	ID          kernel.UUID
	BuyerID     kernel.UUID
	VendorID    kernel.UUID
	Status      string
	Currency    string
	TotalAmount int64
	UpdatedAt   time.Time
}
