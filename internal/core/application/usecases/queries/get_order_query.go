package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads the current state of one order, including its status
// and line items.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, query)
//	fmt.Println(o.Status, o.Version)
type GetOrderQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

type GetOrderQueryResponse struct {
	ID           kernel.UUID
	BuyerID      kernel.UUID
	VendorID     kernel.UUID
	Status       string
	Currency     string
	TotalAmount  int64
	Address      AddressResponse
	DeliveryTime *time.Time
	Version      int64
	Items        []OrderItemResponse
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type AddressResponse struct {
	Line1    string
	Line2    string
	City     string
	Postcode string
	Country  string
}

type OrderItemResponse struct {
	ID        kernel.UUID
	SKU       string
	Quantity  int
	UnitPrice int64
}
