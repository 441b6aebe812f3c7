package shipping

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

// ShipmentItem is one package content line.
type ShipmentItem struct {
	SKU         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weight_grams"`
}

// ShipmentRequest books a shipment for an order.
type ShipmentRequest struct {
	OrderID             string         `json:"order_id"`
	OriginPostcode      string         `json:"origin_postcode"`
	DestinationPostcode string         `json:"destination_postcode"`
	Service             string         `json:"service"`
	Items               []ShipmentItem `json:"items"`
}

func (r ShipmentRequest) Validate() error {
	if len(r.Items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	var errList []error
	if strings.TrimSpace(r.OrderID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("order id"))
	}
	for i, item := range r.Items {
		if item.Quantity <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity",
				fmt.Errorf("item %d: %d is not greater than 0", i, item.Quantity)))
		}
	}
	return errors.Join(errList...)
}

// ShipmentResult is a booked shipment.
type ShipmentResult struct {
	Reference string `json:"reference"`
	Carrier   string `json:"carrier"`
	LabelURL  string `json:"label_url"`
	Attempts  int    `json:"-"`
}

// TrackingEvent is one scan in a shipment's journey.
type TrackingEvent struct {
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// TrackingInfo is the current state of a shipment.
type TrackingInfo struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Events    []TrackingEvent `json:"events"`
	Source    Source          `json:"-"`
}

// Health is the outcome of one carrier probe.
type Health struct {
	Healthy   bool
	Latency   time.Duration
	Error     string
	CheckedAt time.Time
}
