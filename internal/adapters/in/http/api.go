package http

import (
	"encoding/json"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types of openapi.yaml. Field names and tags follow the document's
// schema names one to one.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Created struct {
	Id openapi_types.UUID `json:"id"`
}

type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

type NewOrderItem struct {
	Sku       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

type NewOrder struct {
	BuyerId  openapi_types.UUID `json:"buyer_id"`
	VendorId openapi_types.UUID `json:"vendor_id"`
	Currency string             `json:"currency"`
	Address  Address            `json:"address"`
	Items    []NewOrderItem     `json:"items"`
	Actor    *string            `json:"actor,omitempty"`
}

type OrderItem struct {
	Id        openapi_types.UUID `json:"id"`
	Sku       string             `json:"sku"`
	Quantity  int                `json:"quantity"`
	UnitPrice int64              `json:"unit_price"`
}

type Order struct {
	Id           openapi_types.UUID `json:"id"`
	BuyerId      openapi_types.UUID `json:"buyer_id"`
	VendorId     openapi_types.UUID `json:"vendor_id"`
	Status       string             `json:"status"`
	Currency     string             `json:"currency"`
	TotalAmount  int64              `json:"total_amount"`
	Address      Address            `json:"address"`
	DeliveryTime *time.Time         `json:"delivery_time,omitempty"`
	Version      int64              `json:"version"`
	Items        []OrderItem        `json:"items"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type OpenOrder struct {
	Id          openapi_types.UUID `json:"id"`
	BuyerId     openapi_types.UUID `json:"buyer_id"`
	VendorId    openapi_types.UUID `json:"vendor_id"`
	Status      string             `json:"status"`
	Currency    string             `json:"currency"`
	TotalAmount int64              `json:"total_amount"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type TransitionRequest struct {
	ToStatus   string            `json:"to_status"`
	Actor      string            `json:"actor"`
	Reason     string            `json:"reason,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type Transition struct {
	Id         openapi_types.UUID `json:"id"`
	From       *string            `json:"from,omitempty"`
	To         string             `json:"to"`
	Actor      string             `json:"actor"`
	Automated  bool               `json:"automated"`
	Trigger    string             `json:"trigger,omitempty"`
	Reason     string             `json:"reason,omitempty"`
	Attributes map[string]string  `json:"attributes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type OrderEvent struct {
	Event      string            `json:"event"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

type EventResult struct {
	Applied bool `json:"applied"`
}

type NewModification struct {
	Type         string          `json:"type"`
	OriginalData json.RawMessage `json:"original_data,omitempty"`
	NewData      json.RawMessage `json:"new_data"`
	Reason       string          `json:"reason"`
}

type Modification struct {
	Id           openapi_types.UUID `json:"id"`
	OrderId      openapi_types.UUID `json:"order_id"`
	Type         string             `json:"type"`
	OriginalData json.RawMessage    `json:"original_data,omitempty"`
	NewData      json.RawMessage    `json:"new_data"`
	Reason       string             `json:"reason"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	DecidedAt    *time.Time         `json:"decided_at,omitempty"`
	AppliedAt    *time.Time         `json:"applied_at,omitempty"`
}

type NewCancellation struct {
	Reason       string `json:"reason"`
	RefundType   string `json:"refund_type"`
	RefundAmount int64  `json:"refund_amount"`
}

type Decision struct {
	Approved bool `json:"approved"`
}

type Cancellation struct {
	Id           openapi_types.UUID `json:"id"`
	OrderId      openapi_types.UUID `json:"order_id"`
	Reason       string             `json:"reason"`
	RefundType   string             `json:"refund_type"`
	RefundAmount int64              `json:"refund_amount"`
	Currency     string             `json:"currency"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	DecidedAt    *time.Time         `json:"decided_at,omitempty"`
	ProcessedAt  *time.Time         `json:"processed_at,omitempty"`
}

type Recurrence struct {
	Type     string    `json:"type"`
	Interval int       `json:"interval"`
	EndDate  time.Time `json:"end_date"`
}

type NewScheduledOrder struct {
	BuyerId      openapi_types.UUID `json:"buyer_id"`
	VendorId     openapi_types.UUID `json:"vendor_id"`
	ScheduledFor time.Time          `json:"scheduled_for"`
	Currency     string             `json:"currency"`
	Items        []NewOrderItem     `json:"items"`
	Address      Address            `json:"address"`
	WindowStart  *time.Time         `json:"window_start,omitempty"`
	WindowEnd    *time.Time         `json:"window_end,omitempty"`
	Notes        string             `json:"notes,omitempty"`
	Recurrence   *Recurrence        `json:"recurrence,omitempty"`
}

type ScheduledOrder struct {
	Id              openapi_types.UUID  `json:"id"`
	BuyerId         openapi_types.UUID  `json:"buyer_id"`
	VendorId        openapi_types.UUID  `json:"vendor_id"`
	ScheduledFor    time.Time           `json:"scheduled_for"`
	Recurrence      *Recurrence         `json:"recurrence,omitempty"`
	Cart            json.RawMessage     `json:"cart"`
	Preferences     json.RawMessage     `json:"preferences"`
	Status          string              `json:"status"`
	NextExecutionAt time.Time           `json:"next_execution_at"`
	LastExecutedAt  *time.Time          `json:"last_executed_at,omitempty"`
	Executions      int                 `json:"executions"`
	LastOrderId     *openapi_types.UUID `json:"last_order_id,omitempty"`
}

type ExecutionResult struct {
	Executed int `json:"executed"`
}

type Dimensions struct {
	LengthCm int `json:"length_cm"`
	WidthCm  int `json:"width_cm"`
	HeightCm int `json:"height_cm"`
}

type RateRequest struct {
	OriginPostcode      string      `json:"origin_postcode"`
	DestinationPostcode string      `json:"destination_postcode"`
	WeightGrams         int         `json:"weight_grams"`
	Dimensions          *Dimensions `json:"dimensions,omitempty"`
	CashOnDelivery      bool        `json:"cash_on_delivery"`
}

type Quote struct {
	Carrier  string `json:"carrier"`
	Service  string `json:"service"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	MinDays  int    `json:"min_days"`
	MaxDays  int    `json:"max_days"`
}

type RateResult struct {
	Quotes    []Quote   `json:"quotes"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}

type ShipmentItem struct {
	Sku         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	WeightGrams int    `json:"weight_grams"`
}

type ShipmentRequest struct {
	OrderId             string         `json:"order_id"`
	OriginPostcode      string         `json:"origin_postcode"`
	DestinationPostcode string         `json:"destination_postcode"`
	Service             string         `json:"service"`
	Items               []ShipmentItem `json:"items"`
}

type Shipment struct {
	Reference string `json:"reference"`
	Carrier   string `json:"carrier"`
	LabelUrl  string `json:"label_url,omitempty"`
	Attempts  int    `json:"attempts"`
}

type TrackingEvent struct {
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Tracking struct {
	Reference string          `json:"reference"`
	Status    string          `json:"status"`
	Source    string          `json:"source"`
	Events    []TrackingEvent `json:"events"`
}

type Health struct {
	Status              string     `json:"status"`
	LatencyMs           int64      `json:"latency_ms,omitempty"`
	Error               string     `json:"error,omitempty"`
	CheckedAt           time.Time  `json:"checked_at"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LastProbeAt         *time.Time `json:"last_probe_at,omitempty"`
}
