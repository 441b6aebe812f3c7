package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// TriggerEvent is a system event that drives an automated transition.
type TriggerEvent string

const (
	PaymentConfirmed  TriggerEvent = "payment_confirmed"
	VendorProcessing  TriggerEvent = "vendor_processing"
	ShipmentCreated   TriggerEvent = "shipment_created"
	DeliveryConfirmed TriggerEvent = "delivery_confirmed"
)

var triggerTargets = map[TriggerEvent]Status{
	PaymentConfirmed:  Paid,
	VendorProcessing:  Processing,
	ShipmentCreated:   Shipped,
	DeliveryConfirmed: Delivered,
}

// ParseTriggerEvent validates an event name.
func ParseTriggerEvent(s string) (TriggerEvent, error) {
	e := TriggerEvent(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := triggerTargets[e]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("trigger event", fmt.Errorf("%q is not a known event", s))
	}
	return e, nil
}

// Target returns the status the event moves an order to.
func (e TriggerEvent) Target() (Status, error) {
	target, ok := triggerTargets[e]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("trigger event", fmt.Errorf("%q is not a known event", e))
	}
	return target, nil
}

// AppliesTo reports whether the event has an edge from current.
func (e TriggerEvent) AppliesTo(current Status) bool {
	target, err := e.Target()
	if err != nil {
		return false
	}
	return current.CanTransitionTo(target)
}

func (e TriggerEvent) String() string {
	return string(e)
}
