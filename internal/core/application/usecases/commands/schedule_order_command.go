package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/schedule"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrScheduleOrderCommandIsNotConstructed = errors.New(
		"ScheduleOrderCommand must be created via NewScheduleOrderCommand constructor",
	)
)

// ScheduleOrderCommand defers an order to scheduledFor, optionally repeating
// it. Timing rules relative to the current time are checked by the handler.
type ScheduleOrderCommand struct {
	buyerID      kernel.UUID
	vendorID     kernel.UUID
	cart         schedule.CartSnapshot
	scheduledFor time.Time
	preferences  schedule.DeliveryPreferences
	recurrence   *schedule.Recurrence

	guard guard.ConstructorGuard
}

func NewScheduleOrderCommand(
	buyerID, vendorID kernel.UUID,
	cart schedule.CartSnapshot,
	scheduledFor time.Time,
	preferences schedule.DeliveryPreferences,
	recurrence *schedule.Recurrence,
) (ScheduleOrderCommand, error) {
	var recurrenceErr error
	if recurrence != nil {
		recurrenceErr = recurrence.Validate()
	}
	if err := errors.Join(
		buyerID.Validate(),
		vendorID.Validate(),
		cart.Validate(),
		preferences.Validate(),
		recurrenceErr,
	); err != nil {
		return ScheduleOrderCommand{}, err
	}

	return ScheduleOrderCommand{
		buyerID:      buyerID,
		vendorID:     vendorID,
		cart:         cart,
		scheduledFor: scheduledFor,
		preferences:  preferences,
		recurrence:   recurrence,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ScheduleOrderCommand) Validate() error {
	return c.guard.Validate(ErrScheduleOrderCommandIsNotConstructed)
}

func (c ScheduleOrderCommand) BuyerID() kernel.UUID                      { return c.buyerID }
func (c ScheduleOrderCommand) VendorID() kernel.UUID                     { return c.vendorID }
func (c ScheduleOrderCommand) Cart() schedule.CartSnapshot               { return c.cart }
func (c ScheduleOrderCommand) ScheduledFor() time.Time                   { return c.scheduledFor }
func (c ScheduleOrderCommand) Preferences() schedule.DeliveryPreferences { return c.preferences }
func (c ScheduleOrderCommand) Recurrence() *schedule.Recurrence          { return c.recurrence }
