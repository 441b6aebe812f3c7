package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/schedule"
	"fulfillment/internal/core/domain/model/shipping"
	"fulfillment/internal/pkg/errs"
)

// nominalWeightGrams is the parcel weight used to probe a delivery postcode.
const nominalWeightGrams = 1000

// ScheduleOrderCommandHandler stores a new scheduled order after checking that
// its delivery postcode can be quoted. Any quote source is accepted, so a
// carrier outage does not block scheduling.
type ScheduleOrderCommandHandler struct {
	uowFactory     ScheduleUoWFactory
	rates          RateQuoter
	originPostcode string
	clock          Clock
}

func NewScheduleOrderCommandHandler(
	uowFactory ScheduleUoWFactory,
	rates RateQuoter,
	originPostcode string,
	clock Clock,
) ScheduleOrderCommandHandler {
	return ScheduleOrderCommandHandler{
		uowFactory:     uowFactory,
		rates:          rates,
		originPostcode: originPostcode,
		clock:          clock,
	}
}

// Handle returns the id of the new schedule.
func (h ScheduleOrderCommandHandler) Handle(ctx context.Context, cmd ScheduleOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	scheduled, err := schedule.NewScheduledOrder(
		kernel.NewUUID(), cmd.BuyerID(), cmd.VendorID(),
		cmd.Cart(), cmd.ScheduledFor(), cmd.Preferences(), cmd.Recurrence(), h.clock(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.checkDeliverable(ctx, cmd.Preferences()); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ScheduledOrderRepository().Add(ctx, scheduled); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return scheduled.ID(), nil
}

func (h ScheduleOrderCommandHandler) checkDeliverable(ctx context.Context, prefs schedule.DeliveryPreferences) error {
	query, err := shipping.NewRateQuery(h.originPostcode, prefs.Address().Postcode(),
		nominalWeightGrams, shipping.Dimensions{}, false)
	if err != nil {
		return err
	}

	result, err := h.rates.FetchRates(ctx, query)
	if err != nil {
		return err
	}
	if len(result.Quotes) == 0 {
		return errs.NewValueIsInvalidErrorWithCause("postcode",
			fmt.Errorf("no shipping quote available for %s", query.DestinationPostcode))
	}
	return nil
}
