package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/modification"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// ProposeModificationCommandHandler records a pending modification request.
//
// Business rules:
//   - the order must pass the OrderGate
//   - only one pending request per type and order
//   - a proposed delivery time must lie in the future
//   - referenced lines must exist on the order
type ProposeModificationCommandHandler struct {
	uowFactory ModificationUoWFactory
	gate       services.OrderGate
	clock      Clock
}

func NewProposeModificationCommandHandler(
	uowFactory ModificationUoWFactory,
	gate services.OrderGate,
	clock Clock,
) ProposeModificationCommandHandler {
	return ProposeModificationCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		clock:      clock,
	}
}

// Handle returns the id of the new request.
func (h ProposeModificationCommandHandler) Handle(ctx context.Context, cmd ProposeModificationCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	now := h.clock()
	if err := ensureFuture(cmd.Proposed(), now); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	cancellations, err := uow.CancellationRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = h.gate.EnsureModifiable(o, cancellations); err != nil {
		return kernel.UUID{}, err
	}

	existing, err := uow.ModificationRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return kernel.UUID{}, err
	}
	for _, r := range existing {
		if r.IsPending() && r.Type() == cmd.Proposed().Type() {
			return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("type",
				fmt.Errorf("request %s of type %s is still pending", r.ID(), r.Type()))
		}
	}

	captured, err := modification.Capture(o, cmd.Proposed())
	if err != nil {
		return kernel.UUID{}, err
	}
	original := cmd.Original()
	if original == nil {
		original = captured
	}

	request, err := modification.NewRequest(kernel.NewUUID(), o.ID(), original, cmd.Proposed(), cmd.Reason(), now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.ModificationRepository().Add(ctx, request); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return request.ID(), nil
}

func ensureFuture(p modification.Payload, now time.Time) error {
	dt, ok := p.(modification.DeliveryTimePayload)
	if !ok || dt.DeliveryTime.After(now) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("delivery time",
		fmt.Errorf("%s is not in the future", dt.DeliveryTime.Format(time.RFC3339)))
}
