package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
)

// RequestCancellationCommandHandler records a pending cancellation. The refund
// amount is resolved against the order total at this point.
type RequestCancellationCommandHandler struct {
	uowFactory CancellationUoWFactory
	gate       services.OrderGate
	clock      Clock
}

func NewRequestCancellationCommandHandler(
	uowFactory CancellationUoWFactory,
	gate services.OrderGate,
	clock Clock,
) RequestCancellationCommandHandler {
	return RequestCancellationCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		clock:      clock,
	}
}

// Handle returns the id of the new cancellation request.
func (h RequestCancellationCommandHandler) Handle(ctx context.Context, cmd RequestCancellationCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
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

	existing, err := uow.CancellationRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = h.gate.EnsureCancellable(o, existing); err != nil {
		return kernel.UUID{}, err
	}

	request, err := cancellation.NewRequest(
		kernel.NewUUID(), o.ID(), o.Total(),
		cmd.Reason(), cmd.RefundType(), cmd.RefundAmount(), h.clock(),
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.CancellationRepository().Add(ctx, request); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return request.ID(), nil
}
