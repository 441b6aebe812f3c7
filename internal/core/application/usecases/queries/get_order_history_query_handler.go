package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// TransitionLister reads the status history of one order.
type TransitionLister interface {
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Transition, error)
}

// GetOrderHistoryQueryHandler serves the append-only history through the
// transition repository so rows go through the same decoding as the write side.
type GetOrderHistoryQueryHandler struct {
	transitions TransitionLister
}

func NewGetOrderHistoryQueryHandler(transitions TransitionLister) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{transitions: transitions}
}

// Handle orders by creation time, breaking ties by insertion sequence.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	transitions, err := h.transitions.ListByOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	history := make([]GetOrderHistoryQueryResponse, 0, len(transitions))
	for _, t := range transitions {
		resp := GetOrderHistoryQueryResponse{
			ID:        t.ID(),
			To:        t.To().String(),
			Actor:     t.Actor().String(),
			Automated: t.Automated(),
			Metadata:  t.Metadata(),
			CreatedAt: t.CreatedAt().UTC(),
		}
		if from := t.From(); from != nil {
			s := from.String()
			resp.From = &s
		}
		history = append(history, resp)
	}
	return history, nil
}
