package http

import (
	"bytes"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/modification"

	"github.com/labstack/echo/v4"
)

// ProposeModification handles POST /api/v1/orders/{orderId}/modifications.
// Payload kinds may be omitted; they default to the request type.
func (s *Server) ProposeModification(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	var body NewModification
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	kind, err := modification.ParseType(body.Type)
	if err != nil {
		return handleError(ctx, err, "")
	}
	proposed, err := modification.UnmarshalPayloadAs(kind, body.NewData)
	if err != nil {
		return handleError(ctx, err, "")
	}
	var original modification.Payload
	if raw := bytes.TrimSpace(body.OriginalData); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if original, err = modification.UnmarshalPayloadAs(kind, raw); err != nil {
			return handleError(ctx, err, "")
		}
	}

	cmd, err := commands.NewProposeModificationCommand(orderID, original, proposed, body.Reason)
	if err != nil {
		return handleError(ctx, err, "")
	}
	id, err := s.h.ProposeModification.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err, "Failed to propose modification")
	}
	return ctx.JSON(http.StatusCreated, Created{Id: apiUUID(id)})
}

// ApproveModification handles POST /api/v1/modifications/{requestId}/approve.
func (s *Server) ApproveModification(ctx echo.Context) error {
	return s.decideModification(ctx, true)
}

// RejectModification handles POST /api/v1/modifications/{requestId}/reject.
func (s *Server) RejectModification(ctx echo.Context) error {
	return s.decideModification(ctx, false)
}

func (s *Server) decideModification(ctx echo.Context, approve bool) error {
	requestID, err := pathUUID(ctx, "requestId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	cmd, err := commands.NewDecideModificationCommand(requestID, approve)
	if err != nil {
		return handleError(ctx, err, "")
	}
	if err = s.h.DecideModification.Handle(ctx.Request().Context(), cmd); err != nil {
		return handleError(ctx, err, "Failed to decide modification")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ApplyModification handles POST /api/v1/modifications/{requestId}/apply.
func (s *Server) ApplyModification(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "requestId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	cmd, err := commands.NewApplyModificationCommand(requestID)
	if err != nil {
		return handleError(ctx, err, "")
	}
	if err = s.h.ApplyModification.Handle(ctx.Request().Context(), cmd); err != nil {
		return handleError(ctx, err, "Failed to apply modification")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListModifications handles GET /api/v1/orders/{orderId}/modifications.
func (s *Server) ListModifications(ctx echo.Context) error {
	query, err := s.requestsQuery(ctx)
	if err != nil {
		return handleError(ctx, err, "")
	}
	list, err := s.h.ListModifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err, "Failed to retrieve modifications")
	}

	response := make([]Modification, len(list))
	for i, m := range list {
		response[i] = Modification{
			Id:           apiUUID(m.ID),
			OrderId:      apiUUID(m.OrderID),
			Type:         m.Type,
			OriginalData: m.OriginalData,
			NewData:      m.NewData,
			Reason:       m.Reason,
			Status:       m.Status,
			CreatedAt:    m.CreatedAt,
			DecidedAt:    m.DecidedAt,
			AppliedAt:    m.AppliedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// RequestCancellation handles POST /api/v1/orders/{orderId}/cancellations.
func (s *Server) RequestCancellation(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	var body NewCancellation
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	refundType, err := cancellation.ParseRefundType(body.RefundType)
	if err != nil {
		return handleError(ctx, err, "")
	}
	cmd, err := commands.NewRequestCancellationCommand(orderID, body.Reason, refundType, body.RefundAmount)
	if err != nil {
		return handleError(ctx, err, "")
	}
	id, err := s.h.RequestCancellation.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err, "Failed to request cancellation")
	}
	return ctx.JSON(http.StatusCreated, Created{Id: apiUUID(id)})
}

// DecideCancellation handles POST /api/v1/cancellations/{requestId}/decision.
func (s *Server) DecideCancellation(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "requestId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	var body Decision
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}
	cmd, err := commands.NewDecideCancellationCommand(requestID, body.Approved)
	if err != nil {
		return handleError(ctx, err, "")
	}
	if err = s.h.DecideCancellation.Handle(ctx.Request().Context(), cmd); err != nil {
		return handleError(ctx, err, "Failed to decide cancellation")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ProcessCancellation handles POST /api/v1/cancellations/{requestId}/process.
func (s *Server) ProcessCancellation(ctx echo.Context) error {
	requestID, err := pathUUID(ctx, "requestId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	cmd, err := commands.NewProcessCancellationCommand(requestID)
	if err != nil {
		return handleError(ctx, err, "")
	}
	if err = s.h.ProcessCancellation.Handle(ctx.Request().Context(), cmd); err != nil {
		return handleError(ctx, err, "Failed to process cancellation")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ListCancellations handles GET /api/v1/orders/{orderId}/cancellations.
func (s *Server) ListCancellations(ctx echo.Context) error {
	query, err := s.requestsQuery(ctx)
	if err != nil {
		return handleError(ctx, err, "")
	}
	list, err := s.h.ListCancellations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err, "Failed to retrieve cancellations")
	}

	response := make([]Cancellation, len(list))
	for i, c := range list {
		response[i] = Cancellation{
			Id:           apiUUID(c.ID),
			OrderId:      apiUUID(c.OrderID),
			Reason:       c.Reason,
			RefundType:   c.RefundType,
			RefundAmount: c.RefundAmount,
			Currency:     c.Currency,
			Status:       c.Status,
			CreatedAt:    c.CreatedAt,
			DecidedAt:    c.DecidedAt,
			ProcessedAt:  c.ProcessedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) requestsQuery(ctx echo.Context) (queries.ListOrderRequestsQuery, error) {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return queries.ListOrderRequestsQuery{}, err
	}
	return queries.NewListOrderRequestsQuery(orderID)
}
