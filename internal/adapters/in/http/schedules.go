package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/schedule"

	"github.com/labstack/echo/v4"
)

// ScheduleOrder handles POST /api/v1/scheduled-orders.
func (s *Server) ScheduleOrder(ctx echo.Context) error {
	var body NewScheduledOrder
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	buyerID, buyerErr := bodyUUID("buyer_id", body.BuyerId)
	vendorID, vendorErr := bodyUUID("vendor_id", body.VendorId)

	lines := make([]schedule.CartLine, len(body.Items))
	for i, item := range body.Items {
		lines[i] = schedule.CartLine{SKU: item.Sku, Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}
	cart, cartErr := schedule.NewCartSnapshot(lines, body.Currency)

	address, addrErr := kernel.NewAddress(body.Address.Line1, body.Address.Line2, body.Address.City,
		body.Address.Postcode, body.Address.Country)
	var prefsErr error
	var prefs schedule.DeliveryPreferences
	if addrErr == nil {
		prefs, prefsErr = schedule.NewDeliveryPreferences(address, body.WindowStart, body.WindowEnd, body.Notes)
	}

	var recurrence *schedule.Recurrence
	var recurrenceErr error
	if body.Recurrence != nil {
		recurrence, recurrenceErr = parseRecurrence(*body.Recurrence)
	}

	if err := errors.Join(buyerErr, vendorErr, cartErr, addrErr, prefsErr, recurrenceErr); err != nil {
		return handleError(ctx, err, "")
	}

	cmd, err := commands.NewScheduleOrderCommand(buyerID, vendorID, cart, body.ScheduledFor, prefs, recurrence)
	if err != nil {
		return handleError(ctx, err, "")
	}
	id, err := s.h.ScheduleOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err, "Failed to schedule order")
	}
	return ctx.JSON(http.StatusCreated, Created{Id: apiUUID(id)})
}

func parseRecurrence(in Recurrence) (*schedule.Recurrence, error) {
	frequency, err := schedule.ParseFrequency(in.Type)
	if err != nil {
		return nil, err
	}
	r, err := schedule.NewRecurrence(frequency, in.Interval, in.EndDate)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ChangeScheduledOrderState handles POST
// /api/v1/scheduled-orders/{scheduleId}/{action} for pause, resume and cancel.
func (s *Server) ChangeScheduledOrderState(ctx echo.Context) error {
	scheduleID, err := pathUUID(ctx, "scheduleId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	action, err := pathString(ctx, "action")
	if err != nil {
		return handleError(ctx, err, "")
	}

	cmd, err := commands.NewChangeScheduledOrderStateCommand(scheduleID, commands.ScheduleAction(action))
	if err != nil {
		return handleError(ctx, err, "")
	}
	if err = s.h.ChangeSchedule.Handle(ctx.Request().Context(), cmd); err != nil {
		return handleError(ctx, err, "Failed to change scheduled order")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ExecuteDueScheduledOrders handles POST /api/v1/scheduled-orders/execute,
// the manual trigger of the scheduled-order job.
func (s *Server) ExecuteDueScheduledOrders(ctx echo.Context) error {
	limit, err := queryLimit(ctx)
	if err != nil {
		return sendError(ctx, http.StatusBadRequest, "Invalid format for parameter limit")
	}

	cmd, err := commands.NewExecuteDueScheduledOrdersCommand(limit)
	if err != nil {
		return handleError(ctx, err, "")
	}
	executed, err := s.h.ExecuteDueSchedules.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err, "Failed to execute scheduled orders")
	}
	return ctx.JSON(http.StatusOK, ExecutionResult{Executed: executed})
}

// ListScheduledOrders handles GET /api/v1/buyers/{buyerId}/scheduled-orders.
func (s *Server) ListScheduledOrders(ctx echo.Context) error {
	buyerID, err := pathUUID(ctx, "buyerId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	query, err := queries.NewListScheduledOrdersQuery(buyerID)
	if err != nil {
		return handleError(ctx, err, "")
	}

	list, err := s.h.ListScheduledOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err, "Failed to retrieve scheduled orders")
	}

	response := make([]ScheduledOrder, len(list))
	for i, so := range list {
		var recurrence *Recurrence
		if so.Recurrence != nil {
			recurrence = &Recurrence{
				Type:     so.Recurrence.Type,
				Interval: so.Recurrence.Interval,
				EndDate:  so.Recurrence.EndDate,
			}
		}
		response[i] = ScheduledOrder{
			Id:              apiUUID(so.ID),
			BuyerId:         apiUUID(so.BuyerID),
			VendorId:        apiUUID(so.VendorID),
			ScheduledFor:    so.ScheduledFor,
			Recurrence:      recurrence,
			Cart:            so.Cart,
			Preferences:     so.Preferences,
			Status:          so.Status,
			NextExecutionAt: so.NextExecutionAt,
			LastExecutedAt:  so.LastExecutedAt,
			Executions:      so.Executions,
			LastOrderId:     apiUUIDPtr(so.LastOrderID),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}
