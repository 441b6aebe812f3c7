package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders. Orders start in pending; the
// actor defaults to the buyer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	buyerID, buyerErr := bodyUUID("buyer_id", body.BuyerId)
	vendorID, vendorErr := bodyUUID("vendor_id", body.VendorId)
	address, addrErr := kernel.NewAddress(body.Address.Line1, body.Address.Line2, body.Address.City,
		body.Address.Postcode, body.Address.Country)

	items := make([]order.LineItem, 0, len(body.Items))
	var itemErrs []error
	for _, in := range body.Items {
		item, err := order.NewLineItem(kernel.NewUUID(), in.Sku, in.Quantity, in.UnitPrice)
		if err != nil {
			itemErrs = append(itemErrs, err)
			continue
		}
		items = append(items, item)
	}

	actorName := body.BuyerId.String()
	if body.Actor != nil {
		actorName = *body.Actor
	}
	actor, actorErr := order.NewActor(actorName)

	if err := errors.Join(buyerErr, vendorErr, addrErr, errors.Join(itemErrs...), actorErr); err != nil {
		return handleError(ctx, err, "Invalid order")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, buyerID, vendorID, body.Currency, address, items,
		order.Pending, actor)
	if err != nil {
		return handleError(ctx, err, "Invalid order")
	}
	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return handleError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, Created{Id: apiUUID(orderID)})
}

// ListOpenOrders handles GET /api/v1/orders.
func (s *Server) ListOpenOrders(ctx echo.Context) error {
	limit, err := queryLimit(ctx)
	if err != nil {
		return sendError(ctx, http.StatusBadRequest, "Invalid format for parameter limit")
	}
	query, err := queries.NewGetOpenOrdersQuery(limit)
	if err != nil {
		return handleError(ctx, err, "")
	}

	list, err := s.h.GetOpenOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err, "Failed to list orders")
	}

	out := make([]OpenOrder, len(list))
	for i, o := range list {
		out[i] = OpenOrder{
			Id:          apiUUID(o.ID),
			BuyerId:     apiUUID(o.BuyerID),
			VendorId:    apiUUID(o.VendorID),
			Status:      o.Status,
			Currency:    o.Currency,
			TotalAmount: o.TotalAmount,
			UpdatedAt:   o.UpdatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, out)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return handleError(ctx, err, "")
	}

	o, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err, "Failed to retrieve order")
	}

	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{
			Id:        apiUUID(item.ID),
			Sku:       item.SKU,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return ctx.JSON(http.StatusOK, Order{
		Id:          apiUUID(o.ID),
		BuyerId:     apiUUID(o.BuyerID),
		VendorId:    apiUUID(o.VendorID),
		Status:      o.Status,
		Currency:    o.Currency,
		TotalAmount: o.TotalAmount,
		Address: Address{
			Line1:    o.Address.Line1,
			Line2:    o.Address.Line2,
			City:     o.Address.City,
			Postcode: o.Address.Postcode,
			Country:  o.Address.Country,
		},
		DeliveryTime: o.DeliveryTime,
		Version:      o.Version,
		Items:        items,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	})
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	var body TransitionRequest
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	to, statusErr := order.ParseStatus(body.ToStatus)
	actor, actorErr := order.NewActor(body.Actor)
	if err = errors.Join(statusErr, actorErr); err != nil {
		return handleError(ctx, err, "")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, to, actor, order.TransitionMetadata{
		Reason:     body.Reason,
		Attributes: body.Attributes,
	})
	if err != nil {
		return handleError(ctx, err, "")
	}
	if err = s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return handleError(ctx, err, "Failed to transition order")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return handleError(ctx, err, "")
	}

	history, err := s.h.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err, "Failed to retrieve order history")
	}

	response := make([]Transition, len(history))
	for i, t := range history {
		response[i] = Transition{
			Id:         apiUUID(t.ID),
			From:       t.From,
			To:         t.To,
			Actor:      t.Actor,
			Automated:  t.Automated,
			Trigger:    t.Metadata.Trigger.String(),
			Reason:     t.Metadata.Reason,
			Attributes: t.Metadata.Attributes,
			CreatedAt:  t.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ApplyOrderEvent handles POST /api/v1/orders/{orderId}/events. An event
// with no edge from the current status answers applied=false.
func (s *Server) ApplyOrderEvent(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return handleError(ctx, err, "")
	}
	var body OrderEvent
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	event, err := order.ParseTriggerEvent(body.Event)
	if err != nil {
		return handleError(ctx, err, "")
	}
	cmd, err := commands.NewAutoTransitionOrderCommand(orderID, event, body.Attributes)
	if err != nil {
		return handleError(ctx, err, "")
	}

	applied, err := s.h.AutoTransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return handleError(ctx, err, "Failed to apply event")
	}
	return ctx.JSON(http.StatusOK, EventResult{Applied: applied})
}
