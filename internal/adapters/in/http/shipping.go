package http

import (
	"net/http"

	"fulfillment/internal/core/domain/model/shipping"

	"github.com/labstack/echo/v4"
)

// FetchRates handles POST /api/v1/shipping/rates. Carrier trouble degrades
// to fallback quotes, so only an invalid query fails.
func (s *Server) FetchRates(ctx echo.Context) error {
	var body RateRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	var dims shipping.Dimensions
	if body.Dimensions != nil {
		dims = shipping.Dimensions{
			LengthCm: body.Dimensions.LengthCm,
			WidthCm:  body.Dimensions.WidthCm,
			HeightCm: body.Dimensions.HeightCm,
		}
	}
	query, err := shipping.NewRateQuery(body.OriginPostcode, body.DestinationPostcode, body.WeightGrams,
		dims, body.CashOnDelivery)
	if err != nil {
		return handleError(ctx, err, "")
	}

	result, err := s.h.Shipping.FetchRates(ctx.Request().Context(), query)
	if err != nil {
		return handleError(ctx, err, "Failed to fetch rates")
	}

	quotes := make([]Quote, len(result.Quotes))
	for i, q := range result.Quotes {
		quotes[i] = Quote{
			Carrier:  q.Carrier,
			Service:  q.Service,
			Price:    q.Price.StringFixed(2),
			Currency: q.Currency,
			MinDays:  q.MinDays,
			MaxDays:  q.MaxDays,
		}
	}
	return ctx.JSON(http.StatusOK, RateResult{
		Quotes:    quotes,
		Source:    string(result.Source),
		FetchedAt: result.FetchedAt,
	})
}

// CreateShipment handles POST /api/v1/shipping/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body ShipmentRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	request := shipping.ShipmentRequest{
		OrderID:             body.OrderId,
		OriginPostcode:      body.OriginPostcode,
		DestinationPostcode: body.DestinationPostcode,
		Service:             body.Service,
		Items:               make([]shipping.ShipmentItem, len(body.Items)),
	}
	for i, item := range body.Items {
		request.Items[i] = shipping.ShipmentItem{
			SKU:         item.Sku,
			Quantity:    item.Quantity,
			WeightGrams: item.WeightGrams,
		}
	}

	result, err := s.h.Shipping.CreateShipment(ctx.Request().Context(), request)
	if err != nil {
		return handleError(ctx, err, "Failed to create shipment")
	}
	return ctx.JSON(http.StatusCreated, Shipment{
		Reference: result.Reference,
		Carrier:   result.Carrier,
		LabelUrl:  result.LabelURL,
		Attempts:  result.Attempts,
	})
}

// TrackShipment handles GET /api/v1/shipping/tracking/{reference}.
func (s *Server) TrackShipment(ctx echo.Context) error {
	reference, err := pathString(ctx, "reference")
	if err != nil {
		return handleError(ctx, err, "")
	}

	info, err := s.h.Shipping.TrackShipment(ctx.Request().Context(), reference)
	if err != nil {
		return handleError(ctx, err, "Failed to track shipment")
	}

	events := make([]TrackingEvent, len(info.Events))
	for i, e := range info.Events {
		events[i] = TrackingEvent{
			Status:      e.Status,
			Location:    e.Location,
			Description: e.Description,
			OccurredAt:  e.OccurredAt,
		}
	}
	return ctx.JSON(http.StatusOK, Tracking{
		Reference: info.Reference,
		Status:    info.Status,
		Source:    string(info.Source),
		Events:    events,
	})
}
