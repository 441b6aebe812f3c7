package http

import (
	"context"
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipping"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// defaultLimit applies when a listing or batch endpoint omits ?limit.
const defaultLimit = 100

// CommandHandler runs a command that yields no value.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a command or query that yields a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, in C) (R, error)
}

// ShippingService is the carrier facade the shipping endpoints use.
type ShippingService interface {
	FetchRates(ctx context.Context, query shipping.RateQuery) (shipping.RateResult, error)
	CreateShipment(ctx context.Context, request shipping.ShipmentRequest) (shipping.ShipmentResult, error)
	TrackShipment(ctx context.Context, reference string) (shipping.TrackingInfo, error)
	HealthCheck(ctx context.Context) shipping.Health
}

// CarrierMonitor reports the background carrier probe: its latest result and
// the current streak of failed probes.
type CarrierMonitor interface {
	Last() (shipping.Health, int)
}

// Handlers bundles the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder         CommandHandler[commands.CreateOrderCommand]
	TransitionOrder     CommandHandler[commands.TransitionOrderCommand]
	AutoTransitionOrder ResultHandler[commands.AutoTransitionOrderCommand, bool]
	ProposeModification ResultHandler[commands.ProposeModificationCommand, kernel.UUID]
	DecideModification  CommandHandler[commands.DecideModificationCommand]
	ApplyModification   CommandHandler[commands.ApplyModificationCommand]
	RequestCancellation ResultHandler[commands.RequestCancellationCommand, kernel.UUID]
	DecideCancellation  CommandHandler[commands.DecideCancellationCommand]
	ProcessCancellation CommandHandler[commands.ProcessCancellationCommand]
	ScheduleOrder       ResultHandler[commands.ScheduleOrderCommand, kernel.UUID]
	ChangeSchedule      CommandHandler[commands.ChangeScheduledOrderStateCommand]
	ExecuteDueSchedules ResultHandler[commands.ExecuteDueScheduledOrdersCommand, int]

	// Query handlers
	GetOrder            ResultHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	GetOpenOrders       ResultHandler[queries.GetOpenOrdersQuery, []queries.GetOpenOrdersQueryResponse]
	GetOrderHistory     ResultHandler[queries.GetOrderHistoryQuery, []queries.GetOrderHistoryQueryResponse]
	ListModifications   ResultHandler[queries.ListOrderRequestsQuery, []queries.ModificationResponse]
	ListCancellations   ResultHandler[queries.ListOrderRequestsQuery, []queries.CancellationResponse]
	ListScheduledOrders ResultHandler[queries.ListScheduledOrdersQuery, []queries.ScheduledOrderResponse]

	Shipping       ShippingService
	CarrierMonitor CarrierMonitor
}

// Server maps HTTP requests onto application use cases.
type Server struct {
	h Handlers
}

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// RegisterHandlers binds every route of openapi.yaml plus the health probes.
func RegisterHandlers(e *echo.Echo, s *Server) {
	e.GET("/health", s.Health)
	e.GET("/health/carrier", s.CarrierHealth)

	v1 := e.Group("/api/v1")
	v1.GET("/orders", s.ListOpenOrders)
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:orderId", s.GetOrder)
	v1.POST("/orders/:orderId/transitions", s.TransitionOrder)
	v1.GET("/orders/:orderId/history", s.GetOrderHistory)
	v1.POST("/orders/:orderId/events", s.ApplyOrderEvent)

	v1.GET("/orders/:orderId/modifications", s.ListModifications)
	v1.POST("/orders/:orderId/modifications", s.ProposeModification)
	v1.POST("/modifications/:requestId/approve", s.ApproveModification)
	v1.POST("/modifications/:requestId/reject", s.RejectModification)
	v1.POST("/modifications/:requestId/apply", s.ApplyModification)

	v1.GET("/orders/:orderId/cancellations", s.ListCancellations)
	v1.POST("/orders/:orderId/cancellations", s.RequestCancellation)
	v1.POST("/cancellations/:requestId/decision", s.DecideCancellation)
	v1.POST("/cancellations/:requestId/process", s.ProcessCancellation)

	v1.POST("/scheduled-orders", s.ScheduleOrder)
	v1.POST("/scheduled-orders/execute", s.ExecuteDueScheduledOrders)
	v1.POST("/scheduled-orders/:scheduleId/:action", s.ChangeScheduledOrderState)
	v1.GET("/buyers/:buyerId/scheduled-orders", s.ListScheduledOrders)

	v1.POST("/shipping/rates", s.FetchRates)
	v1.POST("/shipping/shipments", s.CreateShipment)
	v1.GET("/shipping/tracking/:reference", s.TrackShipment)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CarrierHealth handles GET /health/carrier. An unhealthy carrier answers 503.
// The live probe is reported together with the background job's failure
// streak when a monitor is wired.
func (s *Server) CarrierHealth(ctx echo.Context) error {
	h := s.h.Shipping.HealthCheck(ctx.Request().Context())
	resp := Health{
		Status:    "healthy",
		LatencyMs: h.Latency.Milliseconds(),
		Error:     h.Error,
		CheckedAt: h.CheckedAt,
	}
	if s.h.CarrierMonitor != nil {
		last, failures := s.h.CarrierMonitor.Last()
		resp.ConsecutiveFailures = failures
		if !last.CheckedAt.IsZero() {
			resp.LastProbeAt = &last.CheckedAt
		}
	}
	if !h.Healthy {
		resp.Status = "unhealthy"
		return ctx.JSON(http.StatusServiceUnavailable, resp)
	}
	return ctx.JSON(http.StatusOK, resp)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

func pathString(ctx echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func bodyUUID(name string, id openapi_types.UUID) (kernel.UUID, error) {
	out, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errors.Join(errs.NewValueIsRequiredError(name), err)
	}
	return out, nil
}

func apiUUID(id kernel.UUID) openapi_types.UUID {
	return id.Bytes()
}

func apiUUIDPtr(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	out := apiUUID(*id)
	return &out
}

func invalidBody(ctx echo.Context) error {
	return sendError(ctx, http.StatusBadRequest, "Invalid request body")
}

func queryLimit(ctx echo.Context) (int, error) {
	var requested *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &requested); err != nil {
		return 0, err
	}
	if requested == nil {
		return defaultLimit, nil
	}
	return *requested, nil
}
