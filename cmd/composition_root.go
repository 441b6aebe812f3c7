package cmd

import (
	"log/slog"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/ordercreation"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/logistics"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	aggregator *logistics.Aggregator
	refunds    ports.RefundProcessor
	gate       services.OrderGate
	clock      commands.Clock
	logger     *slog.Logger
	jobManager *jobs.JobManager
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, producer *kafka.SaramaProducer, logger *slog.Logger) CompositionRoot {
	clock := commands.Clock(func() time.Time { return time.Now().UTC() })
	publisher := kafka.NewStatusChangePublisher(producer, configs.KafkaOrderChangedTopic)

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger),
		aggregator: logistics.NewAggregator(
			carrier.NewClient(configs.CarrierBaseURL, configs.CarrierAPIKey),
			logistics.Options{},
			logger,
		),
		refunds: kafka.NewRefundRequester(producer, configs.KafkaRefundRequestedTopic, clock),
		gate:    services.NewOrderGate(),
		clock:   clock,
		logger:  logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) modificationUoWFactory() commands.ModificationUoWFactory {
	return FuncModificationUoWFactory(func() commands.ModificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cancellationUoWFactory() commands.CancellationUoWFactory {
	return FuncCancellationUoWFactory(func() commands.CancellationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) scheduleUoWFactory() commands.ScheduleUoWFactory {
	return FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) Aggregator() *logistics.Aggregator {
	return c.aggregator
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateAutoTransitionOrderCommandHandler() commands.AutoTransitionOrderCommandHandler {
	return commands.NewAutoTransitionOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateProposeModificationCommandHandler() commands.ProposeModificationCommandHandler {
	return commands.NewProposeModificationCommandHandler(c.modificationUoWFactory(), c.gate, c.clock)
}

func (c *CompositionRoot) CreateDecideModificationCommandHandler() commands.DecideModificationCommandHandler {
	return commands.NewDecideModificationCommandHandler(c.modificationUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateApplyModificationCommandHandler() commands.ApplyModificationCommandHandler {
	return commands.NewApplyModificationCommandHandler(c.modificationUoWFactory(), c.gate, c.clock)
}

func (c *CompositionRoot) CreateRequestCancellationCommandHandler() commands.RequestCancellationCommandHandler {
	return commands.NewRequestCancellationCommandHandler(c.cancellationUoWFactory(), c.gate, c.clock)
}

func (c *CompositionRoot) CreateDecideCancellationCommandHandler() commands.DecideCancellationCommandHandler {
	return commands.NewDecideCancellationCommandHandler(c.cancellationUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateProcessCancellationCommandHandler() commands.ProcessCancellationCommandHandler {
	return commands.NewProcessCancellationCommandHandler(c.cancellationUoWFactory(), c.gate, c.refunds, c.clock)
}

func (c *CompositionRoot) CreateScheduleOrderCommandHandler() commands.ScheduleOrderCommandHandler {
	return commands.NewScheduleOrderCommandHandler(c.scheduleUoWFactory(), c.aggregator, c.configs.OriginPostcode, c.clock)
}

func (c *CompositionRoot) CreateChangeScheduledOrderStateCommandHandler() commands.ChangeScheduledOrderStateCommandHandler {
	return commands.NewChangeScheduledOrderStateCommandHandler(c.scheduleUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateExecuteDueScheduledOrdersCommandHandler() commands.ExecuteDueScheduledOrdersCommandHandler {
	creator := ordercreation.NewCreator(c.CreateCreateOrderCommandHandler())
	return commands.NewExecuteDueScheduledOrdersCommandHandler(c.scheduleUoWFactory(), creator, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.uowFactory.Create().TransitionRepository())
}

func (c *CompositionRoot) CreateListModificationsQueryHandler() queries.ListModificationsQueryHandler {
	return queries.NewListModificationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCancellationsQueryHandler() queries.ListCancellationsQueryHandler {
	return queries.NewListCancellationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListScheduledOrdersQueryHandler() queries.ListScheduledOrdersQueryHandler {
	return queries.NewListScheduledOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every use case into the inbound HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		TransitionOrder:     c.CreateTransitionOrderCommandHandler(),
		AutoTransitionOrder: c.CreateAutoTransitionOrderCommandHandler(),
		ProposeModification: c.CreateProposeModificationCommandHandler(),
		DecideModification:  c.CreateDecideModificationCommandHandler(),
		ApplyModification:   c.CreateApplyModificationCommandHandler(),
		RequestCancellation: c.CreateRequestCancellationCommandHandler(),
		DecideCancellation:  c.CreateDecideCancellationCommandHandler(),
		ProcessCancellation: c.CreateProcessCancellationCommandHandler(),
		ScheduleOrder:       c.CreateScheduleOrderCommandHandler(),
		ChangeSchedule:      c.CreateChangeScheduledOrderStateCommandHandler(),
		ExecuteDueSchedules: c.CreateExecuteDueScheduledOrdersCommandHandler(),

		GetOrder:            c.CreateGetOrderQueryHandler(),
		GetOpenOrders:       c.CreateGetOpenOrdersQueryHandler(),
		GetOrderHistory:     c.CreateGetOrderHistoryQueryHandler(),
		ListModifications:   c.CreateListModificationsQueryHandler(),
		ListCancellations:   c.CreateListCancellationsQueryHandler(),
		ListScheduledOrders: c.CreateListScheduledOrdersQueryHandler(),

		Shipping:       c.aggregator,
		CarrierMonitor: c.CreateJobManager().CarrierHealth(),
	})
}

// CreateJobManager builds the job manager once; the HTTP server reads the
// carrier probe from the same instance.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if c.jobManager != nil {
		return c.jobManager
	}
	c.jobManager = jobs.NewJobManager(
		c.CreateExecuteDueScheduledOrdersCommandHandler(),
		c.aggregator,
		jobs.Schedules{
			DueOrders:     c.configs.SchedulerCron,
			CarrierHealth: c.configs.CarrierHealthCron,
			BatchSize:     c.configs.SchedulerBatchSize,
		},
		c.logger,
	)
	return c.jobManager
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncModificationUoWFactory func() commands.ModificationUoW

func (f FuncModificationUoWFactory) Create() commands.ModificationUoW {
	return f()
}

type FuncCancellationUoWFactory func() commands.CancellationUoW

func (f FuncCancellationUoWFactory) Create() commands.CancellationUoW {
	return f()
}

type FuncScheduleUoWFactory func() commands.ScheduleUoW

func (f FuncScheduleUoWFactory) Create() commands.ScheduleUoW {
	return f()
}
