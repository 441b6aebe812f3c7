package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/modification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/schedule"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type QueryHandlersTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	uow       ports.UnitOfWorkFactory
	now       time.Time
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(postgres_adapter.Migrate(ctx, sqlDB))

	suite.uow = postgres_adapter.NewGormUnitOfWorkFactory(db, nil, nil)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE orders, order_items, order_status_transitions,
		order_modification_requests, order_cancellation_requests, scheduled_orders CASCADE`).Error
	suite.Require().NoError(err)
	suite.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (suite *QueryHandlersTestSuite) TestGetOrder_ReturnsOrderWithItems() {
	o := suite.seedOrder()

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	resp, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(o.ID().IsEqual(resp.ID))
	suite.Equal("pending", resp.Status)
	suite.Equal("USD", resp.Currency)
	suite.Equal(int64(3700), resp.TotalAmount)
	suite.Equal(int64(1), resp.Version)
	suite.Equal("12345", resp.Address.Postcode)
	suite.Nil(resp.DeliveryTime)
	suite.Require().Len(resp.Items, 2)
	suite.Equal("SKU-1", resp.Items[0].SKU)
	suite.Equal("SKU-2", resp.Items[1].SKU)
}

func (suite *QueryHandlersTestSuite) TestGetOrder_Missing_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetOrderHistory_OrderedWithTieBreak() {
	ctx := context.Background()
	o := suite.seedOrder()

	for _, trigger := range []order.TriggerEvent{order.PaymentConfirmed, order.VendorProcessing} {
		to, err := trigger.Target()
		suite.Require().NoError(err)

		uow := suite.uow.Create()
		suite.Require().NoError(uow.Begin(ctx))
		locked, err := uow.OrderRepository().GetForUpdate(ctx, o.ID())
		suite.Require().NoError(err)
		// same timestamp as the creation record
		tr, err := locked.ChangeStatus(to, order.AutomatedActor,
			order.TransitionMetadata{Trigger: trigger}, suite.now)
		suite.Require().NoError(err)
		suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
		suite.Require().NoError(uow.TransitionRepository().Add(ctx, tr))
		suite.Require().NoError(uow.Commit(ctx))
	}

	query, err := queries.NewGetOrderHistoryQuery(o.ID())
	suite.Require().NoError(err)
	history, err := queries.NewGetOrderHistoryQueryHandler(suite.uow.Create().TransitionRepository()).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(history, 3)
	suite.Nil(history[0].From)
	suite.Equal("pending", history[0].To)
	suite.Equal("order_created", history[0].Metadata.Reason)
	suite.Equal("paid", history[1].To)
	suite.Require().NotNil(history[1].From)
	suite.Equal("pending", *history[1].From)
	suite.True(history[1].Automated)
	suite.Equal(order.PaymentConfirmed, history[1].Metadata.Trigger)
	suite.Equal("processing", history[2].To)
}

func (suite *QueryHandlersTestSuite) TestGetOrderHistory_NoTransitions_EmptySlice() {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	history, err := queries.NewGetOrderHistoryQueryHandler(suite.uow.Create().TransitionRepository()).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(history)
	suite.Empty(history)
}

func (suite *QueryHandlersTestSuite) TestListModificationsAndCancellations() {
	ctx := context.Background()
	o := suite.seedOrder()

	proposed := modification.QuantityPayload{Lines: []order.LineQuantity{{LineID: o.Items()[0].ID(), Quantity: 4}}}
	original, err := modification.Capture(o, proposed)
	suite.Require().NoError(err)
	mod, err := modification.NewRequest(kernel.NewUUID(), o.ID(), original, proposed, "more please", suite.now)
	suite.Require().NoError(err)
	cancel, err := cancellation.NewRequest(kernel.NewUUID(), o.ID(), o.Total(), "changed mind",
		cancellation.RefundFull, 0, suite.now)
	suite.Require().NoError(err)

	uow := suite.uow.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ModificationRepository().Add(ctx, mod))
	suite.Require().NoError(uow.CancellationRepository().Add(ctx, cancel))
	suite.Require().NoError(uow.Commit(ctx))

	query, err := queries.NewListOrderRequestsQuery(o.ID())
	suite.Require().NoError(err)

	mods, err := queries.NewListModificationsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(mods, 1)
	suite.Equal("quantity_change", mods[0].Type)
	suite.Equal("pending", mods[0].Status)
	wantNew, err := modification.MarshalPayload(proposed)
	suite.Require().NoError(err)
	suite.JSONEq(string(wantNew), string(mods[0].NewData))

	cancels, err := queries.NewListCancellationsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(cancels, 1)
	suite.Equal("full", cancels[0].RefundType)
	suite.Equal(o.TotalAmount(), cancels[0].RefundAmount)
	suite.Nil(cancels[0].DecidedAt)
}

func (suite *QueryHandlersTestSuite) TestListScheduledOrders_ByNextExecution() {
	ctx := context.Background()
	buyer := kernel.NewUUID()

	daily, err := schedule.NewRecurrence(schedule.Daily, 2, suite.now.Add(10*24*time.Hour))
	suite.Require().NoError(err)
	later := suite.newSchedule(buyer, suite.now.Add(5*time.Hour), nil)
	sooner := suite.newSchedule(buyer, suite.now.Add(time.Hour), &daily)
	other := suite.newSchedule(kernel.NewUUID(), suite.now.Add(time.Hour), nil)

	repo := suite.uow.Create().ScheduledOrderRepository()
	for _, s := range []*schedule.ScheduledOrder{later, sooner, other} {
		suite.Require().NoError(repo.Add(ctx, s))
	}

	query, err := queries.NewListScheduledOrdersQuery(buyer)
	suite.Require().NoError(err)
	list, err := queries.NewListScheduledOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(list, 2)
	suite.True(sooner.ID().IsEqual(list[0].ID))
	suite.Require().NotNil(list[0].Recurrence)
	suite.Equal("daily", list[0].Recurrence.Type)
	suite.Equal(2, list[0].Recurrence.Interval)
	suite.Nil(list[1].Recurrence)
	suite.Equal("scheduled", list[1].Status)
	suite.Nil(list[1].LastOrderID)
	suite.Contains(string(list[0].Cart), `"sku":"SKU-1"`)
}

func (suite *QueryHandlersTestSuite) TestGetOpenOrders_ExcludesTerminal() {
	ctx := context.Background()
	open := suite.seedOrder()
	canceled := suite.seedOrder()

	uow := suite.uow.Create()
	suite.Require().NoError(uow.Begin(ctx))
	locked, err := uow.OrderRepository().GetForUpdate(ctx, canceled.ID())
	suite.Require().NoError(err)
	tr, err := locked.ChangeStatus(order.Canceled, "ops-1", order.TransitionMetadata{Reason: "duplicate"}, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, locked))
	suite.Require().NoError(uow.TransitionRepository().Add(ctx, tr))
	suite.Require().NoError(uow.Commit(ctx))

	query, err := queries.NewGetOpenOrdersQuery(10)
	suite.Require().NoError(err)
	list, err := queries.NewGetOpenOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(list, 1)
	suite.True(open.ID().IsEqual(list[0].ID))
	suite.Equal("pending", list[0].Status)
	suite.Equal(int64(3700), list[0].TotalAmount)
}

func (suite *QueryHandlersTestSuite) seedOrder() *order.Order {
	ctx := context.Background()
	addr, err := kernel.NewAddress("1 Main St", "", "Springfield", "12345", "US")
	suite.Require().NoError(err)
	a, err := order.NewLineItem(kernel.NewUUID(), "SKU-1", 2, 1500)
	suite.Require().NoError(err)
	b, err := order.NewLineItem(kernel.NewUUID(), "SKU-2", 1, 700)
	suite.Require().NoError(err)

	o, created, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "USD", addr,
		[]order.LineItem{a, b}, order.Pending, "user-1", suite.now)
	suite.Require().NoError(err)

	uow := suite.uow.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.TransitionRepository().Add(ctx, created))
	suite.Require().NoError(uow.Commit(ctx))
	return o
}

func (suite *QueryHandlersTestSuite) newSchedule(buyer kernel.UUID, at time.Time, r *schedule.Recurrence) *schedule.ScheduledOrder {
	cart, err := schedule.NewCartSnapshot([]schedule.CartLine{{SKU: "SKU-1", Quantity: 1, UnitPrice: 990}}, "USD")
	suite.Require().NoError(err)
	addr, err := kernel.NewAddress("9 Elm St", "", "Shelbyville", "54321", "US")
	suite.Require().NoError(err)
	prefs, err := schedule.NewDeliveryPreferences(addr, nil, nil, "")
	suite.Require().NoError(err)

	s, err := schedule.NewScheduledOrder(kernel.NewUUID(), buyer, kernel.NewUUID(), cart, at, prefs, r, suite.now)
	suite.Require().NoError(err)
	return s
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
