package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/modification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/schedule"
	"fulfillment/internal/core/domain/model/shipping"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockTransitionRepository struct{ mock.Mock }

func (m *MockTransitionRepository) Add(ctx context.Context, tr *order.Transition) error {
	return m.Called(ctx, tr).Error(0)
}

func (m *MockTransitionRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Transition, error) {
	args := m.Called(ctx, orderID)
	list, _ := args.Get(0).([]*order.Transition)
	return list, args.Error(1)
}

type MockModificationRepository struct{ mock.Mock }

func (m *MockModificationRepository) Add(ctx context.Context, r *modification.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockModificationRepository) Update(ctx context.Context, r *modification.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockModificationRepository) Get(ctx context.Context, id kernel.UUID) (*modification.Request, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*modification.Request)
	return r, args.Error(1)
}

func (m *MockModificationRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*modification.Request, error) {
	args := m.Called(ctx, orderID)
	list, _ := args.Get(0).([]*modification.Request)
	return list, args.Error(1)
}

type MockCancellationRepository struct{ mock.Mock }

func (m *MockCancellationRepository) Add(ctx context.Context, r *cancellation.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockCancellationRepository) Update(ctx context.Context, r *cancellation.Request) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockCancellationRepository) Get(ctx context.Context, id kernel.UUID) (*cancellation.Request, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*cancellation.Request)
	return r, args.Error(1)
}

func (m *MockCancellationRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*cancellation.Request, error) {
	args := m.Called(ctx, orderID)
	list, _ := args.Get(0).([]*cancellation.Request)
	return list, args.Error(1)
}

type MockScheduledOrderRepository struct{ mock.Mock }

func (m *MockScheduledOrderRepository) Add(ctx context.Context, s *schedule.ScheduledOrder) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockScheduledOrderRepository) Update(ctx context.Context, s *schedule.ScheduledOrder) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockScheduledOrderRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.ScheduledOrder, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*schedule.ScheduledOrder)
	return s, args.Error(1)
}

func (m *MockScheduledOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*schedule.ScheduledOrder, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*schedule.ScheduledOrder)
	return s, args.Error(1)
}

func (m *MockScheduledOrderRepository) ListByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*schedule.ScheduledOrder, error) {
	args := m.Called(ctx, buyerID)
	list, _ := args.Get(0).([]*schedule.ScheduledOrder)
	return list, args.Error(1)
}

func (m *MockScheduledOrderRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]*schedule.ScheduledOrder, error) {
	args := m.Called(ctx, now, limit)
	list, _ := args.Get(0).([]*schedule.ScheduledOrder)
	return list, args.Error(1)
}

// MockUoW satisfies every narrow unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TransitionRepository() ports.TransitionRepository {
	return m.Called().Get(0).(ports.TransitionRepository)
}

func (m *MockUoW) ModificationRepository() ports.ModificationRepository {
	return m.Called().Get(0).(ports.ModificationRepository)
}

func (m *MockUoW) CancellationRepository() ports.CancellationRepository {
	return m.Called().Get(0).(ports.CancellationRepository)
}

func (m *MockUoW) ScheduledOrderRepository() ports.ScheduledOrderRepository {
	return m.Called().Get(0).(ports.ScheduledOrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) create() *MockUoW { return m.MethodCalled("Create").Get(0).(*MockUoW) }

type MockOrderUoWFactory struct{ MockUoWFactory }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW { return m.create() }

type MockModificationUoWFactory struct{ MockUoWFactory }

func (m *MockModificationUoWFactory) Create() commands.ModificationUoW { return m.create() }

type MockCancellationUoWFactory struct{ MockUoWFactory }

func (m *MockCancellationUoWFactory) Create() commands.CancellationUoW { return m.create() }

type MockScheduleUoWFactory struct{ MockUoWFactory }

func (m *MockScheduleUoWFactory) Create() commands.ScheduleUoW { return m.create() }

type MockRefundProcessor struct{ mock.Mock }

func (m *MockRefundProcessor) Refund(ctx context.Context, orderID, cancellationID kernel.UUID, amount kernel.Money) error {
	return m.Called(ctx, orderID, cancellationID, amount).Error(0)
}

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) CreateOrder(ctx context.Context, orderID kernel.UUID, s *schedule.ScheduledOrder) error {
	return m.Called(ctx, orderID, s).Error(0)
}

type MockRateQuoter struct{ mock.Mock }

func (m *MockRateQuoter) FetchRates(ctx context.Context, q shipping.RateQuery) (shipping.RateResult, error) {
	args := m.Called(ctx, q)
	res, _ := args.Get(0).(shipping.RateResult)
	return res, args.Error(1)
}

func mustAddress(t *testing.T, postcode string) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress("1 Main St", "", "Springfield", postcode, "US")
	if err != nil {
		t.Fatalf("address: %v", err)
	}
	return addr
}

func mustItem(t *testing.T, sku string, qty int, price int64) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), sku, qty, price)
	if err != nil {
		t.Fatalf("line item: %v", err)
	}
	return item
}

// orderIn restores an order at version 1 in the given status.
func orderIn(t *testing.T, status order.Status, items ...order.LineItem) *order.Order {
	t.Helper()
	if len(items) == 0 {
		items = []order.LineItem{mustItem(t, "SKU-1", 2, 1500)}
	}
	o, err := order.RestoreOrder(order.Snapshot{
		ID:        kernel.NewUUID(),
		BuyerID:   kernel.NewUUID(),
		VendorID:  kernel.NewUUID(),
		Status:    status,
		Currency:  "USD",
		Address:   mustAddress(t, "12345"),
		Items:     items,
		Version:   1,
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("restore order: %v", err)
	}
	return o
}
