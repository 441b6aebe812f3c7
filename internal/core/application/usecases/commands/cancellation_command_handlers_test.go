package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cancellation"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cancellationFixture struct {
	uow           *MockUoW
	factory       *MockCancellationUoWFactory
	orders        *MockOrderRepository
	transitions   *MockTransitionRepository
	cancellations *MockCancellationRepository
}

func newCancellationFixture(t *testing.T) cancellationFixture {
	t.Helper()
	ctx := t.Context()
	f := cancellationFixture{
		uow:           new(MockUoW),
		factory:       new(MockCancellationUoWFactory),
		orders:        new(MockOrderRepository),
		transitions:   new(MockTransitionRepository),
		cancellations: new(MockCancellationRepository),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", ctx).Return(nil)
	f.uow.On("Rollback", ctx).Return(nil)
	f.uow.On("OrderRepository").Return(f.orders)
	f.uow.On("TransitionRepository").Return(f.transitions)
	f.uow.On("CancellationRepository").Return(f.cancellations)
	return f
}

func approvedCancellation(t *testing.T, o *order.Order, refundType cancellation.RefundType, amount int64) *cancellation.Request {
	t.Helper()
	r, err := cancellation.NewRequest(kernel.NewUUID(), o.ID(), o.Total(), "changed mind", refundType, amount, testNow)
	require.NoError(t, err)
	require.NoError(t, r.Decide(true, testNow))
	return r
}

func TestRequestCancellationCommandHandler_Handle_RefundBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		refundType cancellation.RefundType
		amount     int64
		wantAmount int64
		wantErr    error
	}{
		{name: "full forces total", refundType: cancellation.RefundFull, amount: 1, wantAmount: 3000},
		{name: "none forces zero", refundType: cancellation.RefundNone, amount: 500, wantAmount: 0},
		{name: "partial at total", refundType: cancellation.RefundPartial, amount: 3000, wantAmount: 3000},
		{name: "partial minimum", refundType: cancellation.RefundPartial, amount: 1, wantAmount: 1},
		{name: "partial zero", refundType: cancellation.RefundPartial, amount: 0, wantErr: errs.ErrValueIsOutOfRange},
		{name: "partial above total", refundType: cancellation.RefundPartial, amount: 3001, wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			o := orderIn(t, order.Paid, mustItem(t, "SKU-1", 2, 1500))
			cmd, err := commands.NewRequestCancellationCommand(o.ID(), "changed mind", tt.refundType, tt.amount)
			require.NoError(t, err)

			f := newCancellationFixture(t)
			f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			f.cancellations.On("ListByOrder", ctx, o.ID()).Return([]*cancellation.Request{}, nil).Once()
			var stored *cancellation.Request
			f.cancellations.On("Add", ctx, mock.AnythingOfType("*cancellation.Request")).
				Run(func(args mock.Arguments) { stored = args.Get(1).(*cancellation.Request) }).
				Return(nil).Maybe()
			f.uow.On("Commit", ctx).Return(nil).Maybe()

			h := commands.NewRequestCancellationCommandHandler(f.factory, services.NewOrderGate(), fixedClock)
			id, err := h.Handle(ctx, cmd)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, errs.ErrValidation)
				f.uow.AssertNotCalled(t, "Commit", ctx)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, stored.ID(), id)
			assert.Equal(t, tt.wantAmount, stored.Refund().Amount())
			assert.Equal(t, "USD", stored.Refund().Currency())
			assert.Equal(t, cancellation.StatusPending, stored.Status())
		})
	}
}

func TestRequestCancellationCommandHandler_Handle_AfterProcessed(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Paid)
	processed := approvedCancellation(t, o, cancellation.RefundFull, 0)
	require.NoError(t, processed.MarkProcessed(testNow))

	cmd, err := commands.NewRequestCancellationCommand(o.ID(), "again", cancellation.RefundNone, 0)
	require.NoError(t, err)

	f := newCancellationFixture(t)
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.cancellations.On("ListByOrder", ctx, o.ID()).Return([]*cancellation.Request{processed}, nil).Once()

	h := commands.NewRequestCancellationCommandHandler(f.factory, services.NewOrderGate(), fixedClock)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotModifiable)
	f.cancellations.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestNewRequestCancellationCommand_Validation(t *testing.T) {
	_, err := commands.NewRequestCancellationCommand(kernel.NewUUID(), "", "store_credit", 0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestDecideCancellationCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Pending)
	r, err := cancellation.NewRequest(kernel.NewUUID(), o.ID(), o.Total(), "dup", cancellation.RefundNone, 0, testNow)
	require.NoError(t, err)

	f := newCancellationFixture(t)
	f.cancellations.On("Get", ctx, r.ID()).Return(r, nil).Twice()
	f.cancellations.On("Update", ctx, r).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := commands.NewDecideCancellationCommandHandler(f.factory, fixedClock)

	reject, err := commands.NewDecideCancellationCommand(r.ID(), false)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, reject))
	assert.Equal(t, cancellation.StatusRejected, r.Status())

	approve, err := commands.NewDecideCancellationCommand(r.ID(), true)
	require.NoError(t, err)
	require.ErrorIs(t, h.Handle(ctx, approve), errs.ErrInvalidState)
	f.uow.AssertNumberOfCalls(t, "Commit", 1)
}

func TestProcessCancellationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Processing, mustItem(t, "SKU-1", 2, 1500))
	r := approvedCancellation(t, o, cancellation.RefundPartial, 1200)
	cmd, err := commands.NewProcessCancellationCommand(r.ID())
	require.NoError(t, err)

	f := newCancellationFixture(t)
	refunds := new(MockRefundProcessor)
	mock.InOrder(
		f.cancellations.On("Get", ctx, r.ID()).Return(r, nil).Once(),
		f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		f.cancellations.On("ListByOrder", ctx, o.ID()).Return([]*cancellation.Request{r}, nil).Once(),
		refunds.On("Refund", ctx, o.ID(), r.ID(), r.Refund()).Return(nil).Once(),
		f.cancellations.On("Update", ctx, r).Return(nil).Once(),
		f.orders.On("Update", ctx, o).Return(nil).Once(),
		f.transitions.On("Add", ctx, mock.MatchedBy(func(tr *order.Transition) bool {
			md := tr.Metadata()
			return tr.To() == order.Canceled && tr.Automated() &&
				md.Reason == commands.CancellationProcessedReason &&
				md.Attributes["cancellation_id"] == r.ID().String()
		})).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
	)

	h := commands.NewProcessCancellationCommandHandler(f.factory, services.NewOrderGate(), refunds, fixedClock)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Canceled, o.Status())
	assert.True(t, r.IsProcessed())
	refunds.AssertExpectations(t)
	f.transitions.AssertExpectations(t)
	f.uow.AssertExpectations(t)

	err = services.NewOrderGate().EnsureModifiable(o, []*cancellation.Request{r})
	require.ErrorIs(t, err, errs.ErrNotModifiable)
}

func TestProcessCancellationCommandHandler_Handle_ZeroRefundSkipsProcessor(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Pending)
	r := approvedCancellation(t, o, cancellation.RefundNone, 0)
	cmd, err := commands.NewProcessCancellationCommand(r.ID())
	require.NoError(t, err)

	f := newCancellationFixture(t)
	refunds := new(MockRefundProcessor)
	f.cancellations.On("Get", ctx, r.ID()).Return(r, nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.cancellations.On("ListByOrder", ctx, o.ID()).Return([]*cancellation.Request{r}, nil).Once()
	f.cancellations.On("Update", ctx, r).Return(nil).Once()
	f.orders.On("Update", ctx, o).Return(nil).Once()
	f.transitions.On("Add", ctx, mock.AnythingOfType("*order.Transition")).Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	h := commands.NewProcessCancellationCommandHandler(f.factory, services.NewOrderGate(), refunds, fixedClock)
	require.NoError(t, h.Handle(ctx, cmd))
	refunds.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessCancellationCommandHandler_Handle_RefundFailure(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Paid)
	r := approvedCancellation(t, o, cancellation.RefundFull, 0)
	cmd, err := commands.NewProcessCancellationCommand(r.ID())
	require.NoError(t, err)

	f := newCancellationFixture(t)
	refunds := new(MockRefundProcessor)
	f.cancellations.On("Get", ctx, r.ID()).Return(r, nil).Once()
	f.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	f.cancellations.On("ListByOrder", ctx, o.ID()).Return([]*cancellation.Request{r}, nil).Once()
	refunds.On("Refund", ctx, o.ID(), r.ID(), r.Refund()).Return(errors.New("broker down")).Once()

	h := commands.NewProcessCancellationCommandHandler(f.factory, services.NewOrderGate(), refunds, fixedClock)
	require.Error(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Paid, o.Status())
	f.uow.AssertNotCalled(t, "Commit", ctx)
}

func TestProcessCancellationCommandHandler_Handle_NotApproved(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Paid)
	r, err := cancellation.NewRequest(kernel.NewUUID(), o.ID(), o.Total(), "x", cancellation.RefundNone, 0, testNow)
	require.NoError(t, err)
	cmd, err := commands.NewProcessCancellationCommand(r.ID())
	require.NoError(t, err)

	f := newCancellationFixture(t)
	f.cancellations.On("Get", ctx, r.ID()).Return(r, nil).Once()

	h := commands.NewProcessCancellationCommandHandler(f.factory, services.NewOrderGate(), new(MockRefundProcessor), fixedClock)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInvalidState)
}
