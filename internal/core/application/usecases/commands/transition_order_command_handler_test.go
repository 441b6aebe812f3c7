package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewTransitionOrderCommand(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(kernel.NewUUID(), order.Paid, "", order.TransitionMetadata{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewTransitionOrderCommand(kernel.UUID{}, order.Paid, "user-1", order.TransitionMetadata{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	cmd, err := commands.NewTransitionOrderCommand(kernel.NewUUID(), order.Paid, "user-1",
		order.TransitionMetadata{Reason: "paid at counter"})
	require.NoError(t, err)
	assert.Equal(t, "paid at counter", cmd.Metadata().Reason)
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Paid)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Processing, "vendor-7", order.TransitionMetadata{})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	transitions := new(MockTransitionRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orders.On("Update", ctx, o).Return(nil).Once(),
		uow.On("TransitionRepository").Return(transitions).Once(),
		transitions.On("Add", ctx, mock.MatchedBy(func(tr *order.Transition) bool {
			return *tr.From() == order.Paid && tr.To() == order.Processing &&
				tr.Actor() == "vendor-7" && !tr.Automated() && tr.CreatedAt().Equal(testNow)
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, fixedClock)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, order.Processing, o.Status())
	orders.AssertExpectations(t)
	transitions.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Pending)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Shipped, "user-1", order.TransitionMetadata{})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, fixedClock)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, order.Pending, o.Status())
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Paid)
	cmd, err := commands.NewTransitionOrderCommand(o.ID(), order.Canceled, "user-1", order.TransitionMetadata{})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orders)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
		orders.On("Update", ctx, o).Return(errs.NewVersionConflictError("order", o.ID(), 1)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, fixedClock)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrVersionConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestTransitionOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderCommand(id, order.Paid, "user-1", order.TransitionMetadata{})
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orders).Once(),
		orders.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderID", id)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderCommandHandler(factory, fixedClock)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
}
