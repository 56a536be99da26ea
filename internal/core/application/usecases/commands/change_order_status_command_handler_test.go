package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand(t *testing.T) {
	t.Run("should accept decision statuses", func(t *testing.T) {
		for _, target := range []string{"Accepted", "Rejected", "Cancelled"} {
			cmd, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), target)
			require.NoError(t, err, "target %q", target)
			assert.Equal(t, target, cmd.Target().String())
		}
	})

	t.Run("should reject statuses outside vendor control", func(t *testing.T) {
		for _, target := range []string{"Pending", "Picked", "Delivered", "Unknown", ""} {
			_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), target)
			require.Error(t, err, "target %q", target)
		}
	})
}

func TestChangeOrderStatusCommandHandler_Handle(t *testing.T) {
	newHandler := func(uow commands.OrderUoW, publisher *MockEventPublisher) commands.ChangeOrderStatusCommandHandler {
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()
		return commands.NewChangeOrderStatusCommandHandler(factory, publisher, discardLogger())
	}

	pendingOrder := func(t *testing.T, orderID kernel.UUID) *order.Order {
		t.Helper()
		o := acceptedOrder(t, orderID, kernel.NewUUID())
		restored, err := order.RestoreOrder(
			o.ID(), o.CustomerID(), o.RestaurantID(), o.AddressID(), o.PaymentMethod(),
			o.Lines(), o.Totals(), o.RestaurantLocation(), o.CustomerLocation(),
			order.Pending, order.DeliveryPending, nil,
		)
		require.NoError(t, err)
		return restored
	}

	t.Run("should accept pending order with guarded write", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		o := pendingOrder(t, orderID)

		cmd, err := commands.NewChangeOrderStatusCommand(orderID, "Accepted")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, orderID).Return(o, nil).Once()
		orderRepo.On("UpdateGuarded", mock.Anything, o, order.Pending, order.DeliveryPending).
			Return(nil).Once()

		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		publisher := new(MockEventPublisher)
		publisher.On("OrderStatusChanged", mock.Anything, o).Return(nil).Once()

		handler := newHandler(uow, publisher)

		require.NoError(t, handler.Handle(ctx, cmd))
		assert.Equal(t, order.Accepted, o.Status())
		orderRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("should cancel open offers when the order is rejected", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		o := pendingOrder(t, orderID)

		cmd, err := commands.NewChangeOrderStatusCommand(orderID, "Rejected")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, orderID).Return(o, nil).Once()
		orderRepo.On("UpdateGuarded", mock.Anything, o, order.Pending, order.DeliveryPending).
			Return(nil).Once()

		assignmentRepo := new(MockAssignmentRepository)
		assignmentRepo.On("CancelPendingByOrder", mock.Anything, orderID).Return(nil).Once()

		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		uow.On("AssignmentRepository").Return(assignmentRepo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		publisher := new(MockEventPublisher)
		publisher.On("OrderStatusChanged", mock.Anything, o).Return(nil).Once()

		handler := newHandler(uow, publisher)

		require.NoError(t, handler.Handle(ctx, cmd))
		assert.Equal(t, order.Rejected, o.Status())
		assignmentRepo.AssertExpectations(t)
	})

	t.Run("should not commit when the offer sweep fails", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		o := pendingOrder(t, orderID)

		cmd, err := commands.NewChangeOrderStatusCommand(orderID, "Cancelled")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, orderID).Return(o, nil).Once()
		orderRepo.On("UpdateGuarded", mock.Anything, o, order.Pending, order.DeliveryPending).
			Return(nil).Once()

		assignmentRepo := new(MockAssignmentRepository)
		assignmentRepo.On("CancelPendingByOrder", mock.Anything, orderID).
			Return(errs.NewDependencyFailureError("database", assert.AnError)).Once()

		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		uow.On("AssignmentRepository").Return(assignmentRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := newHandler(uow, new(MockEventPublisher))

		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrDependencyFailed)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject decision on settled order", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		o := acceptedOrder(t, orderID, kernel.NewUUID())

		cmd, err := commands.NewChangeOrderStatusCommand(orderID, "Rejected")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, orderID).Return(o, nil).Once()

		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := newHandler(uow, new(MockEventPublisher))

		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should surface lost guarded write as invalid transition", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		o := pendingOrder(t, orderID)

		cmd, err := commands.NewChangeOrderStatusCommand(orderID, "Cancelled")
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", mock.Anything, orderID).Return(o, nil).Once()
		orderRepo.On("UpdateGuarded", mock.Anything, o, order.Pending, order.DeliveryPending).
			Return(errs.NewInvalidTransitionError("order", "Accepted", "cancel")).Once()

		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := newHandler(uow, new(MockEventPublisher))

		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
	})
}
