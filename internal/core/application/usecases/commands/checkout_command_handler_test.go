package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/coupon"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCheckoutCommand(t *testing.T) {
	t.Run("should create command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		cmd, err := commands.NewCheckoutCommand(orderID, kernel.NewUUID(), kernel.NewUUID(), "Online")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, orderID, cmd.OrderID())
		assert.Equal(t, order.OnlinePayment, cmd.PaymentMethod())
	})

	t.Run("should reject unknown payment method", func(t *testing.T) {
		_, err := commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Cheque")

		require.Error(t, err)
	})

	t.Run("should reject zero value command", func(t *testing.T) {
		var cmd commands.CheckoutCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrCheckoutCommandIsNotConstructed)
	})
}

func TestCheckoutCommandHandler_Handle(t *testing.T) {
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	menuItem := testMenuItem(restaurantID, kernel.NewUUID())

	newHandler := func(uow commands.CheckoutUoW, gateway *MockPaymentGateway, publisher *MockEventPublisher) commands.CheckoutCommandHandler {
		factory := new(MockCheckoutUoWFactory)
		factory.On("Create").Return(uow).Once()
		return commands.NewCheckoutCommandHandler(
			factory, &stubLocker{}, defaultLocations(t), defaultCharges(),
			gateway, publisher, discardLogger())
	}

	t.Run("should create order and clear cart for cash payment", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		cmd, err := commands.NewCheckoutCommand(orderID, customerID, kernel.NewUUID(), "COD")
		require.NoError(t, err)

		existing := cartWithItem(t, customerID, restaurantID, menuItem, 2)

		cartRepo := new(MockCartRepository)
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(existing, nil).Once()
		cartRepo.On("Update", mock.Anything, existing).Return(nil).Once()

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

		uow := new(MockCheckoutUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		gateway := new(MockPaymentGateway)
		publisher := new(MockEventPublisher)
		publisher.On("OrderCreated", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

		handler := newHandler(uow, gateway, publisher)

		result, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, orderID, result.OrderID)
		assert.InDelta(t, 240.0, result.Totals.FinalAmount, 1e-9)
		assert.True(t, existing.IsEmpty())
		gateway.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything, mock.Anything)
		orderRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("should capture payment for online orders", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()
		cmd, err := commands.NewCheckoutCommand(orderID, customerID, kernel.NewUUID(), "Online")
		require.NoError(t, err)

		existing := cartWithItem(t, customerID, restaurantID, menuItem, 2)

		cartRepo := new(MockCartRepository)
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(existing, nil).Once()
		cartRepo.On("Update", mock.Anything, existing).Return(nil).Once()

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

		uow := new(MockCheckoutUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo).Once()
		uow.On("OrderRepository").Return(orderRepo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		gateway := new(MockPaymentGateway)
		gateway.On("Capture", mock.Anything, orderID, 240.0).Return(nil).Once()
		publisher := new(MockEventPublisher)
		publisher.On("OrderCreated", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

		handler := newHandler(uow, gateway, publisher)

		_, err = handler.Handle(ctx, cmd)

		require.NoError(t, err)
		gateway.AssertExpectations(t)
	})

	t.Run("should fail checkout when payment capture fails", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), customerID, kernel.NewUUID(), "Online")
		require.NoError(t, err)

		existing := cartWithItem(t, customerID, restaurantID, menuItem, 2)

		cartRepo := new(MockCartRepository)
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(existing, nil).Once()

		uow := new(MockCheckoutUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		gateway := new(MockPaymentGateway)
		gateway.On("Capture", mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("card declined")).Once()

		handler := newHandler(uow, gateway, new(MockEventPublisher))

		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrDependencyFailed)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject empty cart", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), customerID, kernel.NewUUID(), "COD")
		require.NoError(t, err)

		empty, err := cart.NewCart(kernel.NewUUID(), customerID)
		require.NoError(t, err)

		cartRepo := new(MockCartRepository)
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(empty, nil).Once()

		uow := new(MockCheckoutUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := newHandler(uow, new(MockPaymentGateway), new(MockEventPublisher))

		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrCartIsEmpty)
	})

	t.Run("should reject checkout when applied coupon expired", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), customerID, kernel.NewUUID(), "COD")
		require.NoError(t, err)

		existing := cartWithItem(t, customerID, restaurantID, menuItem, 2)
		snapshot, err := coupon.RestoreSnapshot("SAVE10", 10, nil, nil)
		require.NoError(t, err)
		existing.ApplyCoupon(snapshot)

		expired := time.Now().Add(-time.Hour)
		voucher, err := coupon.RestoreCoupon(kernel.NewUUID(), "SAVE10", 10, nil, nil, &expired, true)
		require.NoError(t, err)

		cartRepo := new(MockCartRepository)
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(existing, nil).Once()

		couponRepo := new(MockCouponRepository)
		couponRepo.On("GetByCode", mock.Anything, "SAVE10").Return(voucher, nil).Once()

		uow := new(MockCheckoutUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo).Once()
		uow.On("CouponRepository").Return(couponRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := newHandler(uow, new(MockPaymentGateway), new(MockEventPublisher))

		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrCouponNoLongerValid)
	})
}
