package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/coupon"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewApplyCouponCommand(t *testing.T) {
	t.Run("should create command and trim code", func(t *testing.T) {
		cmd, err := commands.NewApplyCouponCommand(kernel.NewUUID(), "  SAVE10 ")

		require.NoError(t, err)
		assert.Equal(t, "SAVE10", cmd.Code())
	})

	t.Run("should reject blank code", func(t *testing.T) {
		_, err := commands.NewApplyCouponCommand(kernel.NewUUID(), "   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestApplyCouponCommandHandler_Handle(t *testing.T) {
	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	menuItem := testMenuItem(restaurantID, kernel.NewUUID())

	newHandler := func(uow commands.CartUoW) commands.ApplyCouponCommandHandler {
		factory := new(MockCartUoWFactory)
		factory.On("Create").Return(uow).Once()
		return commands.NewApplyCouponCommandHandler(
			factory, &stubLocker{}, defaultLocations(t), defaultCharges())
	}

	t.Run("should apply coupon and persist discounted totals", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewApplyCouponCommand(customerID, "SAVE10")
		require.NoError(t, err)

		existing := cartWithItem(t, customerID, restaurantID, menuItem, 2)
		voucher, err := coupon.RestoreCoupon(kernel.NewUUID(), "SAVE10", 10, nil, nil, nil, true)
		require.NoError(t, err)

		cartRepo := new(MockCartRepository)
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(existing, nil).Once()
		cartRepo.On("Update", mock.Anything, existing).Return(nil).Once()

		couponRepo := new(MockCouponRepository)
		couponRepo.On("GetByCode", mock.Anything, "SAVE10").Return(voucher, nil).Once()

		uow := new(MockCartUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo).Once()
		uow.On("CouponRepository").Return(couponRepo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := newHandler(uow)

		result, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, result.Applied)
		// 200 subtotal, 10 GST, 20 delivery, 10 platform, minus 20 coupon.
		assert.InDelta(t, 20.0, result.Totals.CouponDiscount, 1e-9)
		assert.InDelta(t, 220.0, result.Totals.FinalAmount, 1e-9)
		cartRepo.AssertExpectations(t)
	})

	t.Run("should decline inactive coupon without persisting", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewApplyCouponCommand(customerID, "SAVE10")
		require.NoError(t, err)

		existing := cartWithItem(t, customerID, restaurantID, menuItem, 2)
		voucher, err := coupon.RestoreCoupon(kernel.NewUUID(), "SAVE10", 10, nil, nil, nil, false)
		require.NoError(t, err)

		cartRepo := new(MockCartRepository)
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(existing, nil).Once()

		couponRepo := new(MockCouponRepository)
		couponRepo.On("GetByCode", mock.Anything, "SAVE10").Return(voucher, nil).Once()

		uow := new(MockCartUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo).Once()
		uow.On("CouponRepository").Return(couponRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := newHandler(uow)

		result, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, result.Applied)
		assert.Equal(t, services.ReasonCouponInactive, result.Reason)
		assert.True(t, existing.AppliedCoupon().IsZero())
		cartRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should decline coupon below minimum cart value", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewApplyCouponCommand(customerID, "BIG50")
		require.NoError(t, err)

		existing := cartWithItem(t, customerID, restaurantID, menuItem, 2)
		minimum := 500.0
		voucher, err := coupon.RestoreCoupon(kernel.NewUUID(), "BIG50", 50, nil, &minimum, nil, true)
		require.NoError(t, err)

		cartRepo := new(MockCartRepository)
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(existing, nil).Once()

		couponRepo := new(MockCouponRepository)
		couponRepo.On("GetByCode", mock.Anything, "BIG50").Return(voucher, nil).Once()

		uow := new(MockCartUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo).Once()
		uow.On("CouponRepository").Return(couponRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := newHandler(uow)

		result, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, result.Applied)
		assert.Equal(t, services.ReasonMinimumNotMet, result.Reason)
		assert.InDelta(t, 0.0, result.Totals.CouponDiscount, 1e-9)
		cartRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should surface unknown code as not found", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewApplyCouponCommand(customerID, "NOPE")
		require.NoError(t, err)

		existing := cartWithItem(t, customerID, restaurantID, menuItem, 1)

		cartRepo := new(MockCartRepository)
		cartRepo.On("GetByCustomer", mock.Anything, customerID).Return(existing, nil).Once()

		couponRepo := new(MockCouponRepository)
		couponRepo.On("GetByCode", mock.Anything, "NOPE").
			Return(nil, errs.NewObjectNotFoundError("coupon", "NOPE")).Once()

		uow := new(MockCartUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("CartRepository").Return(cartRepo).Once()
		uow.On("CouponRepository").Return(couponRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		handler := newHandler(uow)

		_, err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
