package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "should map object not found to 404",
			err:  errs.NewObjectNotFoundError("order", "some-id"),
			code: http.StatusNotFound,
		},
		{
			name: "should map item not in cart to 404",
			err:  cart.ErrItemNotInCart,
			code: http.StatusNotFound,
		},
		{
			name: "should map invalid transition to 409",
			err:  errs.NewInvalidTransitionError("order", "Delivered", "cancel"),
			code: http.StatusConflict,
		},
		{
			name: "should map already handled to 409",
			err:  errs.NewAlreadyHandledError("assignment", "some-id"),
			code: http.StatusConflict,
		},
		{
			name: "should map busy rider to 409",
			err:  commands.ErrRiderBusy,
			code: http.StatusConflict,
		},
		{
			name: "should map stale coupon to 409",
			err:  commands.ErrCouponNoLongerValid,
			code: http.StatusConflict,
		},
		{
			name: "should map dependency failure to 502",
			err:  errs.NewDependencyFailureError("payment gateway", errors.New("timeout")),
			code: http.StatusBadGateway,
		},
		{
			name: "should map invalid value to 400",
			err:  errs.NewValueIsInvalidError("quantity"),
			code: http.StatusBadRequest,
		},
		{
			name: "should map empty cart to 400",
			err:  commands.ErrCartIsEmpty,
			code: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			require.NoError(t, writeError(ctx, tt.err))

			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.err.Error())
		})
	}

	t.Run("should hide unclassified errors behind a generic 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		ctx := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		require.NoError(t, writeError(ctx, errors.New("connection reset by peer")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "internal server error")
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}
