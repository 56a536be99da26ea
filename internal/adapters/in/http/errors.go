package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps application errors onto the HTTP surface. Validation and
// malformed-value errors are the caller's fault, lost races and stale
// decisions are conflicts, and essential collaborator failures surface as a
// bad gateway.
func writeError(ctx echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, cart.ErrItemNotInCart):
		return respondError(ctx, http.StatusNotFound, err)
	case errors.Is(err, errs.ErrAlreadyHandled),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, commands.ErrRiderBusy),
		errors.Is(err, commands.ErrCouponNoLongerValid):
		return respondError(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrDependencyFailed):
		return respondError(ctx, http.StatusBadGateway, err)
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrQuantityIsInvalid),
		errors.Is(err, commands.ErrCartIsEmpty):
		return respondError(ctx, http.StatusBadRequest, err)
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}

func respondError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
