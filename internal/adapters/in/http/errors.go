package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func sendError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

// statusFor maps the error taxonomy onto HTTP status codes. Timeouts are
// checked before generic upstream failures since an UpstreamError matches
// both when its cause timed out.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotModifiable),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, errs.ErrUpstreamFailure), errors.Is(err, errs.ErrRateLimited):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes err with its mapped status. Internal errors hide their
// message behind fallback.
func handleError(ctx echo.Context, err error, fallback string) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		return sendError(ctx, code, fallback)
	}
	return sendError(ctx, code, err.Error())
}
