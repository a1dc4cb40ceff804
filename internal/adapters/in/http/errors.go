package http

import (
	"errors"
	"net/http"

	"transferflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    int       `json:"code"`
	Kind    errs.Kind `json:"kind"`
	Message string    `json:"message"`
}

// statusFor maps an error category to its HTTP status.
func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindStateConflict:
		return http.StatusConflict
	case errs.KindTransport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, err error) error {
	kind := errs.KindOf(err)
	code := statusFor(kind)

	message := err.Error()
	if code == http.StatusInternalServerError {
		ctx.Logger().Errorf("%s %s: %v", ctx.Request().Method, ctx.Path(), err)
		message = http.StatusText(code)
	}
	return ctx.JSON(code, ErrorResponse{Code: code, Kind: kind, Message: message})
}

func badRequest(ctx echo.Context, message string, err error) error {
	if err != nil {
		message += ": " + err.Error()
	}
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Kind:    errs.KindValidation,
		Message: message,
	})
}

// errorHandler renders echo's own errors (unknown route, bad method) in the same shape.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := errs.KindInternal
		switch he.Code {
		case http.StatusNotFound:
			kind = errs.KindNotFound
		case http.StatusBadRequest:
			kind = errs.KindValidation
		}
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		_ = ctx.JSON(he.Code, ErrorResponse{Code: he.Code, Kind: kind, Message: message})
		return
	}
	_ = writeError(ctx, err)
}
