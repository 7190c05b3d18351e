package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/generated/servers"
	"shipping/internal/pkg/errs"
)

// StatusFor maps a use case error onto the HTTP status returned to the client.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, commands.ErrInvalidAddress),
		errors.Is(err, commands.ErrDistanceUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeUseCaseError(ctx echo.Context, err error) error {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx.Request().Context(), "request failed",
			"component", "http",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		return writeError(ctx, status, http.StatusText(status))
	}
	return writeError(ctx, status, err.Error())
}

func writeError(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: message,
	})
}

// ErrorHandler renders errors escaping the handlers, such as unknown routes or malformed
// path parameters, in the same body shape as use case errors.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http")

	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		} else {
			logger.ErrorContext(ctx.Request().Context(), "unhandled error",
				"method", ctx.Request().Method,
				"path", ctx.Path(),
				"error", err)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(status)
		} else {
			writeErr = writeError(ctx, status, message)
		}
		if writeErr != nil {
			logger.ErrorContext(ctx.Request().Context(), "write error response", "error", writeErr)
		}
	}
}
