package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kinshipapp/kinship/internal/common"
	"github.com/kinshipapp/kinship/internal/logging"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps known
// domain errors to deterministic status codes, logs unexpected errors, and
// renders the {"error": "<message>"} envelope.
func NewHTTPErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, logger, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, logger logging.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, common.ErrInvalidIdentifier),
		errors.Is(err, common.ErrInvalidCode),
		errors.Is(err, common.ErrInvalidProfile):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, "not found"
	}

	logger.Error(c.Request().Context(), "unhandled error",
		"method", c.Request().Method, "path", c.Path(), "error", err)
	return http.StatusInternalServerError, "internal server error"
}
