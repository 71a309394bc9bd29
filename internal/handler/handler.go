package handler

import (
	"github.com/labstack/echo/v4"

	"schoolbook/internal/errors"
)

// MessageResponse is a plain confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// fail converts a domain error into the standard HTTP error shape.
func fail(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// badRequest is the response for unparseable or invalid request bodies.
func badRequest(msg, code string) *echo.HTTPError {
	httpErr := errors.NewHTTPError(400, msg, code)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
