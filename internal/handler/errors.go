package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartattend/internal/errors"
)

// respondError converts a service error into an echo HTTP error carrying an
// ErrorResponse body. Unmapped errors are logged and reported as 500.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func invalidRequest() error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	})
}

func validationFailed(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

// MessageResponse is the body of operations that only report success.
type MessageResponse struct {
	Message string `json:"message"`
}
