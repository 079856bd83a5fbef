package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/StevenKehrli/Trelnex-sub007/internal/query"
	"github.com/StevenKehrli/Trelnex-sub007/internal/storage"
)

// ErrorResponse represents the data that the server will return on any given call
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrMissingParameter is returned when a required query parameter is absent
var ErrMissingParameter = errors.New("missing query parameter")

func (r *Router) errorResponse(basemsg string, err error) *echo.HTTPError {
	msg := fmt.Sprintf("%s: %s", basemsg, err.Error())
	httpstatus := http.StatusInternalServerError

	switch {
	case
		errors.Is(err, query.ErrInvalidArgument),
		errors.Is(err, ErrMissingParameter):
		httpstatus = http.StatusBadRequest
	case
		errors.Is(err, query.ErrResourceNotFound),
		errors.Is(err, query.ErrScopeNotFound),
		errors.Is(err, query.ErrRoleNotFound):
		httpstatus = http.StatusNotFound
	case
		errors.Is(err, query.ErrResourceAlreadyExists),
		errors.Is(err, query.ErrScopeAlreadyExists),
		errors.Is(err, query.ErrRoleAlreadyExists):
		httpstatus = http.StatusConflict
	case
		errors.Is(err, storage.ErrTooManyRequests):
		httpstatus = http.StatusServiceUnavailable
	default:
		msg = basemsg
	}

	return echo.NewHTTPError(httpstatus, msg).SetInternal(err)
}

// queryParam fetches a required query parameter.
func queryParam(c echo.Context, name string) (string, error) {
	value := c.QueryParam(name)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, name)
	}

	return value, nil
}
