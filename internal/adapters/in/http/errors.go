package http

import (
	"errors"
	"net/http"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/worker"
	"workshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the uniform JSON error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps a use-case error onto its HTTP status:
// permission failures to 403, missing objects to 404, workflow conflicts
// (turn, assignment, transitions, delete/cancel policy) to 409, validation
// failures to 400, anything else to 500.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, worker.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrNotYourTurn),
		errors.Is(err, order.ErrNotAssignee),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrConflictingState):
		status = http.StatusConflict
	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidStepDefinition),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

// respondBadRequest is the mapping for malformed request bodies and
// unparseable identifiers.
func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
