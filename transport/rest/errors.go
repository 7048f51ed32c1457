package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// writeError answers with the status matching the error kind. Internal
// errors are not echoed back.
func writeError(ctx echo.Context, err error) error {
	kind := apperror.Kind(err)

	status := http.StatusInternalServerError
	message := "Internal Server Error"

	switch kind {
	case apperror.KindInvalidMove:
		status, message = http.StatusConflict, err.Error()
	case apperror.KindRoomNotFound:
		status, message = http.StatusNotFound, err.Error()
	case apperror.KindUnauthorized:
		status, message = http.StatusUnauthorized, err.Error()
	case apperror.KindBadRequest:
		status, message = http.StatusBadRequest, err.Error()
	case apperror.KindConflict:
		status, message = http.StatusConflict, err.Error()
	case apperror.KindSyncFailure:
		status, message = http.StatusServiceUnavailable, "room storage is unavailable, try again"
	}

	if errors.Is(err, apperror.ErrNotFound) {
		status, message = http.StatusNotFound, err.Error()
	}

	return ctx.JSON(status, errorResponse{Kind: kind, Message: message})
}
