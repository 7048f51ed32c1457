package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/snapshot"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

type roomService interface {
	GetRoom(ctx context.Context, roomID string) (*usecase.RoomState, error)
}

type roomPreview struct {
	ID      string            `json:"id"`
	Mode    string            `json:"mode"`
	Players int               `json:"players"`
	Ready   bool              `json:"ready"`
	State   snapshot.Snapshot `json:"state"`
}

type RoomHandler struct {
	logger *slog.Logger
	rooms  roomService
}

func NewRoomHandler(logger *slog.Logger, rooms roomService) *RoomHandler {
	return &RoomHandler{
		logger: logger.With("component", "room_handler"),
		rooms:  rooms,
	}
}

// GetRoom previews a shared room link: its mode, seats and current match.
func (that *RoomHandler) GetRoom(ctx echo.Context) error {
	state, err := that.rooms.GetRoom(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		that.logger.Debug("room preview failed", "room_id", ctx.Param("id"), "error", err)
		return writeError(ctx, err)
	}

	humans := 0
	for _, player := range state.Room.Players {
		if !player.IsBot() {
			humans++
		}
	}

	return ctx.JSON(http.StatusOK, roomPreview{
		ID:      state.Room.ID,
		Mode:    state.Room.Mode,
		Players: humans,
		Ready:   state.Room.IsReady(),
		State:   snapshot.FromMatch(state.Match, state.Version),
	})
}
