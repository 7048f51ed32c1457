package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/snapshot"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

const (
	actionConnect      = "connect"
	actionMatchNew     = "match:new"
	actionRoomJoin     = "room:join"
	actionMatchMove    = "match:move"
	actionRoundNext    = "round:next"
	actionRoundRestart = "round:restart"
	actionMatchReset   = "match:reset"
	actionRoomLeave    = "room:leave"

	actionMatchState = "match:state"
	actionRoomUpdate = "room:update"
	actionError      = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type newMatchRequest struct {
	Mode string `json:"mode"`
}

type joinRoomRequest struct {
	RoomID string `json:"room_id"`
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type roomInfo struct {
	ID      string `json:"id"`
	Mode    string `json:"mode"`
	Players int    `json:"players"`
	Ready   bool   `json:"ready"`
}

// Payload is sent back for every action that places the player in a room.
type Payload struct {
	Player string             `json:"player"`
	Mark   string             `json:"mark,omitempty"`
	Room   *roomInfo          `json:"room,omitempty"`
	State  *snapshot.Snapshot `json:"state,omitempty"`
}

type statePayload struct {
	RoomID string            `json:"room_id"`
	State  snapshot.Snapshot `json:"state"`
}

type leavePayload struct {
	RoomID string `json:"room_id"`
	Player string `json:"player"`
}

type errorPayload struct {
	Action string `json:"action"`
	Kind   string `json:"kind"`
	Error  string `json:"error"`
}

func newRoomInfo(room *entity.Room) *roomInfo {
	humans := 0
	for _, player := range room.Players {
		if !player.IsBot() {
			humans++
		}
	}

	return &roomInfo{
		ID:      room.ID,
		Mode:    room.Mode,
		Players: humans,
		Ready:   room.IsReady(),
	}
}

func newPayload(playerID string, state *usecase.RoomState) Payload {
	payload := Payload{Player: playerID}
	if state == nil {
		return payload
	}

	if player, ok := state.Room.PlayerByID(playerID); ok {
		payload.Mark = player.Mark
	}

	snap := snapshot.FromMatch(state.Match, state.Version)

	payload.Room = newRoomInfo(state.Room)
	payload.State = &snap

	return payload
}
