package entity

import "strings"

const botIDPrefix = "bot:"

// Player binds an identity to a room and the mark it plays.
type Player struct {
	ID     string `json:"id"`
	Mark   string `json:"mark,omitempty"`
	RoomID string `json:"room_id,omitempty"`
}

func NewBotPlayer(roomID, mark string) *Player {
	return &Player{
		ID:     botIDPrefix + roomID,
		Mark:   mark,
		RoomID: roomID,
	}
}

func (that *Player) IsBot() bool {
	return strings.HasPrefix(that.ID, botIDPrefix)
}

func (that *Player) InRoom() bool {
	return that.RoomID != ""
}
