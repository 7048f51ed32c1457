package entity

import "time"

const (
	ModeLocal  = "local"
	ModeAI     = "ai"
	ModeOnline = "online"
)

// Room is the membership record of a match. The match state itself lives in
// the shared store as a snapshot.
type Room struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Players   []*Player `json:"players,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRoom(id, mode string) *Room {
	return &Room{
		ID:        id,
		Mode:      mode,
		UpdatedAt: time.Now(),
	}
}

func IsValidMode(mode string) bool {
	switch mode {
	case ModeLocal, ModeAI, ModeOnline:
		return true
	default:
		return false
	}
}

func (that *Room) IsOnline() bool {
	return that.Mode == ModeOnline
}

func (that *Room) IsWithBot() bool {
	return that.Mode == ModeAI
}

func (that *Room) IsLocal() bool {
	return that.Mode == ModeLocal
}

// IsReady reports whether both marks are covered. Local and bot rooms are
// ready as soon as they are created.
func (that *Room) IsReady() bool {
	if !that.IsOnline() {
		return true
	}
	return that.HasMark(PlayerX) && that.HasMark(PlayerO)
}

func (that *Room) HasMark(mark string) bool {
	for _, player := range that.Players {
		if player.Mark == mark {
			return true
		}
	}
	return false
}

// FreeMark returns the mark nobody in the room plays, X first.
func (that *Room) FreeMark() (string, bool) {
	for _, mark := range []string{PlayerX, PlayerO} {
		if !that.HasMark(mark) {
			return mark, true
		}
	}
	return "", false
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= 2 || (!that.IsOnline() && len(that.Players) >= 1)
}

func (that *Room) PlayerByID(id string) (*Player, bool) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, true
		}
	}
	return nil, false
}

func (that *Room) Bot() (*Player, bool) {
	for _, player := range that.Players {
		if player.IsBot() {
			return player, true
		}
	}
	return nil, false
}

func (that *Room) Touch() {
	that.UpdatedAt = time.Now()
}
