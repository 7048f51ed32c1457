package apperror

import (
	"errors"
	"fmt"
)

// Error categories surfaced to clients.
var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrRoomNotFound  = errors.New("room not found")
	ErrSyncFailure   = errors.New("sync failure")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
)

// Rejected moves. Each one is an ErrInvalidMove.
var (
	ErrMatchOver      = fmt.Errorf("%w: match is already over", ErrInvalidMove)
	ErrRoundResolved  = fmt.Errorf("%w: round is already resolved", ErrInvalidMove)
	ErrRoundNotOver   = fmt.Errorf("%w: round is still in progress", ErrInvalidMove)
	ErrNotYourTurn    = fmt.Errorf("%w: it's not your turn", ErrInvalidMove)
	ErrCellOccupied   = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)
	ErrInvalidCell    = fmt.Errorf("%w: invalid cell index", ErrInvalidMove)
	ErrStaleVersion   = fmt.Errorf("%w: room state changed, move is stale", ErrInvalidMove)
	ErrNoActiveRoom   = fmt.Errorf("%w: player is not in a room", ErrInvalidMove)
	ErrWaitingForPeer = fmt.Errorf("%w: waiting for opponent", ErrInvalidMove)
)

var (
	ErrRoomFull       = fmt.Errorf("%w: room already has two players", ErrBadRequest)
	ErrInvalidMode    = fmt.Errorf("%w: unknown game mode", ErrBadRequest)
	ErrMissingFields  = fmt.Errorf("%w: email, name and password are required", ErrBadRequest)
	ErrWeakPassword   = fmt.Errorf("%w: password should be at least 6 characters", ErrBadRequest)
	ErrEmailTaken     = fmt.Errorf("%w: email already in use", ErrAlreadyExists)
	ErrBadCredentials = fmt.Errorf("%w: wrong email or password", ErrUnauthorized)
	ErrInvalidToken   = fmt.Errorf("%w: invalid token", ErrUnauthorized)
)

const (
	KindInvalidMove  = "invalid_move"
	KindRoomNotFound = "room_not_found"
	KindSyncFailure  = "sync_failure"
	KindUnauthorized = "unauthorized"
	KindBadRequest   = "bad_request"
	KindConflict     = "conflict"
	KindInternal     = "internal"
)

// Kind maps an error to the category reported to clients.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidMove):
		return KindInvalidMove
	case errors.Is(err, ErrRoomNotFound):
		return KindRoomNotFound
	case errors.Is(err, ErrSyncFailure):
		return KindSyncFailure
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrBadRequest):
		return KindBadRequest
	case errors.Is(err, ErrAlreadyExists):
		return KindConflict
	default:
		return KindInternal
	}
}
