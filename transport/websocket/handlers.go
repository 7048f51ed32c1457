package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/snapshot"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleConnect", "player_id", conn.playerID)

	state, err := that.game.GetPlayerRoom(ctx, conn.playerID)
	if errors.Is(err, apperror.ErrNoActiveRoom) || errors.Is(err, apperror.ErrRoomNotFound) {
		conn.unwatch()
		return conn.send(msg.Action, newPayload(conn.playerID, nil))
	}
	if err != nil {
		return fmt.Errorf("failed to get player room: %w", err)
	}

	if err = that.attach(ctx, conn, state.Room.ID); err != nil {
		return err
	}

	log.Info("player reconnected to room", "room_id", state.Room.ID)

	return conn.send(msg.Action, newPayload(conn.playerID, state))
}

func (that *Server) handleNewMatch(ctx context.Context, conn *connection, msg *Message) error {
	var req newMatchRequest
	if err := decodePayload(msg, &req); err != nil {
		return err
	}

	state, err := that.game.StartMatch(ctx, conn.playerID, req.Mode)
	if err != nil {
		return err
	}

	if err = that.attach(ctx, conn, state.Room.ID); err != nil {
		return err
	}

	that.logger.Info("new match", "method", "handleNewMatch", "room_id", state.Room.ID, "mode", state.Room.Mode)

	return conn.send(msg.Action, newPayload(conn.playerID, state))
}

func (that *Server) handleJoinRoom(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleJoinRoom", "player_id", conn.playerID)

	var req joinRoomRequest
	if err := decodePayload(msg, &req); err != nil {
		return err
	}

	if req.RoomID == "" {
		return fmt.Errorf("%w: room_id is required", apperror.ErrBadRequest)
	}

	state, err := that.game.JoinRoom(ctx, conn.playerID, req.RoomID)
	if err != nil {
		return err
	}

	if err = that.attach(ctx, conn, state.Room.ID); err != nil {
		return err
	}

	if err = conn.send(msg.Action, newPayload(conn.playerID, state)); err != nil {
		return err
	}

	that.notifyRoom(state.Room, conn.playerID, func(player *entity.Player) (string, any) {
		return actionRoomUpdate, newPayload(player.ID, state)
	})

	log.Info("player joined room", "room_id", state.Room.ID)

	return nil
}

func (that *Server) handleMove(ctx context.Context, conn *connection, msg *Message) error {
	var req moveRequest
	if err := decodePayload(msg, &req); err != nil {
		return err
	}

	if req.Cell == nil {
		return apperror.ErrInvalidCell
	}

	state, err := that.game.MakeMove(ctx, conn.playerID, *req.Cell)
	if err != nil {
		return err
	}

	return that.afterTransition(ctx, conn, state)
}

func (that *Server) handleNextRound(ctx context.Context, conn *connection, _ *Message) error {
	state, err := that.game.NextRound(ctx, conn.playerID)
	if err != nil {
		return err
	}

	return that.afterTransition(ctx, conn, state)
}

func (that *Server) handleRestartRound(ctx context.Context, conn *connection, _ *Message) error {
	state, err := that.game.RestartRound(ctx, conn.playerID)
	if err != nil {
		return err
	}

	return that.afterTransition(ctx, conn, state)
}

func (that *Server) handleResetMatch(ctx context.Context, conn *connection, _ *Message) error {
	state, err := that.game.ResetMatch(ctx, conn.playerID)
	if err != nil {
		return err
	}

	return that.afterTransition(ctx, conn, state)
}

func (that *Server) handleLeaveRoom(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleLeaveRoom", "player_id", conn.playerID)

	previous, err := that.game.GetPlayerRoom(ctx, conn.playerID)
	if err != nil && !errors.Is(err, apperror.ErrNoActiveRoom) && !errors.Is(err, apperror.ErrRoomNotFound) {
		return fmt.Errorf("failed to get player room: %w", err)
	}

	if err = that.game.LeaveRoom(ctx, conn.playerID); err != nil {
		return err
	}

	conn.unwatch()

	if previous == nil {
		return conn.send(msg.Action, leavePayload{Player: conn.playerID})
	}

	payload := leavePayload{RoomID: previous.Room.ID, Player: conn.playerID}

	that.notifyRoom(previous.Room, conn.playerID, func(*entity.Player) (string, any) {
		return actionRoomLeave, payload
	})

	log.Info("player left room", "room_id", previous.Room.ID)

	return conn.send(msg.Action, payload)
}

// afterTransition makes sure the connection follows the room. Subscribed
// connections get the new state through the store push; otherwise it is
// sent right away.
func (that *Server) afterTransition(ctx context.Context, conn *connection, state *usecase.RoomState) error {
	if conn.watching(state.Room.ID) {
		return nil
	}

	if err := that.attach(ctx, conn, state.Room.ID); err != nil {
		return err
	}

	return conn.send(actionMatchState, statePayload{
		RoomID: state.Room.ID,
		State:  snapshot.FromMatch(state.Match, state.Version),
	})
}

// attach subscribes the connection to the room's match updates, dropping
// any subscription to a previous room.
func (that *Server) attach(ctx context.Context, conn *connection, roomID string) error {
	if conn.watching(roomID) {
		return nil
	}

	log := that.logger.With("method", "attach", "connection_id", conn.id, "room_id", roomID)

	detach, err := that.game.Watch(ctx, roomID, func(match *entity.Match, version int64) {
		payload := statePayload{
			RoomID: roomID,
			State:  snapshot.FromMatch(match, version),
		}

		if err := conn.send(actionMatchState, payload); err != nil {
			log.Warn("failed to push match state", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to attach to room: %w", err)
	}

	conn.watch(roomID, detach)

	return nil
}

// notifyRoom sends a message to every other human in the room connected to
// this server.
func (that *Server) notifyRoom(room *entity.Room, except string, build func(player *entity.Player) (string, any)) {
	log := that.logger.With("method", "notifyRoom", "room_id", room.ID)

	for _, player := range room.Players {
		if player.IsBot() || player.ID == except {
			continue
		}

		conn, ok := that.connectionOf(player.ID)
		if !ok {
			log.Debug("connection not found for player", "player_id", player.ID)
			continue
		}

		action, payload := build(player)
		if err := conn.send(action, payload); err != nil {
			log.Error("failed to notify player", "player_id", player.ID, "error", err)
		}
	}
}

func (that *Server) sendError(conn *connection, action string, err error) {
	kind := apperror.Kind(err)

	text := err.Error()
	if kind == apperror.KindInternal {
		text = "internal error"
	}

	if sendErr := conn.send(actionError, errorPayload{Action: action, Kind: kind, Error: text}); sendErr != nil {
		that.logger.Error("failed to send error response", "connection_id", conn.id, "error", sendErr)
	}
}

func decodePayload(msg *Message, target any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: payload is required", apperror.ErrBadRequest)
	}

	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("%w: malformed payload", apperror.ErrBadRequest)
	}

	return nil
}
