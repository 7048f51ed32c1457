package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/room"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"
)

const maxRoomIDAttempts = 5

var ErrNoFreeRoomID = errors.New("no free room id")

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	DeleteByID(ctx context.Context, id string) error
}

type roomRepo interface {
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	DeleteByID(ctx context.Context, id string) error
	ListIdle(ctx context.Context, before time.Time) ([]string, error)
}

type stateStore interface {
	Load(ctx context.Context, roomID string) (*entity.Match, int64, error)
	Save(ctx context.Context, roomID string, match *entity.Match) (int64, error)
	Commit(ctx context.Context, roomID string, baseVersion int64, match *entity.Match) (int64, error)
	Remove(ctx context.Context, roomID string) error
	Attach(ctx context.Context, roomID string, onMatch room.OnMatch) (func(), error)
}

type botService interface {
	ChooseMove(board entity.Board, self, opponent string) (int, error)
}

// RoomState is a room together with its current match.
type RoomState struct {
	Room    *entity.Room
	Match   *entity.Match
	Version int64
}

type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	roomRepo   roomRepo
	states     stateStore
	bot        botService

	maxRounds int
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, roomRepo roomRepo, states stateStore, bot botService, maxRounds int) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		roomRepo:   roomRepo,
		states:     states,
		bot:        bot,

		maxRounds: maxRounds,
	}
}

// StartMatch opens a new room in the given mode with the player as X. A
// player already seated somewhere leaves that room first.
func (that *GameManager) StartMatch(ctx context.Context, playerID, mode string) (*RoomState, error) {
	if !entity.IsValidMode(mode) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMode, mode)
	}

	player, err := that.getOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.InRoom() {
		if err = that.leave(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to leave previous room: %w", err)
		}
	}

	roomID, err := that.freeRoomID(ctx)
	if err != nil {
		return nil, err
	}

	newRoom := entity.NewRoom(roomID, mode)

	player.Mark = entity.PlayerX
	player.RoomID = roomID
	newRoom.Players = []*entity.Player{player}

	if newRoom.IsWithBot() {
		newRoom.Players = append(newRoom.Players, entity.NewBotPlayer(roomID, entity.PlayerO))
	}

	match := entity.NewMatch(that.maxRounds)

	version, err := that.states.Save(ctx, roomID, match)
	if err != nil {
		return nil, fmt.Errorf("failed to save match: %w", err)
	}

	if err = that.updateRoom(ctx, newRoom); err != nil {
		return nil, err
	}

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	that.logger.Info("match started", "method", "StartMatch", "room_id", roomID, "mode", mode)

	return &RoomState{Room: newRoom, Match: match, Version: version}, nil
}

// JoinRoom seats the player in an online room that still has a free mark,
// normally O. A room whose host left hands X to the newcomer.
func (that *GameManager) JoinRoom(ctx context.Context, playerID, roomID string) (*RoomState, error) {
	existingRoom, err := that.getRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	player, err := that.getOrCreatePlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if _, seated := existingRoom.PlayerByID(player.ID); seated {
		return that.roomState(ctx, existingRoom)
	}

	mark, free := existingRoom.FreeMark()
	if !existingRoom.IsOnline() || existingRoom.IsFull() || !free {
		return nil, fmt.Errorf("%w: room id %s", apperror.ErrRoomFull, roomID)
	}

	if player.InRoom() {
		if err = that.leave(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to leave previous room: %w", err)
		}
	}

	player.Mark = mark
	player.RoomID = existingRoom.ID
	existingRoom.Players = append(existingRoom.Players, player)
	existingRoom.Touch()

	if err = that.updateRoom(ctx, existingRoom); err != nil {
		return nil, err
	}

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	return that.roomState(ctx, existingRoom)
}

// MakeMove plays the cell for the player. In a local room the player plays
// whichever mark is to move; against the bot the reply is played in the
// same commit.
func (that *GameManager) MakeMove(ctx context.Context, playerID string, cell int) (*RoomState, error) {
	player, existingRoom, err := that.seat(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if !existingRoom.IsReady() {
		return nil, apperror.ErrWaitingForPeer
	}

	match, version, err := that.states.Load(ctx, existingRoom.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match: %w", err)
	}

	mark := player.Mark
	if existingRoom.IsLocal() {
		mark = match.CurrentPlayer
	}

	next, err := tictactoe.TryMove(match, cell, mark)
	if err != nil {
		return nil, err
	}

	if bot, ok := existingRoom.Bot(); ok && next.IsInProgress() && next.CurrentPlayer == bot.Mark {
		if next, err = that.botMove(next, bot.Mark); err != nil {
			return nil, err
		}
	}

	return that.commit(ctx, existingRoom, version, next)
}

// NextRound advances a resolved round.
func (that *GameManager) NextRound(ctx context.Context, playerID string) (*RoomState, error) {
	return that.transition(ctx, playerID, tictactoe.NextRound)
}

// RestartRound clears the board of the round in progress.
func (that *GameManager) RestartRound(ctx context.Context, playerID string) (*RoomState, error) {
	return that.transition(ctx, playerID, tictactoe.RestartRound)
}

// ResetMatch starts the match over with zeroed scores.
func (that *GameManager) ResetMatch(ctx context.Context, playerID string) (*RoomState, error) {
	_, existingRoom, err := that.seat(ctx, playerID)
	if err != nil {
		return nil, err
	}

	match := entity.NewMatch(that.maxRounds)

	version, err := that.states.Save(ctx, existingRoom.ID, match)
	if err != nil {
		return nil, fmt.Errorf("failed to save match: %w", err)
	}

	existingRoom.Touch()
	if err = that.updateRoom(ctx, existingRoom); err != nil {
		return nil, err
	}

	return &RoomState{Room: existingRoom, Match: match, Version: version}, nil
}

// LeaveRoom releases the player's seat. The room is removed once no human
// player is left in it.
func (that *GameManager) LeaveRoom(ctx context.Context, playerID string) error {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get player: %w", err)
	}

	if !player.InRoom() {
		return nil
	}

	return that.leave(ctx, player)
}

// GetRoom returns the room and its current match.
func (that *GameManager) GetRoom(ctx context.Context, roomID string) (*RoomState, error) {
	existingRoom, err := that.getRoomByID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return that.roomState(ctx, existingRoom)
}

// GetPlayerRoom returns the room the player is seated in.
func (that *GameManager) GetPlayerRoom(ctx context.Context, playerID string) (*RoomState, error) {
	_, existingRoom, err := that.seat(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return that.roomState(ctx, existingRoom)
}

// Watch subscribes to the match updates of the room until the returned
// func is called.
func (that *GameManager) Watch(ctx context.Context, roomID string, onMatch room.OnMatch) (func(), error) {
	if _, err := that.getRoomByID(ctx, roomID); err != nil {
		return nil, err
	}

	detach, err := that.states.Attach(ctx, roomID, onMatch)
	if err != nil {
		return nil, fmt.Errorf("failed to watch room: %w", err)
	}

	return detach, nil
}

// SweepIdle removes the rooms untouched since before and returns how many
// were removed.
func (that *GameManager) SweepIdle(ctx context.Context, before time.Time) (int, error) {
	log := that.logger.With("method", "SweepIdle")

	ids, err := that.roomRepo.ListIdle(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to list idle rooms: %w", err)
	}

	removed := 0
	for _, id := range ids {
		existingRoom, err := that.roomRepo.GetByID(ctx, id)
		if err != nil && !errors.Is(err, apperror.ErrRoomNotFound) {
			log.Error("failed to get idle room", "room_id", id, "error", err)
			continue
		}

		if existingRoom == nil {
			existingRoom = &entity.Room{ID: id}
		} else if !existingRoom.UpdatedAt.Before(before) {
			log.Debug("room touched since listing, skipping", "room_id", id)
			continue
		}

		that.deleteRoom(ctx, existingRoom)
		removed++
	}

	return removed, nil
}

// freeRoomID draws room ids until one is not taken by a live room.
func (that *GameManager) freeRoomID(ctx context.Context) (string, error) {
	for range maxRoomIDAttempts {
		id, err := pkg.GenerateRoomID()
		if err != nil {
			return "", err
		}

		_, err = that.roomRepo.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrRoomNotFound) {
			return id, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check room id: %w", err)
		}
	}

	return "", ErrNoFreeRoomID
}

func (that *GameManager) transition(ctx context.Context, playerID string, step func(*entity.Match) (*entity.Match, error)) (*RoomState, error) {
	_, existingRoom, err := that.seat(ctx, playerID)
	if err != nil {
		return nil, err
	}

	match, version, err := that.states.Load(ctx, existingRoom.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match: %w", err)
	}

	next, err := step(match)
	if err != nil {
		return nil, err
	}

	return that.commit(ctx, existingRoom, version, next)
}

func (that *GameManager) commit(ctx context.Context, existingRoom *entity.Room, baseVersion int64, match *entity.Match) (*RoomState, error) {
	version, err := that.states.Commit(ctx, existingRoom.ID, baseVersion, match)
	if err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}

	existingRoom.Touch()
	if err = that.updateRoom(ctx, existingRoom); err != nil {
		return nil, err
	}

	return &RoomState{Room: existingRoom, Match: match, Version: version}, nil
}

func (that *GameManager) botMove(match *entity.Match, mark string) (*entity.Match, error) {
	cell, err := that.bot.ChooseMove(match.Board, mark, entity.ToggleMark(mark))
	if err != nil {
		return nil, fmt.Errorf("failed to choose bot move: %w", err)
	}

	next, err := tictactoe.TryMove(match, cell, mark)
	if err != nil {
		return nil, fmt.Errorf("failed to play bot move: %w", err)
	}

	return next, nil
}

// seat returns the player and the room they are seated in.
func (that *GameManager) seat(ctx context.Context, playerID string) (*entity.Player, *entity.Room, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, nil, apperror.ErrNoActiveRoom
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get player: %w", err)
	}

	if !player.InRoom() {
		return nil, nil, apperror.ErrNoActiveRoom
	}

	existingRoom, err := that.getRoomByID(ctx, player.RoomID)
	if err != nil {
		return nil, nil, err
	}

	return player, existingRoom, nil
}

func (that *GameManager) roomState(ctx context.Context, existingRoom *entity.Room) (*RoomState, error) {
	match, version, err := that.states.Load(ctx, existingRoom.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match: %w", err)
	}

	return &RoomState{Room: existingRoom, Match: match, Version: version}, nil
}

func (that *GameManager) leave(ctx context.Context, player *entity.Player) error {
	existingRoom, err := that.roomRepo.GetByID(ctx, player.RoomID)
	if err != nil && !errors.Is(err, apperror.ErrRoomNotFound) {
		return fmt.Errorf("failed to get room: %w", err)
	}

	if existingRoom != nil {
		existingRoom.Players = slices.DeleteFunc(existingRoom.Players, func(p *entity.Player) bool {
			return p.ID == player.ID
		})

		if hasHumans(existingRoom) {
			existingRoom.Touch()
			if err = that.updateRoom(ctx, existingRoom); err != nil {
				return err
			}
		} else {
			that.deleteRoom(ctx, existingRoom)
		}
	}

	player.Mark = ""
	player.RoomID = ""

	return that.updatePlayer(ctx, player)
}

// deleteRoom removes the room and its match and releases every seated
// player. Failures are logged, the sweep goes on.
func (that *GameManager) deleteRoom(ctx context.Context, existingRoom *entity.Room) {
	log := that.logger.With("method", "deleteRoom", "room_id", existingRoom.ID)

	if err := that.states.Remove(ctx, existingRoom.ID); err != nil {
		log.Error("failed to delete match", "error", err)
	}

	if err := that.roomRepo.DeleteByID(ctx, existingRoom.ID); err != nil {
		log.Error("failed to delete room", "error", err)
	}

	for _, player := range existingRoom.Players {
		if player.IsBot() {
			continue
		}

		if err := that.playerRepo.DeleteByID(ctx, player.ID); err != nil {
			log.Error("failed to release player", "player_id", player.ID, "error", err)
		}
	}

	log.Info("room deleted")
}

func hasHumans(existingRoom *entity.Room) bool {
	return slices.ContainsFunc(existingRoom.Players, func(p *entity.Player) bool {
		return !p.IsBot()
	})
}

func (that *GameManager) getOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		player = &entity.Player{ID: id}
		if err = that.updatePlayer(ctx, player); err != nil {
			return nil, err
		}

		return player, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getRoomByID(ctx context.Context, id string) (*entity.Room, error) {
	existingRoom, err := that.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return existingRoom, nil
}

func (that *GameManager) updateRoom(ctx context.Context, existingRoom *entity.Room) error {
	if err := that.roomRepo.CreateOrUpdate(ctx, existingRoom); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	return nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
