package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// seatTTL bounds how long a seat record outlives the last write to it.
const seatTTL = 24 * time.Hour

var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository keeps the seat of each identity: the room it sits in and
// the mark it plays there.
type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	DeleteByID(ctx context.Context, id string) error
}

type seatRepository struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &seatRepository{
		client: client,
	}
}

func playerKey(id string) string {
	return "player:" + id
}

// CreateOrUpdate stores the seat and restarts its expiry.
func (that *seatRepository) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	seatJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	if err = that.client.Set(ctx, playerKey(player.ID), seatJSON, seatTTL).Err(); err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	return nil
}

func (that *seatRepository) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	seatJSON, err := that.client.Get(ctx, playerKey(id)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrPlayerNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}

	seat := &entity.Player{}
	if err = json.Unmarshal(seatJSON, seat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player %s: %w", id, err)
	}

	return seat, nil
}

func (that *seatRepository) DeleteByID(ctx context.Context, id string) error {
	if err := that.client.Del(ctx, playerKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}

	return nil
}
