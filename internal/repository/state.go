package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/snapshot"
)

const maxWriteRetries = 3

// StateRepository stores one match snapshot per room and publishes every
// write on the room's update channel.
type StateRepository struct {
	client *redis.Client
}

func NewStateRepository(client *redis.Client) *StateRepository {
	return &StateRepository{
		client: client,
	}
}

func stateKey(roomID string) string {
	return "room:" + roomID + ":state"
}

func updatesChannel(roomID string) string {
	return "room:" + roomID + ":updates"
}

func (that *StateRepository) Read(ctx context.Context, roomID string) (snapshot.Snapshot, error) {
	return read(ctx, that.client, roomID)
}

// Write replaces the snapshot with the next version of the room.
func (that *StateRepository) Write(ctx context.Context, roomID string, snap snapshot.Snapshot) (snapshot.Snapshot, error) {
	for range maxWriteRetries {
		stored, err := that.swap(ctx, roomID, snap, func(int64) error {
			return nil
		})
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		return stored, err
	}

	return snapshot.Snapshot{}, fmt.Errorf("failed to write room state: %w", redis.TxFailedErr)
}

// CompareAndSwap writes the snapshot only while the room is at baseVersion.
func (that *StateRepository) CompareAndSwap(ctx context.Context, roomID string, baseVersion int64, snap snapshot.Snapshot) (snapshot.Snapshot, error) {
	stored, err := that.swap(ctx, roomID, snap, func(current int64) error {
		if current != baseVersion {
			return apperror.ErrStaleVersion
		}
		return nil
	})
	if errors.Is(err, redis.TxFailedErr) {
		return snapshot.Snapshot{}, apperror.ErrStaleVersion
	}

	return stored, err
}

// Subscribe delivers the raw payload of every update until unsubscribe is
// called. The subscription outlives ctx, which only bounds its setup.
func (that *StateRepository) Subscribe(ctx context.Context, roomID string, onChange func(payload []byte)) (func(), error) {
	pubsub := that.client.Subscribe(ctx, updatesChannel(roomID))

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to room updates: %w", err)
	}

	messages := pubsub.Channel()
	done := make(chan struct{})

	go func() {
		defer close(done)

		for msg := range messages {
			onChange([]byte(msg.Payload))
		}
	}()

	return func() {
		_ = pubsub.Close()
		<-done
	}, nil
}

func (that *StateRepository) Delete(ctx context.Context, roomID string) error {
	if err := that.client.Del(ctx, stateKey(roomID)).Err(); err != nil {
		return fmt.Errorf("failed to delete room state: %w", err)
	}

	return nil
}

// swap runs check against the stored version inside a WATCH on the state key
// and, when it passes, stores and publishes the snapshot in one transaction.
func (that *StateRepository) swap(ctx context.Context, roomID string, snap snapshot.Snapshot, check func(current int64) error) (snapshot.Snapshot, error) {
	key := stateKey(roomID)

	var stored snapshot.Snapshot

	err := that.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := read(ctx, tx, roomID)
		switch {
		case errors.Is(err, apperror.ErrRoomNotFound):
			current = snapshot.Snapshot{}
		case errors.Is(err, snapshot.ErrMalformedSnapshot):
			// an unreadable state is overwritten, its version is lost
			current = snapshot.Snapshot{}
		case err != nil:
			return err
		}

		if err = check(current.Version); err != nil {
			return err
		}

		stored = snap
		stored.Version = current.Version + 1

		data, err := stored.Encode()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.Publish(ctx, updatesChannel(roomID), data)
			return nil
		})

		return err
	}, key)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("failed to store room state: %w", err)
	}

	return stored, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func read(ctx context.Context, client getter, roomID string) (snapshot.Snapshot, error) {
	response, err := client.Get(ctx, stateKey(roomID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return snapshot.Snapshot{}, apperror.ErrRoomNotFound
	}

	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("failed to get room state: %w", err)
	}

	snap, err := snapshot.Decode(response)
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("failed to decode room state: %w", err)
	}

	return snap, nil
}
