// Package room keeps a match in step with the shared room store.
package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/snapshot"
)

// Store holds one snapshot per room and notifies subscribers on every write.
// Write and CompareAndSwap return the stored snapshot with its new version.
// A missing room is apperror.ErrRoomNotFound, a lost race apperror.ErrStaleVersion.
type Store interface {
	Read(ctx context.Context, roomID string) (snapshot.Snapshot, error)
	Write(ctx context.Context, roomID string, snap snapshot.Snapshot) (snapshot.Snapshot, error)
	CompareAndSwap(ctx context.Context, roomID string, baseVersion int64, snap snapshot.Snapshot) (snapshot.Snapshot, error)
	Subscribe(ctx context.Context, roomID string, onChange func(payload []byte)) (func(), error)
	Delete(ctx context.Context, roomID string) error
}

// OnMatch receives every valid state pushed for a room.
type OnMatch func(match *entity.Match, version int64)

type Adapter struct {
	logger *slog.Logger
	store  Store
}

func NewAdapter(logger *slog.Logger, store Store) *Adapter {
	return &Adapter{
		logger: logger.With("component", "room_adapter"),
		store:  store,
	}
}

// Load returns the current match of the room and its version.
func (that *Adapter) Load(ctx context.Context, roomID string) (*entity.Match, int64, error) {
	snap, err := that.store.Read(ctx, roomID)
	if err != nil {
		return nil, 0, syncError("read", err)
	}

	match, err := snapshot.Apply(snap)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: room %s: %w", apperror.ErrSyncFailure, roomID, err)
	}

	return match, snap.Version, nil
}

// Save overwrites the room state regardless of its version.
func (that *Adapter) Save(ctx context.Context, roomID string, match *entity.Match) (int64, error) {
	stored, err := that.store.Write(ctx, roomID, snapshot.FromMatch(match, 0))
	if err != nil {
		return 0, syncError("write", err)
	}

	return stored.Version, nil
}

// Commit writes the match only if the room is still at baseVersion.
func (that *Adapter) Commit(ctx context.Context, roomID string, baseVersion int64, match *entity.Match) (int64, error) {
	stored, err := that.store.CompareAndSwap(ctx, roomID, baseVersion, snapshot.FromMatch(match, baseVersion))
	if err != nil {
		return 0, syncError("commit", err)
	}

	return stored.Version, nil
}

func (that *Adapter) Remove(ctx context.Context, roomID string) error {
	if err := that.store.Delete(ctx, roomID); err != nil {
		return syncError("delete", err)
	}

	return nil
}

// Attach subscribes to the room. Malformed snapshots are logged and dropped.
// Once the returned detach func returns, onMatch is not called again.
// onMatch must not call detach itself.
func (that *Adapter) Attach(ctx context.Context, roomID string, onMatch OnMatch) (func(), error) {
	log := that.logger.With("method", "Attach", "room_id", roomID)

	var (
		mu       sync.Mutex
		detached bool
	)

	unsubscribe, err := that.store.Subscribe(ctx, roomID, func(payload []byte) {
		snap, err := snapshot.Decode(payload)
		if err != nil {
			log.Warn("dropping undecodable snapshot", "error", err)
			return
		}

		match, err := snapshot.Apply(snap)
		if err != nil {
			log.Warn("dropping malformed snapshot", "version", snap.Version, "error", err)
			return
		}

		mu.Lock()
		defer mu.Unlock()

		if detached {
			return
		}

		onMatch(match, snap.Version)
	})
	if err != nil {
		return nil, syncError("subscribe", err)
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			mu.Lock()
			detached = true
			mu.Unlock()

			unsubscribe()
		})
	}, nil
}

func syncError(op string, err error) error {
	if errors.Is(err, apperror.ErrRoomNotFound) || errors.Is(err, apperror.ErrInvalidMove) {
		return err
	}

	return fmt.Errorf("%w: failed to %s room state: %w", apperror.ErrSyncFailure, op, err)
}
