package room

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/snapshot"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/tictactoe"
)

var _ Store = (*memoryStore)(nil)

// memoryStore delivers notifications synchronously from the writing goroutine.
type memoryStore struct {
	mu          sync.Mutex
	snapshots   map[string]snapshot.Snapshot
	subscribers map[string]map[int]func([]byte)
	nextID      int
	err         error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		snapshots:   make(map[string]snapshot.Snapshot),
		subscribers: make(map[string]map[int]func([]byte)),
	}
}

func (that *memoryStore) Read(_ context.Context, roomID string) (snapshot.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.err != nil {
		return snapshot.Snapshot{}, that.err
	}

	snap, ok := that.snapshots[roomID]
	if !ok {
		return snapshot.Snapshot{}, apperror.ErrRoomNotFound
	}

	return snap, nil
}

func (that *memoryStore) Write(_ context.Context, roomID string, snap snapshot.Snapshot) (snapshot.Snapshot, error) {
	that.mu.Lock()
	if that.err != nil {
		that.mu.Unlock()
		return snapshot.Snapshot{}, that.err
	}
	snap.Version = that.snapshots[roomID].Version + 1
	that.snapshots[roomID] = snap
	that.mu.Unlock()

	data, err := snap.Encode()
	if err != nil {
		return snapshot.Snapshot{}, err
	}
	that.publish(roomID, data)

	return snap, nil
}

func (that *memoryStore) CompareAndSwap(ctx context.Context, roomID string, baseVersion int64, snap snapshot.Snapshot) (snapshot.Snapshot, error) {
	that.mu.Lock()
	current, ok := that.snapshots[roomID]
	that.mu.Unlock()

	if !ok {
		return snapshot.Snapshot{}, apperror.ErrRoomNotFound
	}
	if current.Version != baseVersion {
		return snapshot.Snapshot{}, apperror.ErrStaleVersion
	}

	return that.Write(ctx, roomID, snap)
}

func (that *memoryStore) Subscribe(_ context.Context, roomID string, onChange func([]byte)) (func(), error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.err != nil {
		return nil, that.err
	}

	that.nextID++
	id := that.nextID

	if that.subscribers[roomID] == nil {
		that.subscribers[roomID] = make(map[int]func([]byte))
	}
	that.subscribers[roomID][id] = onChange

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		delete(that.subscribers[roomID], id)
	}, nil
}

func (that *memoryStore) Delete(_ context.Context, roomID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.snapshots, roomID)

	return nil
}

func (that *memoryStore) publish(roomID string, payload []byte) {
	that.mu.Lock()
	subscribers := make([]func([]byte), 0, len(that.subscribers[roomID]))
	for _, onChange := range that.subscribers[roomID] {
		subscribers = append(subscribers, onChange)
	}
	that.mu.Unlock()

	for _, onChange := range subscribers {
		onChange(payload)
	}
}

func newTestAdapter(store Store) *Adapter {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return NewAdapter(logger, store)
}

type received struct {
	match   *entity.Match
	version int64
}

func TestAdapter_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(newMemoryStore())

	// Given: a match where X took the center
	match, err := tictactoe.TryMove(entity.NewMatch(entity.DefaultMaxRounds), 4, entity.PlayerX)
	require.NoError(t, err)

	// When: the match is saved and loaded back
	version, err := adapter.Save(ctx, "12345678", match)
	require.NoError(t, err)
	loaded, loadedVersion, err := adapter.Load(ctx, "12345678")
	require.NoError(t, err)

	// Then: the same match comes back at the first version
	assert.Equal(t, int64(1), version)
	assert.Equal(t, version, loadedVersion)
	assert.Equal(t, match, loaded)
}

func TestAdapter_Load(t *testing.T) {
	t.Run("room not found", func(t *testing.T) {
		adapter := newTestAdapter(newMemoryStore())

		// When: an unknown room is loaded
		_, _, err := adapter.Load(context.Background(), "00000000")

		// Then: the room is reported missing
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("malformed state", func(t *testing.T) {
		// Given: a stored snapshot with a short board
		store := newMemoryStore()
		store.snapshots["12345678"] = snapshot.Snapshot{Board: []string{"X"}, Version: 4}
		adapter := newTestAdapter(store)

		// When: the room is loaded
		_, _, err := adapter.Load(context.Background(), "12345678")

		// Then: it is a sync failure
		require.ErrorIs(t, err, apperror.ErrSyncFailure)
		require.ErrorIs(t, err, snapshot.ErrMalformedSnapshot)
	})

	t.Run("store failure", func(t *testing.T) {
		// Given: a store that cannot be reached
		store := newMemoryStore()
		store.err = errors.New("connection refused")
		adapter := newTestAdapter(store)

		// When: the room is loaded
		_, _, err := adapter.Load(context.Background(), "12345678")

		// Then: it is a sync failure
		require.ErrorIs(t, err, apperror.ErrSyncFailure)
	})
}

func TestAdapter_Commit(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(newMemoryStore())

	// Given: a saved match
	match := entity.NewMatch(entity.DefaultMaxRounds)
	base, err := adapter.Save(ctx, "12345678", match)
	require.NoError(t, err)

	// When: two moves are committed against the same base version
	first, err := tictactoe.TryMove(match, 4, entity.PlayerX)
	require.NoError(t, err)
	second, err := tictactoe.TryMove(match, 0, entity.PlayerX)
	require.NoError(t, err)

	version, err := adapter.Commit(ctx, "12345678", base, first)
	require.NoError(t, err)
	_, err = adapter.Commit(ctx, "12345678", base, second)

	// Then: the first one wins and the second one is a stale move
	assert.Equal(t, base+1, version)
	require.ErrorIs(t, err, apperror.ErrStaleVersion)
	require.ErrorIs(t, err, apperror.ErrInvalidMove)

	loaded, _, err := adapter.Load(ctx, "12345678")
	require.NoError(t, err)
	assert.Equal(t, first, loaded)
}

func TestAdapter_Attach(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	adapter := newTestAdapter(store)

	var got []received
	detach, err := adapter.Attach(ctx, "12345678", func(match *entity.Match, version int64) {
		got = append(got, received{match: match, version: version})
	})
	require.NoError(t, err)

	// When: a match is written
	match := entity.NewMatch(entity.DefaultMaxRounds)
	_, err = adapter.Save(ctx, "12345678", match)
	require.NoError(t, err)

	// Then: the subscriber receives it
	require.Len(t, got, 1)
	assert.Equal(t, match, got[0].match)
	assert.Equal(t, int64(1), got[0].version)

	// When: malformed payloads are published
	store.publish("12345678", []byte("not json"))
	store.publish("12345678", []byte(`{"board":["X"],"version":2}`))

	// Then: they are dropped
	assert.Len(t, got, 1)

	// When: the subscriber detaches and another write happens
	detach()
	detach()
	_, err = adapter.Save(ctx, "12345678", match)
	require.NoError(t, err)

	// Then: nothing more is delivered
	assert.Len(t, got, 1)
}

func TestAdapter_AttachOtherRoom(t *testing.T) {
	ctx := context.Background()
	adapter := newTestAdapter(newMemoryStore())

	// Given: a subscriber on one room
	calls := 0
	detach, err := adapter.Attach(ctx, "11111111", func(*entity.Match, int64) { calls++ })
	require.NoError(t, err)
	t.Cleanup(detach)

	// When: another room is written
	_, err = adapter.Save(ctx, "22222222", entity.NewMatch(entity.DefaultMaxRounds))
	require.NoError(t, err)

	// Then: the subscriber is not called
	assert.Zero(t, calls)
}
