package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRooms struct {
	mu      sync.Mutex
	befores []time.Time
	removed int
	err     error
}

func (that *fakeRooms) SweepIdle(_ context.Context, before time.Time) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.befores = append(that.befores, before)

	return that.removed, that.err
}

func (that *fakeRooms) calls() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.befores)
}

func newTestSweeper(rooms roomSweeper, interval time.Duration) *RoomSweeper {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return NewRoomSweeper(logger, rooms, 30*time.Minute, interval)
}

func TestRoomSweeper_Sweep(t *testing.T) {
	t.Run("Uses the idle timeout as cutoff", func(t *testing.T) {
		// Given: a sweeper with a fixed clock
		rooms := &fakeRooms{removed: 2}
		sweeper := newTestSweeper(rooms, time.Minute)

		now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		sweeper.now = func() time.Time { return now }

		// When: a sweep runs
		removed := sweeper.Sweep(context.Background())

		// Then: rooms idle for more than 30 minutes are swept
		assert.Equal(t, 2, removed)
		require.Len(t, rooms.befores, 1)
		assert.Equal(t, now.Add(-30*time.Minute), rooms.befores[0])
	})

	t.Run("Reports nothing on failure", func(t *testing.T) {
		rooms := &fakeRooms{removed: 3, err: errors.New("redis down")}
		sweeper := newTestSweeper(rooms, time.Minute)

		// When: the sweep fails
		removed := sweeper.Sweep(context.Background())

		// Then: no room counts as removed
		assert.Zero(t, removed)
	})
}

func TestRoomSweeper_Start(t *testing.T) {
	// Given: a sweeper running every 50ms
	rooms := &fakeRooms{}
	sweeper := newTestSweeper(rooms, 50*time.Millisecond)

	// When: it is started
	require.NoError(t, sweeper.Start(context.Background()))

	// Then: the job runs repeatedly until stopped
	require.Eventually(t, func() bool {
		return rooms.calls() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, sweeper.Stop())
}
