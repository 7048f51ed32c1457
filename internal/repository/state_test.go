package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/room"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/snapshot"
	"github.com/rocketscienceinc/tictactoe-rooms/testing/suite"
)

const roomID = "12345678"

var _ room.Store = (*StateRepository)(nil)

func TestStateRepository_Read(t *testing.T) {
	t.Run("Read_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		stateRepo := NewStateRepository(st.Storage)

		// When: an unknown room is read
		_, err := stateRepo.Read(ctx, roomID)

		// Then: the room is reported missing
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Read_Malformed", func(t *testing.T) {
		ctx, st := suite.New(t)

		stateRepo := NewStateRepository(st.Storage)

		// Given: garbage stored under the state key
		require.NoError(t, st.Storage.Set(ctx, stateKey(roomID), "board", 0).Err())

		// When: the room is read
		_, err := stateRepo.Read(ctx, roomID)

		// Then: the snapshot is malformed
		require.ErrorIs(t, err, snapshot.ErrMalformedSnapshot)
	})
}

func TestStateRepository_Write(t *testing.T) {
	ctx, st := suite.New(t)

	stateRepo := NewStateRepository(st.Storage)

	// Given: a fresh match snapshot
	snap := snapshot.FromMatch(entity.NewMatch(entity.DefaultMaxRounds), 0)

	// When: it is written twice
	first, err := stateRepo.Write(ctx, roomID, snap)
	require.NoError(t, err)
	second, err := stateRepo.Write(ctx, roomID, snap)
	require.NoError(t, err)

	// Then: every write bumps the version
	assert.Equal(t, int64(1), first.Version)
	assert.Equal(t, int64(2), second.Version)

	stored, err := stateRepo.Read(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, second, stored)
}

func TestStateRepository_CompareAndSwap(t *testing.T) {
	ctx, st := suite.New(t)

	stateRepo := NewStateRepository(st.Storage)

	// Given: a stored snapshot at version 1
	snap := snapshot.FromMatch(entity.NewMatch(entity.DefaultMaxRounds), 0)
	base, err := stateRepo.Write(ctx, roomID, snap)
	require.NoError(t, err)

	moved := snap
	moved.Board = []string{"", "", "", "", entity.PlayerX, "", "", "", ""}
	moved.CurrentPlayer = entity.PlayerO

	// When: a swap is made against the current version
	stored, err := stateRepo.CompareAndSwap(ctx, roomID, base.Version, moved)

	// Then: it succeeds with the next version
	require.NoError(t, err)
	assert.Equal(t, base.Version+1, stored.Version)

	// When: a second swap reuses the old base version
	_, err = stateRepo.CompareAndSwap(ctx, roomID, base.Version, snap)

	// Then: it is rejected as stale and the state is kept
	require.ErrorIs(t, err, apperror.ErrStaleVersion)

	current, err := stateRepo.Read(ctx, roomID)
	require.NoError(t, err)
	assert.Equal(t, stored, current)
}

func TestStateRepository_Subscribe(t *testing.T) {
	ctx, st := suite.New(t)

	stateRepo := NewStateRepository(st.Storage)

	// Given: a subscriber on the room
	var (
		mu       sync.Mutex
		payloads [][]byte
	)

	unsubscribe, err := stateRepo.Subscribe(ctx, roomID, func(payload []byte) {
		mu.Lock()
		defer mu.Unlock()

		payloads = append(payloads, payload)
	})
	require.NoError(t, err)

	// When: the room is written
	written, err := stateRepo.Write(ctx, roomID, snapshot.FromMatch(entity.NewMatch(entity.DefaultMaxRounds), 0))
	require.NoError(t, err)

	// Then: the subscriber receives the stored snapshot
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(payloads) == 1
	}, 5*time.Second, 10*time.Millisecond)

	mu.Lock()
	received, err := snapshot.Decode(payloads[0])
	mu.Unlock()
	require.NoError(t, err)
	assert.Equal(t, written, received)

	// When: the subscriber leaves and the room is written again
	unsubscribe()
	_, err = stateRepo.Write(ctx, roomID, snapshot.FromMatch(entity.NewMatch(entity.DefaultMaxRounds), 0))
	require.NoError(t, err)

	// Then: nothing more arrives
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()

	assert.Len(t, payloads, 1)
}

func TestStateRepository_Delete(t *testing.T) {
	ctx, st := suite.New(t)

	stateRepo := NewStateRepository(st.Storage)

	// Given: a stored snapshot
	_, err := stateRepo.Write(ctx, roomID, snapshot.FromMatch(entity.NewMatch(entity.DefaultMaxRounds), 0))
	require.NoError(t, err)

	// When: the room state is deleted
	require.NoError(t, stateRepo.Delete(ctx, roomID))

	// Then: reading it reports the room missing
	_, err = stateRepo.Read(ctx, roomID)
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)
}
