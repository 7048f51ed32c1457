package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/testing/suite"
)

func TestRoomRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage)

		// Given: an online room with its host
		room := entity.NewRoom("12345678", entity.ModeOnline)
		room.Players = append(room.Players, &entity.Player{ID: "alice@example.com", Mark: entity.PlayerX, RoomID: room.ID})

		err := roomRepo.CreateOrUpdate(ctx, room)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedRoom, err := roomRepo.GetByID(ctx, room.ID)

		// Then: the retrieved room should match the saved room
		require.NoError(t, err)
		assert.Equal(t, room.ID, retrievedRoom.ID)
		assert.Equal(t, entity.ModeOnline, retrievedRoom.Mode)
		require.Len(t, retrievedRoom.Players, 1)
		assert.Equal(t, "alice@example.com", retrievedRoom.Players[0].ID)
		assert.False(t, retrievedRoom.IsReady())
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		roomRepo := NewRoomRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrievedRoom, err := roomRepo.GetByID(ctx, "99999999")

		// Then: an ErrRoomNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
		assert.Nil(t, retrievedRoom)
	})
}

func TestRoomRepository_ListIdle(t *testing.T) {
	ctx, st := suite.New(t)

	roomRepo := NewRoomRepository(st.Storage)

	// Given: one stale room and one fresh room
	now := time.Now()

	stale := entity.NewRoom("11111111", entity.ModeAI)
	stale.UpdatedAt = now.Add(-time.Hour)
	require.NoError(t, roomRepo.CreateOrUpdate(ctx, stale))

	fresh := entity.NewRoom("22222222", entity.ModeLocal)
	fresh.UpdatedAt = now
	require.NoError(t, roomRepo.CreateOrUpdate(ctx, fresh))

	// When: rooms idle for more than ten minutes are listed
	ids, err := roomRepo.ListIdle(ctx, now.Add(-10*time.Minute))

	// Then: only the stale room is returned
	require.NoError(t, err)
	assert.Equal(t, []string{"11111111"}, ids)

	// When: the stale room is deleted
	require.NoError(t, roomRepo.DeleteByID(ctx, stale.ID))

	// Then: it is neither stored nor listed
	_, err = roomRepo.GetByID(ctx, stale.ID)
	require.ErrorIs(t, err, apperror.ErrRoomNotFound)

	ids, err = roomRepo.ListIdle(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []string{"22222222"}, ids)
}
