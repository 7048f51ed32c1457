package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/testing/suite"
)

func newUserRepository(t *testing.T) (context.Context, UserRepository) {
	t.Helper()

	ctx, accounts := suite.NewAccounts(t)

	return ctx, NewUserRepository(accounts)
}

func TestUserRepository_Save(t *testing.T) {
	ctx, userRepo := newUserRepository(t)

	// Given: a new account
	user := &entity.User{
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: "hash",
	}

	// When: it is saved
	err := userRepo.Save(ctx, user)

	// Then: it can be found by email
	require.NoError(t, err)

	found, err := userRepo.Find(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user, found)

	// When: the same email is saved again
	err = userRepo.Save(ctx, user)

	// Then: it already exists
	require.ErrorIs(t, err, apperror.ErrAlreadyExists)
}

func TestUserRepository_Find(t *testing.T) {
	ctx, userRepo := newUserRepository(t)

	// When: an unknown email is looked up
	user, err := userRepo.Find(ctx, "nobody@example.com")

	// Then: it is not found
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Nil(t, user)
}

func TestUserRepository_Update(t *testing.T) {
	ctx, userRepo := newUserRepository(t)

	// Given: a stored account
	user := &entity.User{Email: "bob@example.com", Username: "bob", PasswordHash: "hash"}
	require.NoError(t, userRepo.Save(ctx, user))

	// When: a reset token is attached
	user.ResetToken = "token-1"
	user.ResetExpiresAt = time.Unix(time.Now().Add(time.Hour).Unix(), 0)
	require.NoError(t, userRepo.Update(ctx, user))

	// Then: the account is found by its token
	found, err := userRepo.FindByResetToken(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)
	assert.True(t, user.ResetExpiresAt.Equal(found.ResetExpiresAt))

	// Then: an empty token matches nothing
	_, err = userRepo.FindByResetToken(ctx, "")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	// When: an unknown account is updated
	err = userRepo.Update(ctx, &entity.User{Email: "nobody@example.com"})

	// Then: it is not found
	require.ErrorIs(t, err, apperror.ErrNotFound)
}
