package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rooms/testing/suite"
)

type recordingNotifier struct {
	tokens map[string]string
}

func (that *recordingNotifier) NotifyReset(_ context.Context, user *entity.User, token string) error {
	that.tokens[user.Email] = token
	return nil
}

func newTestUserService(t *testing.T) (context.Context, *userService, *recordingNotifier) {
	t.Helper()

	ctx, accounts := suite.NewAccounts(t)

	notifier := &recordingNotifier{tokens: make(map[string]string)}

	userSvc, ok := NewUserService(suite.NewLogger(), repository.NewUserRepository(accounts), notifier).(*userService)
	require.True(t, ok)

	return ctx, userSvc, notifier
}

func TestUserService_Signup(t *testing.T) {
	t.Run("Signup and Login", func(t *testing.T) {
		ctx, userSvc, _ := newTestUserService(t)

		// When: a user signs up with a mixed case email
		user, err := userSvc.Signup(ctx, " Alice@Example.com ", "alice", "secret1")
		require.NoError(t, err)

		// Then: the email is normalized and the password is not stored in clear
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEqual(t, "secret1", user.PasswordHash)

		// Then: the user can log in
		loggedIn, err := userSvc.Login(ctx, "alice@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "alice", loggedIn.Username)
	})

	t.Run("Signup rejects bad input", func(t *testing.T) {
		ctx, userSvc, _ := newTestUserService(t)

		_, err := userSvc.Signup(ctx, "", "alice", "secret1")
		require.ErrorIs(t, err, apperror.ErrMissingFields)

		_, err = userSvc.Signup(ctx, "alice@example.com", "alice", "12345")
		require.ErrorIs(t, err, apperror.ErrWeakPassword)
		require.ErrorIs(t, err, apperror.ErrBadRequest)
	})

	t.Run("Signup with a taken email", func(t *testing.T) {
		ctx, userSvc, _ := newTestUserService(t)

		// Given: an existing account
		_, err := userSvc.Signup(ctx, "alice@example.com", "alice", "secret1")
		require.NoError(t, err)

		// When: the email is used again
		_, err = userSvc.Signup(ctx, "alice@example.com", "other", "secret2")

		// Then: the signup is refused
		require.ErrorIs(t, err, apperror.ErrEmailTaken)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx, userSvc, _ := newTestUserService(t)

	_, err := userSvc.Signup(ctx, "alice@example.com", "alice", "secret1")
	require.NoError(t, err)

	// When: the password is wrong
	_, err = userSvc.Login(ctx, "alice@example.com", "wrong-password")

	// Then: the credentials are rejected
	require.ErrorIs(t, err, apperror.ErrBadCredentials)

	// When: the account does not exist
	_, err = userSvc.Login(ctx, "nobody@example.com", "secret1")

	// Then: the same error is returned
	require.ErrorIs(t, err, apperror.ErrBadCredentials)
}

func TestUserService_LoginExternal(t *testing.T) {
	ctx, userSvc, _ := newTestUserService(t)

	// When: an external identity logs in for the first time
	user, err := userSvc.LoginExternal(ctx, "carol@example.com", "")
	require.NoError(t, err)

	// Then: an account without password is created
	assert.Equal(t, "carol", user.Username)

	_, err = userSvc.Login(ctx, "carol@example.com", "")
	require.ErrorIs(t, err, apperror.ErrBadCredentials)

	// When: it logs in again
	again, err := userSvc.LoginExternal(ctx, "carol@example.com", "Carol")
	require.NoError(t, err)

	// Then: the existing account is returned
	assert.Equal(t, "carol", again.Username)
}

func TestUserService_PasswordReset(t *testing.T) {
	t.Run("Reset with a valid token", func(t *testing.T) {
		ctx, userSvc, notifier := newTestUserService(t)

		// Given: an account that requested a reset
		_, err := userSvc.Signup(ctx, "alice@example.com", "alice", "secret1")
		require.NoError(t, err)
		require.NoError(t, userSvc.RequestPasswordReset(ctx, "alice@example.com"))

		token := notifier.tokens["alice@example.com"]
		require.NotEmpty(t, token)

		// When: the password is reset with the token
		err = userSvc.ResetPassword(ctx, token, "secret2")
		require.NoError(t, err)

		// Then: only the new password works
		_, err = userSvc.Login(ctx, "alice@example.com", "secret1")
		require.ErrorIs(t, err, apperror.ErrBadCredentials)
		_, err = userSvc.Login(ctx, "alice@example.com", "secret2")
		require.NoError(t, err)

		// Then: the token cannot be used twice
		err = userSvc.ResetPassword(ctx, token, "secret3")
		require.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("Reset with an expired token", func(t *testing.T) {
		ctx, userSvc, notifier := newTestUserService(t)

		_, err := userSvc.Signup(ctx, "alice@example.com", "alice", "secret1")
		require.NoError(t, err)
		require.NoError(t, userSvc.RequestPasswordReset(ctx, "alice@example.com"))

		// Given: the token lifetime has passed
		userSvc.now = func() time.Time { return time.Now().Add(2 * resetTokenTTL) }

		// When: the password is reset
		err = userSvc.ResetPassword(ctx, notifier.tokens["alice@example.com"], "secret2")

		// Then: the token is refused
		require.ErrorIs(t, err, apperror.ErrInvalidToken)
	})

	t.Run("Reset for an unknown email", func(t *testing.T) {
		ctx, userSvc, notifier := newTestUserService(t)

		// When: a reset is requested for an unknown email
		err := userSvc.RequestPasswordReset(ctx, "nobody@example.com")

		// Then: nothing is sent and no error leaks
		require.NoError(t, err)
		assert.Empty(t, notifier.tokens)
	})
}
