package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const (
	minPasswordLength = 6
	resetTokenTTL     = time.Hour
)

type UserService interface {
	Signup(ctx context.Context, email, username, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
	LoginExternal(ctx context.Context, email, username string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
}

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Find(ctx context.Context, email string) (*entity.User, error)
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)
}

// ResetNotifier delivers a password reset token to the account owner.
type ResetNotifier interface {
	NotifyReset(ctx context.Context, user *entity.User, token string) error
}

type userService struct {
	logger   *slog.Logger
	userRepo userRepo
	notifier ResetNotifier
	now      func() time.Time
}

func NewUserService(logger *slog.Logger, userRepo userRepo, notifier ResetNotifier) UserService {
	return &userService{
		logger:   logger,
		userRepo: userRepo,
		notifier: notifier,
		now:      time.Now,
	}
}

func (that *userService) Signup(ctx context.Context, email, username, password string) (*entity.User, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)

	if email == "" || username == "" || password == "" {
		return nil, apperror.ErrMissingFields
	}

	if len(password) < minPasswordLength {
		return nil, apperror.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}

	if err = that.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrAlreadyExists) {
			return nil, apperror.ErrEmailTaken
		}
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	return user, nil
}

func (that *userService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := that.userRepo.Find(ctx, normalizeEmail(email))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ErrBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	if user.PasswordHash == "" {
		return nil, apperror.ErrBadCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrBadCredentials
	}

	return user, nil
}

// LoginExternal returns the account of an identity verified by an external
// provider, creating it without a password on first login.
func (that *userService) LoginExternal(ctx context.Context, email, username string) (*entity.User, error) {
	email = normalizeEmail(email)

	user, err := that.userRepo.Find(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	user = &entity.User{Email: email, Username: username}
	if err = that.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	return user, nil
}

func (that *userService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := that.userRepo.Find(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	return user, nil
}

// RequestPasswordReset issues a one-time token for the account. Unknown
// emails are ignored so the caller cannot probe for accounts.
func (that *userService) RequestPasswordReset(ctx context.Context, email string) error {
	log := that.logger.With("method", "RequestPasswordReset")

	user, err := that.userRepo.Find(ctx, normalizeEmail(email))
	if errors.Is(err, apperror.ErrNotFound) {
		log.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not get user by email: %w", err)
	}

	token := uuid.NewString()
	user.ResetToken = token
	user.ResetExpiresAt = that.now().Add(resetTokenTTL)

	if err = that.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("could not save reset token: %w", err)
	}

	if err = that.notifier.NotifyReset(ctx, user, token); err != nil {
		return fmt.Errorf("could not deliver reset token: %w", err)
	}

	return nil
}

func (that *userService) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < minPasswordLength {
		return apperror.ErrWeakPassword
	}

	user, err := that.userRepo.FindByResetToken(ctx, token)
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("could not find reset token: %w", err)
	}

	if !user.CanReset(token, that.now()) {
		return apperror.ErrInvalidToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.ResetToken = ""
	user.ResetExpiresAt = time.Time{}

	if err = that.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("could not update password: %w", err)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// LogNotifier writes reset tokens to the log instead of sending mail.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "reset_notifier")}
}

func (that *LogNotifier) NotifyReset(_ context.Context, user *entity.User, token string) error {
	that.logger.Info("password reset token issued", "email", user.Email, "token", token)
	return nil
}
