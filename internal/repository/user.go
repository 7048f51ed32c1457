package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Find(ctx context.Context, email string) (*entity.User, error)
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)
}

type userRepository struct {
	conn *sql.DB
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

// Save inserts a new account. An existing email is apperror.ErrAlreadyExists.
func (that *userRepository) Save(ctx context.Context, user *entity.User) error {
	if _, err := that.Find(ctx, user.Email); err == nil {
		return apperror.ErrAlreadyExists
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	query := `INSERT INTO users (email, username, password_hash) VALUES (?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, user.Email, user.Username, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("can't save user: %w", err)
	}

	return nil
}

func (that *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `UPDATE users SET username = ?, password_hash = ?, reset_token = ?, reset_expires = ? WHERE email = ?`

	result, err := that.conn.ExecContext(ctx, query,
		user.Username, user.PasswordHash, user.ResetToken, unixOrZero(user.ResetExpiresAt), user.Email)
	if err != nil {
		return fmt.Errorf("can't update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't update user: %w", err)
	}

	if affected == 0 {
		return apperror.ErrNotFound
	}

	return nil
}

func (that *userRepository) Find(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT email, username, password_hash, reset_token, reset_expires FROM users WHERE email = ?`

	return that.scan(that.conn.QueryRowContext(ctx, query, email))
}

func (that *userRepository) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, apperror.ErrNotFound
	}

	query := `SELECT email, username, password_hash, reset_token, reset_expires FROM users WHERE reset_token = ?`

	return that.scan(that.conn.QueryRowContext(ctx, query, token))
}

func (that *userRepository) scan(row *sql.Row) (*entity.User, error) {
	var (
		user         entity.User
		resetExpires int64
	)

	err := row.Scan(&user.Email, &user.Username, &user.PasswordHash, &user.ResetToken, &resetExpires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	if resetExpires > 0 {
		user.ResetExpiresAt = time.Unix(resetExpires, 0)
	}

	return &user, nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
