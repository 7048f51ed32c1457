package entity

import "time"

type User struct {
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	ResetToken     string    `json:"-"`
	ResetExpiresAt time.Time `json:"-"`
}

func (that *User) CanReset(token string, now time.Time) bool {
	return that.ResetToken != "" && that.ResetToken == token && now.Before(that.ResetExpiresAt)
}
