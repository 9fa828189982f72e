// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Gender codes stored on a user record.
const (
	GenderMale        = "M"
	GenderFemale      = "F"
	GenderUnspecified = "N"
)

// User represents a registered account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:30;not null" json:"username"`
	Fullname  string    `gorm:"size:100;not null" json:"fullname"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Gender    string    `gorm:"size:1;default:N" json:"gender"`
	Avatar    string    `gorm:"not null" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRef is the projection of a user attached to profiles and posts.
type UserRef struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// Ref returns the public projection of the user.
func (u *User) Ref() UserRef {
	return UserRef{
		ID:       u.ID,
		Username: u.Username,
		Fullname: u.Fullname,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}
