package user

import (
	"time"
)

// User represents an account that owns tasks and comments.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null;type:text"`
	Email        string `gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string `gorm:"column:password;not null;type:text"`
	IsAdmin      bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Claims is the caller identity carried by a verified bearer token.
type Claims struct {
	UserID uint `json:"user_id"`
}

// Session is the result of a successful login.
type Session struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

// Profile is the public projection of a user. It never carries the password hash.
type Profile struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// ToProfile returns the public projection of u.
func (u *User) ToProfile() Profile {
	return Profile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}
