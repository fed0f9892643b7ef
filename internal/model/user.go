package model

import "time"

// User is a registered account. Records are immutable after registration.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(80);uniqueIndex:ux_user_username;not null" json:"username"`
	Password  string    `gorm:"type:varchar(120);not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
