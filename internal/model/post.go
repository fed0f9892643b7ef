package model

import "time"

// Post is an authored entry. Public controls default viewability; Tags is a
// freeform comma/space separated string matched by substring, not a
// normalized tag set.
type Post struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Public    bool      `gorm:"column:is_public;not null;default:true;index:idx_post_public" json:"public"`
	Tags      string    `gorm:"type:varchar(200)" json:"tags"`
	UserID    int64     `gorm:"not null;index:idx_post_author" json:"user_id"`
	CreatedAt time.Time `gorm:"index:idx_post_created" json:"created_at"`
}

func (Post) TableName() string { return "posts" }
