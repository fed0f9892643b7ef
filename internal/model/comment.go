package model

import "time"

// Comment is append-only: no update or delete exists, it only disappears when
// its post is removed.
type Comment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    int64     `gorm:"not null;index:idx_comment_author" json:"user_id"`
	PostID    int64     `gorm:"not null;index:idx_comment_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
