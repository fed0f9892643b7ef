package model

import "time"

// Follow is a directed edge: follower follows followed.
type Follow struct {
	ID         int64 `gorm:"primaryKey" json:"id"`
	FollowerID int64 `gorm:"not null;index:idx_follow_follower;index:idx_follow_pair,unique" json:"follower_id"`
	FollowedID int64 `gorm:"not null;index:idx_follow_followed;index:idx_follow_pair,unique" json:"followed_id"`
	// idx_follow_pair = (follower_id, followed_id); duplicate follows are
	// rejected by the index even when two requests race.
	CreatedAt time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }
