package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

type FollowRepository interface {
	// Create inserts the edge. A duplicate (follower, followed) pair hits
	// idx_follow_pair and surfaces as gorm.ErrDuplicatedKey; the service
	// layer owns turning that into a domain error.
	Create(ctx context.Context, followerID, followedID int64) error
	// Delete removes the edge and reports how many rows went away (0 or 1).
	Delete(ctx context.Context, followerID, followedID int64) (int64, error)
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	// FollowedIDs returns every id the user follows, unpaged; feed
	// composition needs the whole set.
	FollowedIDs(ctx context.Context, followerID int64) ([]int64, error)
	ListFollowing(ctx context.Context, followerID int64, offset, limit int) ([]*model.Follow, error)
	ListFollowers(ctx context.Context, followedID int64, offset, limit int) ([]*model.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, followerID, followedID int64) error {
	f := &model.Follow{FollowerID: followerID, FollowedID: followedID}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{})
	return res.RowsAffected, res.Error
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *followRepository) FollowedIDs(ctx context.Context, followerID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Order("id ASC").
		Pluck("followed_id", &ids).Error
	return ids, err
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID int64, offset, limit int) ([]*model.Follow, error) {
	var res []*model.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ?", followerID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *followRepository) ListFollowers(ctx context.Context, followedID int64, offset, limit int) ([]*model.Follow, error) {
	var res []*model.Follow
	err := r.db.WithContext(ctx).
		Where("followed_id = ?", followedID).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
