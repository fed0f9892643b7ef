package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/cache"
	"github.com/d60-Lab/microblog/internal/repository"
)

// RelationshipService maintains the directed follow graph.
type RelationshipService interface {
	Follow(ctx context.Context, followerID, targetID int64) error
	Unfollow(ctx context.Context, followerID, targetID int64) error
	Following(ctx context.Context, userID int64, page, pageSize int) ([]int64, error)
	Followers(ctx context.Context, userID int64, page, pageSize int) ([]int64, error)
}

type relationshipService struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	fcache  *cache.FollowCache
}

func NewRelationshipService(users repository.UserRepository, follows repository.FollowRepository, fcache *cache.FollowCache) RelationshipService {
	return &relationshipService{users: users, follows: follows, fcache: fcache}
}

func (s *relationshipService) Follow(ctx context.Context, followerID, targetID int64) error {
	if followerID == 0 {
		return ErrAuthRequired
	}
	if followerID == targetID {
		return ErrSelfFollow
	}
	if _, err := s.users.GetByID(ctx, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	exists, err := s.follows.Exists(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFollowing
	}
	if err := s.follows.Create(ctx, followerID, targetID); err != nil {
		// concurrent follow of the same pair: the unique index fires and
		// the loser is no different from one caught by the pre-check
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFollowing
		}
		return err
	}
	s.fcache.Invalidate(ctx, followerID)
	return nil
}

func (s *relationshipService) Unfollow(ctx context.Context, followerID, targetID int64) error {
	if followerID == 0 {
		return ErrAuthRequired
	}
	n, err := s.follows.Delete(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFollowing
	}
	s.fcache.Invalidate(ctx, followerID)
	return nil
}

func (s *relationshipService) Following(ctx context.Context, userID int64, page, pageSize int) ([]int64, error) {
	offset, limit := pageBounds(page, pageSize)
	items, err := s.follows.ListFollowing(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]int64, len(items))
	for i, it := range items {
		res[i] = it.FollowedID
	}
	return res, nil
}

func (s *relationshipService) Followers(ctx context.Context, userID int64, page, pageSize int) ([]int64, error) {
	offset, limit := pageBounds(page, pageSize)
	items, err := s.follows.ListFollowers(ctx, userID, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]int64, len(items))
	for i, it := range items {
		res[i] = it.FollowerID
	}
	return res, nil
}

// pageBounds clamps paging parameters the way every list endpoint does.
func pageBounds(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return (page - 1) * pageSize, pageSize
}
