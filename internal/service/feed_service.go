package service

import (
	"context"

	"github.com/d60-Lab/microblog/internal/cache"
	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// AnonymousID is the viewer id of an unauthenticated caller.
const AnonymousID int64 = 0

// FeedService composes the post feeds and owns the visibility rule. Every
// feed is ordered newest-first with the post id ascending as tiebreak, so
// reruns over unchanged data return identical sequences.
type FeedService interface {
	// CanView reports whether the viewer may see the post: public posts are
	// visible to everyone, private posts only to their author.
	CanView(viewerID int64, p *model.Post) bool
	// GlobalFeed lists public posts only.
	GlobalFeed(ctx context.Context, page, pageSize int) ([]*model.Post, error)
	// FollowingFeed lists every post authored by users the viewer follows.
	// Visibility is NOT re-checked per post: a followed author's private
	// posts appear in the follower's feed. An empty follow set yields an
	// empty feed, not an error.
	FollowingFeed(ctx context.Context, viewerID int64, page, pageSize int) ([]*model.Post, error)
	// TagFeed lists posts whose tag string contains tag as a substring.
	// No visibility filter is applied.
	TagFeed(ctx context.Context, tag string, page, pageSize int) ([]*model.Post, error)
}

type feedService struct {
	posts   repository.PostRepository
	follows repository.FollowRepository
	fcache  *cache.FollowCache
}

func NewFeedService(posts repository.PostRepository, follows repository.FollowRepository, fcache *cache.FollowCache) FeedService {
	return &feedService{posts: posts, follows: follows, fcache: fcache}
}

func (s *feedService) CanView(viewerID int64, p *model.Post) bool {
	if p.Public {
		return true
	}
	return viewerID != AnonymousID && viewerID == p.UserID
}

func (s *feedService) GlobalFeed(ctx context.Context, page, pageSize int) ([]*model.Post, error) {
	offset, limit := pageBounds(page, pageSize)
	return s.posts.ListPublic(ctx, offset, limit)
}

func (s *feedService) FollowingFeed(ctx context.Context, viewerID int64, page, pageSize int) ([]*model.Post, error) {
	if viewerID == AnonymousID {
		return nil, ErrAuthRequired
	}
	ids, err := s.followedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	offset, limit := pageBounds(page, pageSize)
	return s.posts.ListByAuthors(ctx, ids, offset, limit)
}

func (s *feedService) TagFeed(ctx context.Context, tag string, page, pageSize int) ([]*model.Post, error) {
	offset, limit := pageBounds(page, pageSize)
	return s.posts.ListByTag(ctx, tag, offset, limit)
}

func (s *feedService) followedIDs(ctx context.Context, viewerID int64) ([]int64, error) {
	if ids, ok := s.fcache.FollowedIDs(ctx, viewerID); ok {
		return ids, nil
	}
	ids, err := s.follows.FollowedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	s.fcache.Store(ctx, viewerID, ids)
	return ids, nil
}
