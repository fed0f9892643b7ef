package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
	"github.com/d60-Lab/microblog/internal/repository"
)

// PostUpdate carries the author-editable fields of a post.
type PostUpdate struct {
	Title   string
	Content string
	Public  bool
	Tags    string
}

// PostService owns post and comment lifecycle. Ownership checks live here,
// not in the handlers: only the author may update or delete a post.
type PostService interface {
	Create(ctx context.Context, authorID int64, upd PostUpdate) (*model.Post, error)
	// Get applies the visibility rule: a private post is only returned to
	// its author, everyone else gets ErrPrivatePost.
	Get(ctx context.Context, viewerID, postID int64) (*model.Post, error)
	Update(ctx context.Context, callerID, postID int64, upd PostUpdate) (*model.Post, error)
	// Delete removes the post and all its comments atomically.
	Delete(ctx context.Context, callerID, postID int64) error
	// AddComment requires the commenter to be able to view the post.
	AddComment(ctx context.Context, authorID, postID int64, content string) (*model.Comment, error)
	// ListComments is gated the same way as Get: comments on a private
	// post are only readable by its author.
	ListComments(ctx context.Context, viewerID, postID int64) ([]*model.Comment, error)
}

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	feeds    FeedService
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository, feeds FeedService) PostService {
	return &postService{posts: posts, comments: comments, feeds: feeds}
}

func (s *postService) Create(ctx context.Context, authorID int64, upd PostUpdate) (*model.Post, error) {
	if authorID == AnonymousID {
		return nil, ErrAuthRequired
	}
	p := &model.Post{
		Title:   upd.Title,
		Content: upd.Content,
		Public:  upd.Public,
		Tags:    upd.Tags,
		UserID:  authorID,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Get(ctx context.Context, viewerID, postID int64) (*model.Post, error) {
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !s.feeds.CanView(viewerID, p) {
		return nil, ErrPrivatePost
	}
	return p, nil
}

func (s *postService) Update(ctx context.Context, callerID, postID int64, upd PostUpdate) (*model.Post, error) {
	if callerID == AnonymousID {
		return nil, ErrAuthRequired
	}
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.UserID != callerID {
		return nil, ErrNotOwner
	}
	p.Title = upd.Title
	p.Content = upd.Content
	p.Public = upd.Public
	p.Tags = upd.Tags
	if err := s.posts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *postService) Delete(ctx context.Context, callerID, postID int64) error {
	if callerID == AnonymousID {
		return ErrAuthRequired
	}
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != callerID {
		return ErrNotOwner
	}
	if err := s.posts.DeleteWithComments(ctx, postID); err != nil {
		// lost a race with another delete of the same post
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

func (s *postService) AddComment(ctx context.Context, authorID, postID int64, content string) (*model.Comment, error) {
	if authorID == AnonymousID {
		return nil, ErrAuthRequired
	}
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !s.feeds.CanView(authorID, p) {
		return nil, ErrPrivatePost
	}
	c := &model.Comment{Content: content, UserID: authorID, PostID: postID}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *postService) ListComments(ctx context.Context, viewerID, postID int64) ([]*model.Comment, error) {
	p, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !s.feeds.CanView(viewerID, p) {
		return nil, ErrPrivatePost
	}
	return s.comments.ListByPost(ctx, postID)
}

func (s *postService) getPost(ctx context.Context, postID int64) (*model.Post, error) {
	p, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}
