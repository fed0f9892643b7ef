package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/microblog/internal/model"
)

// feedOrder is the ordering every feed query shares: newest first, with the
// store-assigned id as a stable tiebreak for posts created in the same
// instant.
const feedOrder = "created_at DESC, id ASC"

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, p *model.Post) error
	// DeleteWithComments removes the post and its comments in one
	// transaction. Returns gorm.ErrRecordNotFound when the post is absent.
	DeleteWithComments(ctx context.Context, id int64) error
	ListPublic(ctx context.Context, offset, limit int) ([]*model.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]*model.Post, error)
	// ListByTag matches the tags column by SQL substring (LIKE '%substr%'),
	// with no tokenization and no visibility filter.
	ListByTag(ctx context.Context, substr string, offset, limit int) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	// Save writes all columns; partial updates would silently skip
	// is_public=false because gorm treats zero values as unset.
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *postRepository) DeleteWithComments(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Post
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

func (r *postRepository) ListPublic(ctx context.Context, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order(feedOrder).
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", authorIDs).
		Order(feedOrder).
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListByTag(ctx context.Context, substr string, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("tags LIKE ?", "%"+substr+"%").
		Order(feedOrder).
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}
