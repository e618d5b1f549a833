// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"vibehub/internal/cache"
	"vibehub/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ListFeed(ctx context.Context, filter models.FeedFilter, limit, offset int) ([]*models.Post, error)
	CountFeed(ctx context.Context, filter models.FeedFilter) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
	ListSavedBy(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	CountSavedBy(ctx context.Context, userID uint) (int64, error)
	DeleteByAuthor(ctx context.Context, authorID uint) error
	ListIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return err
	}
	cache.InvalidateAnonFeed(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateAnonFeed(ctx)
	return nil
}

// applyFeedFilter narrows the query per the requested filter.
func applyFeedFilter(db *gorm.DB, filter models.FeedFilter) *gorm.DB {
	if filter == models.FeedFilterVideoOnly {
		return db.Where("video_url <> ''")
	}
	return db
}

// ListFeed returns a feed page in (created_at DESC, id DESC) order. The id
// tie-break keeps pagination stable when posts share a timestamp.
func (r *postRepository) ListFeed(ctx context.Context, filter models.FeedFilter, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyFeedFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountFeed(ctx context.Context, filter models.FeedFilter) (int64, error) {
	var count int64
	err := applyFeedFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&count).Error
	return count, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// ListSavedBy orders by when the post was saved, newest save first.
func (r *postRepository) ListSavedBy(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN saves ON saves.post_id = posts.id").
		Where("saves.user_id = ?", userID).
		Preload("Author").
		Order("saves.created_at DESC, saves.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) CountSavedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Save{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *postRepository) DeleteByAuthor(ctx context.Context, authorID uint) error {
	if err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&models.Post{}).Error; err != nil {
		return err
	}
	cache.InvalidateAnonFeed(ctx)
	return nil
}

func (r *postRepository) ListIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Pluck("id", &ids).Error
	return ids, err
}
