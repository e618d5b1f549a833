// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"vibehub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostEngagement aggregates the per-post counters the feed decorator needs.
type PostEngagement struct {
	Likes    int
	Comments int
	Saves    int
	Shares   int
}

// EngagementRepository defines the interface for like, save and share storage.
type EngagementRepository interface {
	IsLiked(ctx context.Context, userID uint, target models.LikeTarget) (bool, error)
	Like(ctx context.Context, userID uint, target models.LikeTarget) error
	Unlike(ctx context.Context, userID uint, target models.LikeTarget) error

	IsSaved(ctx context.Context, userID, postID uint) (bool, error)
	Save(ctx context.Context, userID, postID uint) error
	Unsave(ctx context.Context, userID, postID uint) error

	AddShare(ctx context.Context, userID, postID uint) error

	CountsForPosts(ctx context.Context, postIDs []uint) (map[uint]PostEngagement, error)
	LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
	SavedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error)
	LikeCountsForComments(ctx context.Context, commentIDs []uint) (map[uint]int, error)
	LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error)

	DeleteLikesByPost(ctx context.Context, postID uint) error
	DeleteLikesByComments(ctx context.Context, commentIDs []uint) error
	DeleteSavesByPost(ctx context.Context, postID uint) error
	DeleteSharesByPost(ctx context.Context, postID uint) error
	DeleteAllForUser(ctx context.Context, userID uint) error
}

// engagementRepository implements EngagementRepository
type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// likeScope narrows a likes query to one user/target pair.
func likeScope(db *gorm.DB, userID uint, target models.LikeTarget) *gorm.DB {
	db = db.Where("user_id = ?", userID)
	if target.Kind == models.LikeTargetComment {
		return db.Where("comment_id = ?", target.ID)
	}
	return db.Where("post_id = ?", target.ID)
}

func (r *engagementRepository) IsLiked(ctx context.Context, userID uint, target models.LikeTarget) (bool, error) {
	var count int64
	err := likeScope(r.db.WithContext(ctx).Model(&models.Like{}), userID, target).
		Count(&count).Error
	return count > 0, err
}

// Like inserts with ON CONFLICT DO NOTHING against the composite unique
// index, so concurrent duplicate toggles collapse into one row.
func (r *engagementRepository) Like(ctx context.Context, userID uint, target models.LikeTarget) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(models.NewLike(userID, target)).Error
}

func (r *engagementRepository) Unlike(ctx context.Context, userID uint, target models.LikeTarget) error {
	return likeScope(r.db.WithContext(ctx), userID, target).
		Delete(&models.Like{}).Error
}

func (r *engagementRepository) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Save{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) Save(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Save{UserID: userID, PostID: postID}).Error
}

func (r *engagementRepository) Unsave(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Save{}).Error
}

// AddShare appends unconditionally; shares have no uniqueness rule.
func (r *engagementRepository) AddShare(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).Create(&models.Share{UserID: userID, PostID: postID}).Error
}

type idCount struct {
	ID    uint
	Count int
}

// countByPost runs one GROUP BY over the given table for the page of posts.
func (r *engagementRepository) countByPost(ctx context.Context, model interface{}, postIDs []uint) (map[uint]int, error) {
	var rows []idCount
	if err := r.db.WithContext(ctx).
		Model(model).
		Select("post_id as id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]int, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

// CountsForPosts aggregates likes, comments, saves and shares for a page of
// posts with one grouped query per counter.
func (r *engagementRepository) CountsForPosts(ctx context.Context, postIDs []uint) (map[uint]PostEngagement, error) {
	if len(postIDs) == 0 {
		return map[uint]PostEngagement{}, nil
	}

	likes, err := r.countByPost(ctx, &models.Like{}, postIDs)
	if err != nil {
		return nil, err
	}
	comments, err := r.countByPost(ctx, &models.Comment{}, postIDs)
	if err != nil {
		return nil, err
	}
	saves, err := r.countByPost(ctx, &models.Save{}, postIDs)
	if err != nil {
		return nil, err
	}
	shares, err := r.countByPost(ctx, &models.Share{}, postIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[uint]PostEngagement, len(postIDs))
	for _, id := range postIDs {
		out[id] = PostEngagement{
			Likes:    likes[id],
			Comments: comments[id],
			Saves:    saves[id],
			Shares:   shares[id],
		}
	}
	return out, nil
}

func (r *engagementRepository) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	return ids, err
}

func (r *engagementRepository) SavedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Save{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	return ids, err
}

func (r *engagementRepository) LikeCountsForComments(ctx context.Context, commentIDs []uint) (map[uint]int, error) {
	if len(commentIDs) == 0 {
		return map[uint]int{}, nil
	}
	var rows []idCount
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select("comment_id as id, COUNT(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]int, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Count
	}
	return out, nil
}

func (r *engagementRepository) LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	return ids, err
}

func (r *engagementRepository) DeleteLikesByPost(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Like{}).Error
}

func (r *engagementRepository) DeleteLikesByComments(ctx context.Context, commentIDs []uint) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("comment_id IN ?", commentIDs).Delete(&models.Like{}).Error
}

func (r *engagementRepository) DeleteSavesByPost(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Save{}).Error
}

func (r *engagementRepository) DeleteSharesByPost(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Share{}).Error
}

func (r *engagementRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Save{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Share{}).Error
}
