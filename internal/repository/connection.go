// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"vibehub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConnectionRepository defines the interface for follow graph operations.
type ConnectionRepository interface {
	Create(ctx context.Context, edge *models.FollowEdge) (bool, error)
	GetEdge(ctx context.Context, followerID, targetID uint) (*models.FollowEdge, error)
	GetPendingForTarget(ctx context.Context, requestID, targetID uint) (*models.FollowEdge, error)
	UpdateStatus(ctx context.Context, edgeID uint, status models.ConnectionStatus) error
	Delete(ctx context.Context, edgeID uint) error
	ListPendingForTarget(ctx context.Context, targetID uint) ([]models.FollowEdge, error)
	CountFollowers(ctx context.Context, targetID uint) (int64, error)
	CountFollowing(ctx context.Context, followerID uint) (int64, error)
	AcceptedTargetIDs(ctx context.Context, followerID uint, targetIDs []uint) ([]uint, error)
	DeleteAllForUser(ctx context.Context, userID uint) error
}

// connectionRepository implements ConnectionRepository
type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// Create inserts the edge with ON CONFLICT DO NOTHING on the
// (follower_id, target_id) unique index and reports whether a row was
// actually inserted. Losing a concurrent race is not an error.
func (r *connectionRepository) Create(ctx context.Context, edge *models.FollowEdge) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *connectionRepository) GetEdge(ctx context.Context, followerID, targetID uint) (*models.FollowEdge, error) {
	var edge models.FollowEdge
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND target_id = ?", followerID, targetID).
		First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No edge exists
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

// GetPendingForTarget returns the pending edge only if it is addressed to
// targetID; a request owned by someone else is indistinguishable from a
// missing one.
func (r *connectionRepository) GetPendingForTarget(ctx context.Context, requestID, targetID uint) (*models.FollowEdge, error) {
	var edge models.FollowEdge
	if err := r.db.WithContext(ctx).
		Where("id = ? AND target_id = ? AND status = ?", requestID, targetID, models.ConnectionStatusPending).
		Preload("Follower").
		First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Follow request", requestID)
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, edgeID uint, status models.ConnectionStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("id = ?", edgeID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) Delete(ctx context.Context, edgeID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FollowEdge{}, edgeID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) ListPendingForTarget(ctx context.Context, targetID uint) ([]models.FollowEdge, error) {
	var edges []models.FollowEdge
	if err := r.db.WithContext(ctx).
		Where("target_id = ? AND status = ?", targetID, models.ConnectionStatusPending).
		Preload("Follower").
		Order("created_at DESC").
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}

func (r *connectionRepository) CountFollowers(ctx context.Context, targetID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("target_id = ? AND status = ?", targetID, models.ConnectionStatusAccepted).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *connectionRepository) CountFollowing(ctx context.Context, followerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("follower_id = ? AND status = ?", followerID, models.ConnectionStatusAccepted).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// AcceptedTargetIDs returns the subset of targetIDs the follower has an
// accepted edge to. Used by the visibility predicate for whole feed pages
// without a per-post query.
func (r *connectionRepository) AcceptedTargetIDs(ctx context.Context, followerID uint, targetIDs []uint) ([]uint, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("follower_id = ? AND status = ? AND target_id IN ?",
			followerID, models.ConnectionStatusAccepted, targetIDs).
		Pluck("target_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// DeleteAllForUser removes edges in both directions.
func (r *connectionRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? OR target_id = ?", userID, userID).
		Delete(&models.FollowEdge{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
