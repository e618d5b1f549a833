// Package models contains data structures for the application's domain models.
package models

import "time"

// ConnectionStatus represents the status of a follow edge.
type ConnectionStatus string

const (
	// ConnectionStatusPending indicates a follow request awaiting acceptance
	// by a private account.
	ConnectionStatusPending ConnectionStatus = "pending"
	// ConnectionStatusAccepted indicates an established follow.
	ConnectionStatusAccepted ConnectionStatus = "accepted"
)

// FollowEdge represents a directed follow relationship from FollowerID to
// TargetID. The (follower_id, target_id) pair is unique at the storage
// layer so concurrent duplicate follow toggles cannot create two edges.
type FollowEdge struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	FollowerID uint             `gorm:"not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	TargetID   uint             `gorm:"not null;uniqueIndex:idx_follow_edge;index:idx_follow_edges_target" json:"target_id"`
	Status     ConnectionStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_follow_edges_status" json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	// Relationships
	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Target   User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}

// TableName specifies the table name for GORM
func (FollowEdge) TableName() string {
	return "follow_edges"
}
