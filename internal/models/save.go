package models

import "time"

// Save represents a user bookmarking a post. The (user_id, post_id) pair is
// unique at the storage layer.
type Save struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_saves_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_saves_user_post;index:idx_saves_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Share records a user sharing a post. Shares are append-only: sharing the
// same post twice records two rows, there is no unshare.
type Share struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_shares_user" json:"user_id"`
	PostID    uint      `gorm:"not null;index:idx_shares_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
