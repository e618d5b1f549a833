// Package models contains data structures for the application's domain models.
package models

import "time"

// FeedFilter selects which posts a feed query matches.
type FeedFilter string

const (
	// FeedFilterAll matches every post.
	FeedFilterAll FeedFilter = "all"
	// FeedFilterVideoOnly matches posts that carry a video.
	FeedFilterVideoOnly FeedFilter = "videoOnly"
)

// Post represents a post in VibeHub. A post carries at most one of
// ImageURL/VideoURL and at least one of Content/ImageURL/VideoURL; both
// rules are enforced in the service layer, the media URLs themselves are
// opaque strings.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text" json:"content"`
	ImageURL string `json:"image_url"`
	VideoURL string `json:"video_url"`
	AuthorID uint   `gorm:"not null;index:idx_posts_author" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`

	// Computed by the feed decorator; never persisted.
	LikesCount    int  `gorm:"-" json:"likes_count"`
	CommentsCount int  `gorm:"-" json:"comments_count"`
	SavesCount    int  `gorm:"-" json:"saves_count"`
	SharesCount   int  `gorm:"-" json:"shares_count"`
	Liked         bool `gorm:"-" json:"liked"`
	Saved         bool `gorm:"-" json:"saved"`

	CreatedAt time.Time `gorm:"index:idx_posts_feed,priority:1" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
