package models

import "time"

// LikeTargetKind discriminates what a like points at.
type LikeTargetKind string

const (
	// LikeTargetPost marks a like on a post.
	LikeTargetPost LikeTargetKind = "post"
	// LikeTargetComment marks a like on a comment.
	LikeTargetComment LikeTargetKind = "comment"
)

// LikeTarget identifies exactly one likeable entity. Constructing it through
// PostTarget/CommentTarget keeps the post-or-comment choice a tagged variant
// instead of a pair of optional IDs.
type LikeTarget struct {
	Kind LikeTargetKind
	ID   uint
}

// PostTarget returns a LikeTarget pointing at a post.
func PostTarget(postID uint) LikeTarget {
	return LikeTarget{Kind: LikeTargetPost, ID: postID}
}

// CommentTarget returns a LikeTarget pointing at a comment.
func CommentTarget(commentID uint) LikeTarget {
	return LikeTarget{Kind: LikeTargetComment, ID: commentID}
}

// Like is the stored form of a like. Exactly one of PostID/CommentID is set;
// the two composite unique indexes make duplicate likes per user impossible
// at the storage layer (NULLs are distinct, so post likes never collide with
// comment likes).
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post;uniqueIndex:idx_likes_user_comment" json:"user_id"`
	PostID    *uint     `gorm:"uniqueIndex:idx_likes_user_post;index:idx_likes_post" json:"post_id,omitempty"`
	CommentID *uint     `gorm:"uniqueIndex:idx_likes_user_comment;index:idx_likes_comment" json:"comment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLike builds the stored row for a user liking a target.
func NewLike(userID uint, target LikeTarget) *Like {
	like := &Like{UserID: userID}
	id := target.ID
	switch target.Kind {
	case LikeTargetComment:
		like.CommentID = &id
	default:
		like.PostID = &id
	}
	return like
}
