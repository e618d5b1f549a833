package service

import (
	"context"
	"strings"

	"vibehub/internal/models"
	"vibehub/internal/repository"
)

const (
	maxCommentLen       = 2000
	maxCommentPageLimit = 20
)

// CommentService implements comment CRUD under the post visibility rule.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	engRepo     repository.EngagementRepository
	visibility  *Visibility
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, engRepo repository.EngagementRepository, visibility *Visibility) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		engRepo:     engRepo,
		visibility:  visibility,
	}
}

// CommentPage is one page of comments on a post.
type CommentPage struct {
	Comments []*models.Comment `json:"comments"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
	HasMore  bool              `json:"hasMore"`
}

func (s *CommentService) visiblePost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	ok, err := s.visibility.CanView(ctx, viewerID, &post.Author)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// AddComment creates a comment on a post the actor can see.
func (s *CommentService) AddComment(ctx context.Context, actorID, postID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	if _, err := s.visiblePost(ctx, actorID, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  actorID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a page of a post's comments, newest first, with like
// counts and the viewer's liked flags.
func (s *CommentService) ListComments(ctx context.Context, viewerID, postID uint, page, limit int) (*CommentPage, error) {
	page, limit = NormalizePage(page, limit, maxCommentPageLimit)

	if _, err := s.visiblePost(ctx, viewerID, postID); err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.decorate(ctx, viewerID, comments); err != nil {
		return nil, err
	}

	return &CommentPage{
		Comments: comments,
		Page:     page,
		Limit:    limit,
		HasMore:  int64(page*limit) < total,
	}, nil
}

func (s *CommentService) decorate(ctx context.Context, viewerID uint, comments []*models.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}

	counts, err := s.engRepo.LikeCountsForComments(ctx, ids)
	if err != nil {
		return models.NewInternalError(err)
	}
	liked := map[uint]bool{}
	if viewerID != 0 {
		likedIDs, err := s.engRepo.LikedCommentIDs(ctx, viewerID, ids)
		if err != nil {
			return models.NewInternalError(err)
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	for _, c := range comments {
		c.LikesCount = counts[c.ID]
		c.Liked = liked[c.ID]
	}
	return nil
}

// UpdateComment edits a comment the actor owns.
func (s *CommentService) UpdateComment(ctx context.Context, actorID, commentID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != actorID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// DeleteComment removes a comment the actor owns, then its likes.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return models.NewInternalError(err)
	}
	// Best effort; a leftover like row on a gone comment is invisible.
	_ = s.engRepo.DeleteLikesByComments(ctx, []uint{commentID})
	return nil
}
