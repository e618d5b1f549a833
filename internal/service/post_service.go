package service

import (
	"context"
	"log/slog"
	"strings"

	"vibehub/internal/middleware"
	"vibehub/internal/models"
	"vibehub/internal/repository"
)

const maxPostContentLen = 50000 // 50K characters

// PostService implements post CRUD with ownership checks and the ordered
// delete cascade.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	engRepo     repository.EngagementRepository
	feed        *FeedService
	visibility  *Visibility
}

// CreatePostInput carries the fields a client may set on a new post.
type CreatePostInput struct {
	AuthorID uint
	Content  string
	ImageURL string
	VideoURL string
}

// UpdatePostInput carries the editable fields of a post.
type UpdatePostInput struct {
	ActorID  uint
	PostID   uint
	Content  string
	ImageURL string
	VideoURL string
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	engRepo repository.EngagementRepository,
	feed *FeedService,
	visibility *Visibility,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		engRepo:     engRepo,
		feed:        feed,
		visibility:  visibility,
	}
}

// validatePostContent enforces the composition rule: at most one of
// image/video, at least one of text/image/video.
func validatePostContent(content, imageURL, videoURL string) error {
	if imageURL != "" && videoURL != "" {
		return models.NewValidationError("A post may carry an image or a video, not both")
	}
	if strings.TrimSpace(content) == "" && imageURL == "" && videoURL == "" {
		return models.NewValidationError("A post needs text, an image, or a video")
	}
	if len(content) > maxPostContentLen {
		return models.NewValidationError("Content too long (max 50000 characters)")
	}
	return nil
}

// CreatePost validates and stores a new post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	if err := validatePostContent(in.Content, in.ImageURL, in.VideoURL); err != nil {
		return nil, err
	}

	post := &models.Post{
		AuthorID: in.AuthorID,
		Content:  in.Content,
		ImageURL: in.ImageURL,
		VideoURL: in.VideoURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a single decorated post, 404 when hidden by privacy.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
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
	if err := s.feed.Decorate(ctx, viewerID, []*models.Post{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits a post the actor owns; the composition rule is
// re-checked against the resulting state.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.ActorID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	if err := validatePostContent(in.Content, in.ImageURL, in.VideoURL); err != nil {
		return nil, err
	}

	post.Content = in.Content
	post.ImageURL = in.ImageURL
	post.VideoURL = in.VideoURL
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPost(ctx, in.ActorID, post.ID)
}

// DeletePost removes a post the actor owns, then its dependents. The primary
// row goes first so the reported outcome matches what happened to the post;
// dependent steps are best-effort and each is retry-safe.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}

	s.CascadePostDependents(ctx, postID)
	return nil
}

// CascadePostDependents removes everything hanging off a deleted post:
// likes on its comments, the comments, then the post's own likes, saves and
// shares. Failures are logged and the remaining steps still run.
func (s *PostService) CascadePostDependents(ctx context.Context, postID uint) {
	commentIDs, err := s.commentRepo.ListIDsByPost(ctx, postID)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "post cascade: list comments failed",
			slog.Uint64("post_id", uint64(postID)), slog.String("error", err.Error()))
	} else if err := s.engRepo.DeleteLikesByComments(ctx, commentIDs); err != nil {
		middleware.Logger.ErrorContext(ctx, "post cascade: delete comment likes failed",
			slog.Uint64("post_id", uint64(postID)), slog.String("error", err.Error()))
	}

	steps := []struct {
		name string
		fn   func(context.Context, uint) error
	}{
		{"comments", s.commentRepo.DeleteByPost},
		{"likes", s.engRepo.DeleteLikesByPost},
		{"saves", s.engRepo.DeleteSavesByPost},
		{"shares", s.engRepo.DeleteSharesByPost},
	}
	for _, step := range steps {
		if err := step.fn(ctx, postID); err != nil {
			middleware.Logger.ErrorContext(ctx, "post cascade step failed",
				slog.Uint64("post_id", uint64(postID)),
				slog.String("step", step.name),
				slog.String("error", err.Error()))
		}
	}
}
