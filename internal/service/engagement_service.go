package service

import (
	"context"

	"vibehub/internal/models"
	"vibehub/internal/repository"
)

// ToggleState is the outcome of a toggle operation.
type ToggleState string

const (
	// StateAdded means the toggle created the relationship.
	StateAdded ToggleState = "added"
	// StateRemoved means the toggle removed the relationship.
	StateRemoved ToggleState = "removed"
)

// EngagementService implements the like, save and share operations. Likes
// and saves are pure flips: present means remove, absent means add, never an
// upsert to a fixed state.
type EngagementService struct {
	engRepo     repository.EngagementRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	visibility  *Visibility
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(engRepo repository.EngagementRepository, postRepo repository.PostRepository, commentRepo repository.CommentRepository, visibility *Visibility) *EngagementService {
	return &EngagementService{
		engRepo:     engRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		visibility:  visibility,
	}
}

// visiblePost loads a post and hides it behind a 404 when the actor may not
// see its author.
func (s *EngagementService) visiblePost(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	ok, err := s.visibility.CanView(ctx, actorID, &post.Author)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Post", postID)
	}
	return post, nil
}

// ToggleLike flips the actor's like on the target and reports the resulting
// state. The target must exist and be visible to the actor.
func (s *EngagementService) ToggleLike(ctx context.Context, actorID uint, target models.LikeTarget) (ToggleState, error) {
	switch target.Kind {
	case models.LikeTargetComment:
		comment, err := s.commentRepo.GetByID(ctx, target.ID)
		if err != nil {
			return "", err
		}
		if _, err := s.visiblePost(ctx, actorID, comment.PostID); err != nil {
			// Hide the comment, not its post, from the caller.
			if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
				return "", models.NewNotFoundError("Comment", target.ID)
			}
			return "", err
		}
	case models.LikeTargetPost:
		if _, err := s.visiblePost(ctx, actorID, target.ID); err != nil {
			return "", err
		}
	default:
		return "", models.NewValidationError("Unknown like target")
	}

	liked, err := s.engRepo.IsLiked(ctx, actorID, target)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	if liked {
		if err := s.engRepo.Unlike(ctx, actorID, target); err != nil {
			return "", models.NewInternalError(err)
		}
		return StateRemoved, nil
	}

	if err := s.engRepo.Like(ctx, actorID, target); err != nil {
		return "", models.NewInternalError(err)
	}
	return StateAdded, nil
}

// ToggleSave flips the actor's bookmark on a post.
func (s *EngagementService) ToggleSave(ctx context.Context, actorID, postID uint) (ToggleState, error) {
	if _, err := s.visiblePost(ctx, actorID, postID); err != nil {
		return "", err
	}

	saved, err := s.engRepo.IsSaved(ctx, actorID, postID)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	if saved {
		if err := s.engRepo.Unsave(ctx, actorID, postID); err != nil {
			return "", models.NewInternalError(err)
		}
		return StateRemoved, nil
	}

	if err := s.engRepo.Save(ctx, actorID, postID); err != nil {
		return "", models.NewInternalError(err)
	}
	return StateAdded, nil
}

// SharePost appends a share record. Repeated shares of the same post each
// count.
func (s *EngagementService) SharePost(ctx context.Context, actorID, postID uint) error {
	if _, err := s.visiblePost(ctx, actorID, postID); err != nil {
		return err
	}
	if err := s.engRepo.AddShare(ctx, actorID, postID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
