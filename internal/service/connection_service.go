package service

import (
	"context"

	"vibehub/internal/models"
	"vibehub/internal/notifications"
	"vibehub/internal/repository"
)

// ConnectionService implements the follow graph state machine.
//
// ToggleFollow is a pure flip: any existing edge, pending or accepted, is
// removed; no edge means a new one is created, pending when the target is
// private and accepted otherwise.
type ConnectionService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

// NewConnectionService returns a new ConnectionService.
func NewConnectionService(connRepo repository.ConnectionRepository, userRepo repository.UserRepository, notifier *notifications.Notifier) *ConnectionService {
	return &ConnectionService{
		connRepo: connRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// ToggleFollow flips the actor's edge to the target. On add it also returns
// the status the new edge landed in.
func (s *ConnectionService) ToggleFollow(ctx context.Context, actorID, targetID uint) (ToggleState, models.ConnectionStatus, error) {
	if actorID == targetID {
		return "", "", models.NewValidationError("Cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return "", "", err
	}

	existing, err := s.connRepo.GetEdge(ctx, actorID, targetID)
	if err != nil {
		return "", "", err
	}
	if existing != nil {
		if err := s.connRepo.Delete(ctx, existing.ID); err != nil {
			return "", "", err
		}
		return StateRemoved, existing.Status, nil
	}

	status := models.ConnectionStatusAccepted
	if target.Private {
		status = models.ConnectionStatusPending
	}

	edge := &models.FollowEdge{
		FollowerID: actorID,
		TargetID:   targetID,
		Status:     status,
	}
	inserted, err := s.connRepo.Create(ctx, edge)
	if err != nil {
		return "", "", err
	}
	if !inserted {
		// A concurrent toggle won the insert; report the edge that exists.
		if existing, err = s.connRepo.GetEdge(ctx, actorID, targetID); err == nil && existing != nil {
			status = existing.Status
		}
	}

	if s.notifier != nil && status == models.ConnectionStatusPending {
		_ = s.notifier.PublishUser(ctx, targetID, notifications.Event{
			Type:    notifications.EventFollowRequest,
			Payload: map[string]uint{"follower_id": actorID},
		})
	}
	return StateAdded, status, nil
}

// Accept turns a pending request addressed to targetID into an accepted
// edge. A request that does not exist, is not pending, or belongs to a
// different target is a plain 404; no other information leaks.
func (s *ConnectionService) Accept(ctx context.Context, targetID, requestID uint) (*models.FollowEdge, error) {
	edge, err := s.connRepo.GetPendingForTarget(ctx, requestID, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.connRepo.UpdateStatus(ctx, edge.ID, models.ConnectionStatusAccepted); err != nil {
		return nil, err
	}
	edge.Status = models.ConnectionStatusAccepted

	if s.notifier != nil {
		_ = s.notifier.PublishUser(ctx, edge.FollowerID, notifications.Event{
			Type:    notifications.EventFollowAccepted,
			Payload: map[string]uint{"target_id": targetID},
		})
	}
	return edge, nil
}

// PendingRequests returns the open follow requests addressed to the user.
func (s *ConnectionService) PendingRequests(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	return s.connRepo.ListPendingForTarget(ctx, userID)
}

// FollowerCount counts accepted edges pointing at the user. Pending
// requests never contribute to either count.
func (s *ConnectionService) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	return s.connRepo.CountFollowers(ctx, userID)
}

// FollowingCount counts accepted edges leaving the user.
func (s *ConnectionService) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.connRepo.CountFollowing(ctx, userID)
}

// Status describes the actor's edge to a target: "none", "pending" or
// "accepted".
func (s *ConnectionService) Status(ctx context.Context, actorID, targetID uint) (string, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return "", err
	}
	edge, err := s.connRepo.GetEdge(ctx, actorID, targetID)
	if err != nil {
		return "", err
	}
	if edge == nil {
		return "none", nil
	}
	return string(edge.Status), nil
}
