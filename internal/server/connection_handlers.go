// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// ToggleFollow handles POST /api/users/:id/follow. A single endpoint flips
// the edge: follow, unfollow and cancel-request are all the same toggle.
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	state, status, err := s.connectionService.ToggleFollow(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"state":  state,
		"status": status,
	})
}

// GetFollowRequests handles GET /api/connections/requests.
func (s *Server) GetFollowRequests(c *fiber.Ctx) error {
	requests, err := s.connectionService.PendingRequests(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// AcceptFollowRequest handles POST /api/connections/:requestId/accept.
// Requests that do not exist, are not pending, or belong to someone else all
// answer 404.
func (s *Server) AcceptFollowRequest(c *fiber.Ctx) error {
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	edge, err := s.connectionService.Accept(c.Context(), currentUserID(c), requestID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(edge)
}

// GetFollowerCount handles GET /api/connections/followers/count.
func (s *Server) GetFollowerCount(c *fiber.Ctx) error {
	count, err := s.connectionService.FollowerCount(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// GetFollowingCount handles GET /api/connections/following/count.
func (s *Server) GetFollowingCount(c *fiber.Ctx) error {
	count, err := s.connectionService.FollowingCount(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// GetFollowStatus handles GET /api/connections/status/:userId.
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	status, err := s.connectionService.Status(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}
