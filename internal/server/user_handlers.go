// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"vibehub/internal/models"
	"vibehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.Context(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req service.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// SetPrivacy handles POST /api/users/me/privacy. Flipping to private only
// affects future follows; existing edges keep their status.
func (s *Server) SetPrivacy(c *fiber.Ctx) error {
	var req struct {
		Private *bool `json:"private"`
	}
	if err := c.BodyParser(&req); err != nil || req.Private == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("private is required"))
	}

	user, err := s.userService.SetPrivacy(c.Context(), currentUserID(c), *req.Private)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// DeleteMyAccount handles DELETE /api/users/me.
func (s *Server) DeleteMyAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}

// GetSavedPosts handles GET /api/users/me/saved.
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	p := parsePage(c, 20)

	page, err := s.feedService.GetSavedPosts(c.Context(), currentUserID(c), p.Page, p.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// SearchUsers handles GET /api/users/search?q=.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	p := parsePage(c, 20)

	users, err := s.userService.SearchUsers(c.Context(), c.Query("q"), p.Page, p.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// GetUserProfile handles GET /api/users/:id.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// GetUserPosts handles GET /api/users/:id/posts. A private profile the
// viewer does not follow answers with an empty page, not an error.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePage(c, 20)

	author, err := s.userService.GetUser(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	page, err := s.feedService.GetUserPosts(c.Context(), currentUserID(c), author, p.Page, p.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}
