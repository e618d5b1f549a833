// Package service contains the application's business logic.
package service

import (
	"context"

	"vibehub/internal/models"
	"vibehub/internal/repository"
)

// Visibility is the single predicate deciding whether a viewer may see an
// author's content. Every listing surface (feed, single post, profile grid,
// saved list, comments) goes through it; a post is visible when the viewer
// is the author, the author is public, or the viewer has an accepted follow
// edge to the author. viewerID 0 means anonymous.
type Visibility struct {
	connRepo repository.ConnectionRepository
}

// NewVisibility returns a new Visibility predicate.
func NewVisibility(connRepo repository.ConnectionRepository) *Visibility {
	return &Visibility{connRepo: connRepo}
}

// CanView reports whether viewerID may see content authored by author.
func (v *Visibility) CanView(ctx context.Context, viewerID uint, author *models.User) (bool, error) {
	if !author.Private || viewerID == author.ID {
		return true, nil
	}
	if viewerID == 0 {
		return false, nil
	}
	ids, err := v.connRepo.AcceptedTargetIDs(ctx, viewerID, []uint{author.ID})
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// FilterPosts drops posts the viewer may not see. Follow edges for the whole
// page are resolved in one query; rows must arrive with Author preloaded.
func (v *Visibility) FilterPosts(ctx context.Context, viewerID uint, posts []*models.Post) ([]*models.Post, error) {
	var privateAuthors []uint
	seen := map[uint]struct{}{}
	for _, p := range posts {
		if !p.Author.Private || p.AuthorID == viewerID {
			continue
		}
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		privateAuthors = append(privateAuthors, p.AuthorID)
	}

	allowed := map[uint]bool{}
	if viewerID != 0 && len(privateAuthors) > 0 {
		ids, err := v.connRepo.AcceptedTargetIDs(ctx, viewerID, privateAuthors)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			allowed[id] = true
		}
	}

	visible := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		if !p.Author.Private || p.AuthorID == viewerID || allowed[p.AuthorID] {
			visible = append(visible, p)
		}
	}
	return visible, nil
}
