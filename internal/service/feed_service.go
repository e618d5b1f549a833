package service

import (
	"context"

	"vibehub/internal/cache"
	"vibehub/internal/models"
	"vibehub/internal/observability"
	"vibehub/internal/repository"

	"golang.org/x/sync/errgroup"
)

// FeedPage is one page of decorated posts.
type FeedPage struct {
	Posts   []*models.Post `json:"posts"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
	HasMore bool           `json:"hasMore"`
}

// FeedService assembles post listings: the home feed, profile grids and the
// saved-content list all share its pagination, visibility filtering and
// decoration steps.
type FeedService struct {
	postRepo   repository.PostRepository
	engRepo    repository.EngagementRepository
	visibility *Visibility
	maxLimit   int
}

// NewFeedService returns a new FeedService. maxLimit caps the page size a
// client may request.
func NewFeedService(postRepo repository.PostRepository, engRepo repository.EngagementRepository, visibility *Visibility, maxLimit int) *FeedService {
	if maxLimit <= 0 {
		maxLimit = 100
	}
	return &FeedService{
		postRepo:   postRepo,
		engRepo:    engRepo,
		visibility: visibility,
		maxLimit:   maxLimit,
	}
}

// NormalizePage coerces raw page/limit values into usable ones: anything
// below 1 becomes 1, and limit is clamped to max. Bad input is never an
// error on read paths.
func NormalizePage(page, limit, max int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > max {
		limit = max
	}
	return page, limit
}

// ParseFeedFilter maps a query-string filter to a FeedFilter; anything
// unrecognized falls back to all.
func ParseFeedFilter(s string) models.FeedFilter {
	if s == string(models.FeedFilterVideoOnly) {
		return models.FeedFilterVideoOnly
	}
	return models.FeedFilterAll
}

// GetHomeFeed returns one page of the reverse-chronological home feed.
//
// hasMore compares page*limit against the total filter-matching count before
// privacy filtering, so it can over-report remaining pages when private
// authors are interleaved. The same approximation is applied on every
// paginated listing for consistency.
//
// Anonymous pages are identical for every caller and are served cache-aside;
// post writes invalidate them. Authenticated pages vary per viewer and are
// never cached.
func (s *FeedService) GetHomeFeed(ctx context.Context, viewerID uint, page, limit int, filter models.FeedFilter) (*FeedPage, error) {
	page, limit = NormalizePage(page, limit, s.maxLimit)

	if viewerID == 0 {
		var cached FeedPage
		err := cache.Aside(ctx, cache.FeedPageKey(string(filter), page, limit), &cached, cache.FeedPageTTL, func() error {
			fp, err := s.assembleHomeFeed(ctx, 0, page, limit, filter)
			if err != nil {
				return err
			}
			cached = *fp
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &cached, nil
	}

	return s.assembleHomeFeed(ctx, viewerID, page, limit, filter)
}

func (s *FeedService) assembleHomeFeed(ctx context.Context, viewerID uint, page, limit int, filter models.FeedFilter) (*FeedPage, error) {
	offset := (page - 1) * limit

	posts, err := s.postRepo.ListFeed(ctx, filter, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	total, err := s.postRepo.CountFeed(ctx, filter)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	visible, err := s.visibility.FilterPosts(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	if err := s.Decorate(ctx, viewerID, visible); err != nil {
		return nil, err
	}

	observability.FeedPagesServed.WithLabelValues(string(filter)).Inc()

	return &FeedPage{
		Posts:   visible,
		Page:    page,
		Limit:   limit,
		HasMore: int64(page*limit) < total,
	}, nil
}

// GetUserPosts returns a page of a profile's post grid, empty when the
// viewer may not see the profile.
func (s *FeedService) GetUserPosts(ctx context.Context, viewerID uint, author *models.User, page, limit int) (*FeedPage, error) {
	page, limit = NormalizePage(page, limit, s.maxLimit)

	ok, err := s.visibility.CanView(ctx, viewerID, author)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &FeedPage{Posts: []*models.Post{}, Page: page, Limit: limit}, nil
	}

	offset := (page - 1) * limit
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.Decorate(ctx, viewerID, posts); err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:   posts,
		Page:    page,
		Limit:   limit,
		HasMore: int64(page*limit) < total,
	}, nil
}

// GetSavedPosts returns a page of the viewer's saved posts. Saved posts by
// authors who have since gone private drop out through the shared filter.
func (s *FeedService) GetSavedPosts(ctx context.Context, viewerID uint, page, limit int) (*FeedPage, error) {
	page, limit = NormalizePage(page, limit, s.maxLimit)
	offset := (page - 1) * limit

	posts, err := s.postRepo.ListSavedBy(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	total, err := s.postRepo.CountSavedBy(ctx, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	visible, err := s.visibility.FilterPosts(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	if err := s.Decorate(ctx, viewerID, visible); err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:   visible,
		Page:    page,
		Limit:   limit,
		HasMore: int64(page*limit) < total,
	}, nil
}

// Decorate fills the computed fields of a page of posts: the four counters
// and, for authenticated viewers, the liked/saved flags. The three grouped
// queries run in parallel.
func (s *FeedService) Decorate(ctx context.Context, viewerID uint, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	var (
		counts   map[uint]repository.PostEngagement
		likedIDs []uint
		savedIDs []uint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.engRepo.CountsForPosts(gctx, postIDs)
		return err
	})
	if viewerID != 0 {
		g.Go(func() error {
			var err error
			likedIDs, err = s.engRepo.LikedPostIDs(gctx, viewerID, postIDs)
			return err
		})
		g.Go(func() error {
			var err error
			savedIDs, err = s.engRepo.SavedPostIDs(gctx, viewerID, postIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return models.NewInternalError(err)
	}

	liked := make(map[uint]bool, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = true
	}
	saved := make(map[uint]bool, len(savedIDs))
	for _, id := range savedIDs {
		saved[id] = true
	}

	for _, p := range posts {
		c := counts[p.ID]
		p.LikesCount = c.Likes
		p.CommentsCount = c.Comments
		p.SavesCount = c.Saves
		p.SharesCount = c.Shares
		p.Liked = liked[p.ID]
		p.Saved = saved[p.ID]
	}
	return nil
}
