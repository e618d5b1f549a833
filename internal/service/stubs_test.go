package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vibehub/internal/mail"
	"vibehub/internal/models"
	"vibehub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn              func(context.Context, uint) (*models.User, error)
	getByEmailFn           func(context.Context, string) (*models.User, error)
	getByUsernameFn        func(context.Context, string) (*models.User, error)
	getByVerifyTokenHashFn func(context.Context, string) (*models.User, error)
	getByResetTokenHashFn  func(context.Context, string) (*models.User, error)
	createFn               func(context.Context, *models.User) error
	updateFn               func(context.Context, *models.User) error
	deleteFn               func(context.Context, uint) error
	searchFn               func(context.Context, string, int, int) ([]models.User, error)
	deleteUnverifiedFn     func(context.Context, time.Time) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByVerifyTokenHash(ctx context.Context, hash string) (*models.User, error) {
	return s.getByVerifyTokenHashFn(ctx, hash)
}
func (s *userRepoStub) GetByResetTokenHash(ctx context.Context, hash string) (*models.User, error) {
	return s.getByResetTokenHashFn(ctx, hash)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) Search(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.searchFn(ctx, query, limit, offset)
}
func (s *userRepoStub) DeleteUnverifiedExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.deleteUnverifiedFn(ctx, now)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:              func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:           func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn:        func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByVerifyTokenHashFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByResetTokenHashFn:  func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:               func(_ context.Context, _ *models.User) error { return nil },
		updateFn:               func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:               func(_ context.Context, _ uint) error { return nil },
		searchFn:               func(_ context.Context, _ string, _, _ int) ([]models.User, error) { return nil, nil },
		deleteUnverifiedFn:     func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint) (*models.Post, error)
	updateFn          func(context.Context, *models.Post) error
	deleteFn          func(context.Context, uint) error
	listFeedFn        func(context.Context, models.FeedFilter, int, int) ([]*models.Post, error)
	countFeedFn       func(context.Context, models.FeedFilter) (int64, error)
	listByAuthorFn    func(context.Context, uint, int, int) ([]*models.Post, error)
	countByAuthorFn   func(context.Context, uint) (int64, error)
	listSavedByFn     func(context.Context, uint, int, int) ([]*models.Post, error)
	countSavedByFn    func(context.Context, uint) (int64, error)
	deleteByAuthorFn  func(context.Context, uint) error
	listIDsByAuthorFn func(context.Context, uint) ([]uint, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ListFeed(ctx context.Context, filter models.FeedFilter, limit, offset int) ([]*models.Post, error) {
	return s.listFeedFn(ctx, filter, limit, offset)
}
func (s *postRepoStub) CountFeed(ctx context.Context, filter models.FeedFilter) (int64, error) {
	return s.countFeedFn(ctx, filter)
}
func (s *postRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset)
}
func (s *postRepoStub) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	return s.countByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) ListSavedBy(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listSavedByFn(ctx, userID, limit, offset)
}
func (s *postRepoStub) CountSavedBy(ctx context.Context, userID uint) (int64, error) {
	return s.countSavedByFn(ctx, userID)
}
func (s *postRepoStub) DeleteByAuthor(ctx context.Context, authorID uint) error {
	return s.deleteByAuthorFn(ctx, authorID)
}
func (s *postRepoStub) ListIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	return s.listIDsByAuthorFn(ctx, authorID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:          func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:         func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		updateFn:          func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:          func(_ context.Context, _ uint) error { return nil },
		listFeedFn:        func(_ context.Context, _ models.FeedFilter, _, _ int) ([]*models.Post, error) { return nil, nil },
		countFeedFn:       func(_ context.Context, _ models.FeedFilter) (int64, error) { return 0, nil },
		listByAuthorFn:    func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		countByAuthorFn:   func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		listSavedByFn:     func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		countSavedByFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		deleteByAuthorFn:  func(_ context.Context, _ uint) error { return nil },
		listIDsByAuthorFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByPostFn    func(context.Context, uint, int, int) ([]*models.Comment, error)
	countByPostFn   func(context.Context, uint) (int64, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteFn        func(context.Context, uint) error
	listIDsByPostFn func(context.Context, uint) ([]uint, error)
	deleteByPostFn  func(context.Context, uint) error
	listIDsByUserFn func(context.Context, uint) ([]uint, error)
	deleteByUserFn  func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) ListIDsByPost(ctx context.Context, postID uint) ([]uint, error) {
	return s.listIDsByPostFn(ctx, postID)
}
func (s *commentRepoStub) DeleteByPost(ctx context.Context, postID uint) error {
	return s.deleteByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	return s.listIDsByUserFn(ctx, userID)
}
func (s *commentRepoStub) DeleteByUser(ctx context.Context, userID uint) error {
	return s.deleteByUserFn(ctx, userID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn:    func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		countByPostFn:   func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		updateFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listIDsByPostFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		deleteByPostFn:  func(_ context.Context, _ uint) error { return nil },
		listIDsByUserFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		deleteByUserFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// engRepoStub is a stub for repository.EngagementRepository.
type engRepoStub struct {
	isLikedFn               func(context.Context, uint, models.LikeTarget) (bool, error)
	likeFn                  func(context.Context, uint, models.LikeTarget) error
	unlikeFn                func(context.Context, uint, models.LikeTarget) error
	isSavedFn               func(context.Context, uint, uint) (bool, error)
	saveFn                  func(context.Context, uint, uint) error
	unsaveFn                func(context.Context, uint, uint) error
	addShareFn              func(context.Context, uint, uint) error
	countsForPostsFn        func(context.Context, []uint) (map[uint]repository.PostEngagement, error)
	likedPostIDsFn          func(context.Context, uint, []uint) ([]uint, error)
	savedPostIDsFn          func(context.Context, uint, []uint) ([]uint, error)
	likeCountsForCommentsFn func(context.Context, []uint) (map[uint]int, error)
	likedCommentIDsFn       func(context.Context, uint, []uint) ([]uint, error)
	deleteLikesByPostFn     func(context.Context, uint) error
	deleteLikesByCommentsFn func(context.Context, []uint) error
	deleteSavesByPostFn     func(context.Context, uint) error
	deleteSharesByPostFn    func(context.Context, uint) error
	deleteAllForUserFn      func(context.Context, uint) error
}

func (s *engRepoStub) IsLiked(ctx context.Context, userID uint, target models.LikeTarget) (bool, error) {
	return s.isLikedFn(ctx, userID, target)
}
func (s *engRepoStub) Like(ctx context.Context, userID uint, target models.LikeTarget) error {
	return s.likeFn(ctx, userID, target)
}
func (s *engRepoStub) Unlike(ctx context.Context, userID uint, target models.LikeTarget) error {
	return s.unlikeFn(ctx, userID, target)
}
func (s *engRepoStub) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isSavedFn(ctx, userID, postID)
}
func (s *engRepoStub) Save(ctx context.Context, userID, postID uint) error {
	return s.saveFn(ctx, userID, postID)
}
func (s *engRepoStub) Unsave(ctx context.Context, userID, postID uint) error {
	return s.unsaveFn(ctx, userID, postID)
}
func (s *engRepoStub) AddShare(ctx context.Context, userID, postID uint) error {
	return s.addShareFn(ctx, userID, postID)
}
func (s *engRepoStub) CountsForPosts(ctx context.Context, postIDs []uint) (map[uint]repository.PostEngagement, error) {
	return s.countsForPostsFn(ctx, postIDs)
}
func (s *engRepoStub) LikedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	return s.likedPostIDsFn(ctx, userID, postIDs)
}
func (s *engRepoStub) SavedPostIDs(ctx context.Context, userID uint, postIDs []uint) ([]uint, error) {
	return s.savedPostIDsFn(ctx, userID, postIDs)
}
func (s *engRepoStub) LikeCountsForComments(ctx context.Context, commentIDs []uint) (map[uint]int, error) {
	return s.likeCountsForCommentsFn(ctx, commentIDs)
}
func (s *engRepoStub) LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error) {
	return s.likedCommentIDsFn(ctx, userID, commentIDs)
}
func (s *engRepoStub) DeleteLikesByPost(ctx context.Context, postID uint) error {
	return s.deleteLikesByPostFn(ctx, postID)
}
func (s *engRepoStub) DeleteLikesByComments(ctx context.Context, commentIDs []uint) error {
	return s.deleteLikesByCommentsFn(ctx, commentIDs)
}
func (s *engRepoStub) DeleteSavesByPost(ctx context.Context, postID uint) error {
	return s.deleteSavesByPostFn(ctx, postID)
}
func (s *engRepoStub) DeleteSharesByPost(ctx context.Context, postID uint) error {
	return s.deleteSharesByPostFn(ctx, postID)
}
func (s *engRepoStub) DeleteAllForUser(ctx context.Context, userID uint) error {
	return s.deleteAllForUserFn(ctx, userID)
}

func noopEngRepo() *engRepoStub {
	return &engRepoStub{
		isLikedFn: func(_ context.Context, _ uint, _ models.LikeTarget) (bool, error) { return false, nil },
		likeFn:    func(_ context.Context, _ uint, _ models.LikeTarget) error { return nil },
		unlikeFn:  func(_ context.Context, _ uint, _ models.LikeTarget) error { return nil },
		isSavedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		saveFn:    func(_ context.Context, _, _ uint) error { return nil },
		unsaveFn:  func(_ context.Context, _, _ uint) error { return nil },
		addShareFn: func(_ context.Context, _, _ uint) error {
			return nil
		},
		countsForPostsFn: func(_ context.Context, _ []uint) (map[uint]repository.PostEngagement, error) {
			return map[uint]repository.PostEngagement{}, nil
		},
		likedPostIDsFn: func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
		savedPostIDsFn: func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
		likeCountsForCommentsFn: func(_ context.Context, _ []uint) (map[uint]int, error) {
			return map[uint]int{}, nil
		},
		likedCommentIDsFn:       func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
		deleteLikesByPostFn:     func(_ context.Context, _ uint) error { return nil },
		deleteLikesByCommentsFn: func(_ context.Context, _ []uint) error { return nil },
		deleteSavesByPostFn:     func(_ context.Context, _ uint) error { return nil },
		deleteSharesByPostFn:    func(_ context.Context, _ uint) error { return nil },
		deleteAllForUserFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// connRepoStub is a stub for repository.ConnectionRepository.
type connRepoStub struct {
	createFn              func(context.Context, *models.FollowEdge) (bool, error)
	getEdgeFn             func(context.Context, uint, uint) (*models.FollowEdge, error)
	getPendingForTargetFn func(context.Context, uint, uint) (*models.FollowEdge, error)
	updateStatusFn        func(context.Context, uint, models.ConnectionStatus) error
	deleteFn              func(context.Context, uint) error
	listPendingFn         func(context.Context, uint) ([]models.FollowEdge, error)
	countFollowersFn      func(context.Context, uint) (int64, error)
	countFollowingFn      func(context.Context, uint) (int64, error)
	acceptedTargetIDsFn   func(context.Context, uint, []uint) ([]uint, error)
	deleteAllForUserFn    func(context.Context, uint) error
}

func (s *connRepoStub) Create(ctx context.Context, edge *models.FollowEdge) (bool, error) {
	return s.createFn(ctx, edge)
}
func (s *connRepoStub) GetEdge(ctx context.Context, followerID, targetID uint) (*models.FollowEdge, error) {
	return s.getEdgeFn(ctx, followerID, targetID)
}
func (s *connRepoStub) GetPendingForTarget(ctx context.Context, requestID, targetID uint) (*models.FollowEdge, error) {
	return s.getPendingForTargetFn(ctx, requestID, targetID)
}
func (s *connRepoStub) UpdateStatus(ctx context.Context, edgeID uint, status models.ConnectionStatus) error {
	return s.updateStatusFn(ctx, edgeID, status)
}
func (s *connRepoStub) Delete(ctx context.Context, edgeID uint) error {
	return s.deleteFn(ctx, edgeID)
}
func (s *connRepoStub) ListPendingForTarget(ctx context.Context, targetID uint) ([]models.FollowEdge, error) {
	return s.listPendingFn(ctx, targetID)
}
func (s *connRepoStub) CountFollowers(ctx context.Context, targetID uint) (int64, error) {
	return s.countFollowersFn(ctx, targetID)
}
func (s *connRepoStub) CountFollowing(ctx context.Context, followerID uint) (int64, error) {
	return s.countFollowingFn(ctx, followerID)
}
func (s *connRepoStub) AcceptedTargetIDs(ctx context.Context, followerID uint, targetIDs []uint) ([]uint, error) {
	return s.acceptedTargetIDsFn(ctx, followerID, targetIDs)
}
func (s *connRepoStub) DeleteAllForUser(ctx context.Context, userID uint) error {
	return s.deleteAllForUserFn(ctx, userID)
}

func noopConnRepo() *connRepoStub {
	return &connRepoStub{
		createFn:              func(_ context.Context, _ *models.FollowEdge) (bool, error) { return true, nil },
		getEdgeFn:             func(_ context.Context, _, _ uint) (*models.FollowEdge, error) { return nil, nil },
		getPendingForTargetFn: func(_ context.Context, id, _ uint) (*models.FollowEdge, error) { return nil, models.NewNotFoundError("Follow request", id) },
		updateStatusFn:        func(_ context.Context, _ uint, _ models.ConnectionStatus) error { return nil },
		deleteFn:              func(_ context.Context, _ uint) error { return nil },
		listPendingFn:         func(_ context.Context, _ uint) ([]models.FollowEdge, error) { return nil, nil },
		countFollowersFn:      func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countFollowingFn:      func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		acceptedTargetIDsFn:   func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
		deleteAllForUserFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// chatRepoStub is a stub for repository.ChatRepository.
type chatRepoStub struct {
	getConversationFn        func(context.Context, uint) (*models.Conversation, error)
	getConversationBetweenFn func(context.Context, uint, uint) (*models.Conversation, error)
	createConversationFn     func(context.Context, uint, uint) (*models.Conversation, error)
	listUserConversationsFn  func(context.Context, uint) ([]*models.Conversation, error)
	isParticipantFn          func(context.Context, uint, uint) (bool, error)
	deleteConversationFn     func(context.Context, uint) error
	createMessageFn          func(context.Context, *models.Message) error
	getMessageFn             func(context.Context, uint) (*models.Message, error)
	listMessagesFn           func(context.Context, uint, int, int) ([]*models.Message, error)
	updateMessageFn          func(context.Context, *models.Message) error
	deleteMessageFn          func(context.Context, uint) error
	updateLastReadFn         func(context.Context, uint, uint) error
	conversationIDsFn        func(context.Context, uint) ([]uint, error)
}

func (s *chatRepoStub) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	return s.getConversationFn(ctx, id)
}
func (s *chatRepoStub) GetConversationBetween(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	return s.getConversationBetweenFn(ctx, userA, userB)
}
func (s *chatRepoStub) CreateConversation(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	return s.createConversationFn(ctx, userA, userB)
}
func (s *chatRepoStub) ListUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	return s.listUserConversationsFn(ctx, userID)
}
func (s *chatRepoStub) IsParticipant(ctx context.Context, convID, userID uint) (bool, error) {
	return s.isParticipantFn(ctx, convID, userID)
}
func (s *chatRepoStub) DeleteConversation(ctx context.Context, convID uint) error {
	return s.deleteConversationFn(ctx, convID)
}
func (s *chatRepoStub) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.createMessageFn(ctx, msg)
}
func (s *chatRepoStub) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	return s.getMessageFn(ctx, id)
}
func (s *chatRepoStub) ListMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error) {
	return s.listMessagesFn(ctx, convID, limit, offset)
}
func (s *chatRepoStub) UpdateMessage(ctx context.Context, msg *models.Message) error {
	return s.updateMessageFn(ctx, msg)
}
func (s *chatRepoStub) DeleteMessage(ctx context.Context, id uint) error {
	return s.deleteMessageFn(ctx, id)
}
func (s *chatRepoStub) UpdateLastRead(ctx context.Context, convID, userID uint) error {
	return s.updateLastReadFn(ctx, convID, userID)
}
func (s *chatRepoStub) ConversationIDsForUser(ctx context.Context, userID uint) ([]uint, error) {
	return s.conversationIDsFn(ctx, userID)
}

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		getConversationFn:        func(_ context.Context, id uint) (*models.Conversation, error) { return &models.Conversation{ID: id}, nil },
		getConversationBetweenFn: func(_ context.Context, _, _ uint) (*models.Conversation, error) { return nil, nil },
		createConversationFn: func(_ context.Context, _, _ uint) (*models.Conversation, error) {
			return &models.Conversation{ID: 1}, nil
		},
		listUserConversationsFn: func(_ context.Context, _ uint) ([]*models.Conversation, error) { return nil, nil },
		isParticipantFn:         func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		deleteConversationFn:    func(_ context.Context, _ uint) error { return nil },
		createMessageFn:         func(_ context.Context, _ *models.Message) error { return nil },
		getMessageFn:            func(_ context.Context, id uint) (*models.Message, error) { return &models.Message{ID: id}, nil },
		listMessagesFn:          func(_ context.Context, _ uint, _, _ int) ([]*models.Message, error) { return nil, nil },
		updateMessageFn:         func(_ context.Context, _ *models.Message) error { return nil },
		deleteMessageFn:         func(_ context.Context, _ uint) error { return nil },
		updateLastReadFn:        func(_ context.Context, _, _ uint) error { return nil },
		conversationIDsFn:       func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// recordingMailer captures sent messages for assertions.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// assertAppErrorCode asserts that err is an AppError with the given code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeValidation)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func assertAuthRequiredError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeAuthRequired)
}
