package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vibehub/internal/cache"
	"vibehub/internal/mail"
	"vibehub/internal/middleware"
	"vibehub/internal/models"
	"vibehub/internal/repository"
	"vibehub/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements account lifecycle: signup with email verification,
// login checks, password reset, profile edits and full account deletion.
type UserService struct {
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	engRepo     repository.EngagementRepository
	connRepo    repository.ConnectionRepository
	chatRepo    repository.ChatRepository
	posts       *PostService
	mailer      mail.Mailer
	baseURL     string
}

// NewUserService returns a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	engRepo repository.EngagementRepository,
	connRepo repository.ConnectionRepository,
	chatRepo repository.ChatRepository,
	posts *PostService,
	mailer mail.Mailer,
	baseURL string,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		engRepo:     engRepo,
		connRepo:    connRepo,
		chatRepo:    chatRepo,
		posts:       posts,
		mailer:      mailer,
		baseURL:     baseURL,
	}
}

// SignupInput carries the registration fields.
type SignupInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Signup creates an unverified account and mails a verification token. The
// account stays invisible to login until verified; the sweeper removes it if
// the token expires unused.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	plain, tokenHash, err := generateTemporaryToken()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	expiry := time.Now().Add(temporaryTokenTTL)

	user := &models.User{
		Username:        in.Username,
		Email:           in.Email,
		Password:        string(hash),
		FullName:        in.FullName,
		VerifyTokenHash: tokenHash,
		VerifyExpiry:    &expiry,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.sendMail(user.Email, "Verify your VibeHub account", fmt.Sprintf(
		"Welcome to VibeHub, %s!\n\nVerify your email within %d minutes:\n%s/api/auth/verify-email?token=%s\n",
		user.Username, int(temporaryTokenTTL.Minutes()), s.baseURL, plain))

	return user, nil
}

// VerifyEmail marks the account matching the token as verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	user, err := s.userRepo.GetByVerifyTokenHash(ctx, hashTemporaryToken(token))
	if err != nil {
		return nil, err
	}
	if user == nil || user.VerifyExpiry == nil || user.VerifyExpiry.Before(time.Now()) {
		return nil, models.NewValidationError("Invalid or expired verification token")
	}

	user.IsVerified = true
	user.VerifyTokenHash = ""
	user.VerifyExpiry = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and returns the account. Unverified accounts and
// wrong passwords are indistinguishable from the outside.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewAuthRequiredError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewAuthRequiredError("Invalid credentials")
	}
	if !user.IsVerified {
		return nil, models.NewAuthRequiredError("Invalid credentials")
	}
	return user, nil
}

// ForgotPassword issues a reset token when the email is known. It reports
// success either way so the endpoint cannot be used to probe for accounts.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	plain, tokenHash, err := generateTemporaryToken()
	if err != nil {
		return models.NewInternalError(err)
	}
	expiry := time.Now().Add(temporaryTokenTTL)
	user.ResetTokenHash = tokenHash
	user.ResetExpiry = &expiry
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.sendMail(user.Email, "Reset your VibeHub password", fmt.Sprintf(
		"Hi %s,\n\nReset your password within %d minutes:\n%s/reset-password?token=%s\n\nIf you did not request this, ignore this email.\n",
		user.Username, int(temporaryTokenTTL.Minutes()), s.baseURL, plain))

	return nil
}

// ResetPassword sets a new password for the account matching the token.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByResetTokenHash(ctx, hashTemporaryToken(token))
	if err != nil {
		return err
	}
	if user == nil || user.ResetExpiry == nil || user.ResetExpiry.Before(time.Now()) {
		return models.NewValidationError("Invalid or expired reset token")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hash)
	user.ResetTokenHash = ""
	user.ResetExpiry = nil
	return s.userRepo.Update(ctx, user)
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	FullName string `json:"full_name"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	CoverImg string `json:"cover_img"`
}

// UpdateProfile edits the caller's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.FullName = in.FullName
	user.Bio = in.Bio
	user.Avatar = in.Avatar
	user.CoverImg = in.CoverImg
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPrivacy flips the account between public and private. Existing edges
// are untouched; only new follows are affected.
func (s *UserService) SetPrivacy(ctx context.Context, userID uint, private bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Private = private
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	// Cached anonymous feed pages may still list this author's posts.
	cache.InvalidateAnonFeed(ctx)
	return user, nil
}

// SearchUsers finds users by username fragment.
func (s *UserService) SearchUsers(ctx context.Context, query string, page, limit int) ([]models.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	page, limit = NormalizePage(page, limit, 50)
	return s.userRepo.Search(ctx, query, limit, (page-1)*limit)
}

// DeleteAccount removes the user and everything they own. The user row goes
// first so the account is immediately gone; dependent cleanup is best-effort
// and every step is retry-safe.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	logStep := func(step string, err error) {
		if err != nil {
			middleware.Logger.ErrorContext(ctx, "account cascade step failed",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("step", step),
				slog.String("error", err.Error()))
		}
	}

	// The user's posts, each with its own dependent cascade.
	postIDs, err := s.postRepo.ListIDsByAuthor(ctx, userID)
	logStep("list posts", err)
	if err == nil {
		logStep("delete posts", s.postRepo.DeleteByAuthor(ctx, userID))
		for _, postID := range postIDs {
			s.posts.CascadePostDependents(ctx, postID)
		}
	}

	// Comments the user wrote on other posts, and the likes on them.
	commentIDs, err := s.commentRepo.ListIDsByUser(ctx, userID)
	logStep("list comments", err)
	if err == nil {
		logStep("delete comment likes", s.engRepo.DeleteLikesByComments(ctx, commentIDs))
		logStep("delete comments", s.commentRepo.DeleteByUser(ctx, userID))
	}

	logStep("delete engagement", s.engRepo.DeleteAllForUser(ctx, userID))
	logStep("delete connections", s.connRepo.DeleteAllForUser(ctx, userID))

	convIDs, err := s.chatRepo.ConversationIDsForUser(ctx, userID)
	logStep("list conversations", err)
	for _, convID := range convIDs {
		logStep("delete conversation", s.chatRepo.DeleteConversation(ctx, convID))
	}

	return nil
}

// sendMail delivers in the background; failures are logged, never surfaced.
func (s *UserService) sendMail(to, subject, body string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mailer.Send(ctx, mail.Message{To: to, Subject: subject, Body: body}); err != nil {
			middleware.Logger.Error("mail delivery failed",
				slog.String("to", to),
				slog.String("subject", subject),
				slog.String("error", err.Error()))
		}
	}()
}
