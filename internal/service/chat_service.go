package service

import (
	"context"
	"log/slog"
	"strings"

	"vibehub/internal/middleware"
	"vibehub/internal/models"
	"vibehub/internal/notifications"
	"vibehub/internal/repository"
)

const maxMessageLen = 4000

// ChatService implements two-party direct messaging. Conversations are
// created lazily on the first message; realtime delivery rides on the
// notifier and is always best-effort.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	notifier *notifications.Notifier
}

// NewChatService returns a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository, notifier *notifications.Notifier) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// MessagePage is one page of messages in chronological order.
type MessagePage struct {
	Messages []*models.Message `json:"messages"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// SendMessage delivers a message to recipientID, creating the conversation
// if the pair has never talked.
func (s *ChatService) SendMessage(ctx context.Context, senderID, recipientID uint, content string) (*models.Message, error) {
	if senderID == recipientID {
		return nil, models.NewValidationError("Cannot message yourself")
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(content) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 4000 characters)")
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	conv, err := s.chatRepo.GetConversationBetween(ctx, senderID, recipientID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if conv == nil {
		if conv, err = s.chatRepo.CreateConversation(ctx, senderID, recipientID); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, models.NewInternalError(err)
	}

	full, err := s.chatRepo.GetMessage(ctx, msg.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, recipientID, notifications.EventMessageNew, full)
	return full, nil
}

// ListMessages returns a page of the thread between the actor and otherID,
// oldest first within the page. No thread yet is an empty page, not an error.
func (s *ChatService) ListMessages(ctx context.Context, actorID, otherID uint, page, limit int) (*MessagePage, error) {
	page, limit = NormalizePage(page, limit, 100)

	conv, err := s.chatRepo.GetConversationBetween(ctx, actorID, otherID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if conv == nil {
		return &MessagePage{Messages: []*models.Message{}, Page: page, Limit: limit}, nil
	}

	messages, err := s.chatRepo.ListMessages(ctx, conv.ID, limit, (page-1)*limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := s.chatRepo.UpdateLastRead(ctx, conv.ID, actorID); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to update last read",
			slog.Uint64("conversation_id", uint64(conv.ID)),
			slog.String("error", err.Error()))
	}

	return &MessagePage{Messages: messages, Page: page, Limit: limit}, nil
}

// ListConversations returns the actor's threads, most recently active first.
func (s *ChatService) ListConversations(ctx context.Context, actorID uint) ([]*models.Conversation, error) {
	convs, err := s.chatRepo.ListUserConversations(ctx, actorID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return convs, nil
}

// UpdateMessage edits a message the actor sent.
func (s *ChatService) UpdateMessage(ctx context.Context, actorID, messageID uint, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if len(content) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 4000 characters)")
	}

	msg, err := s.chatRepo.GetMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != actorID {
		return nil, models.NewForbiddenError("You can only edit your own messages")
	}

	msg.Content = content
	if err := s.chatRepo.UpdateMessage(ctx, msg); err != nil {
		return nil, models.NewInternalError(err)
	}

	s.notifyOthers(ctx, msg.ConversationID, actorID, notifications.EventMessageUpdated, msg)
	return msg, nil
}

// DeleteMessage removes a message the actor sent.
func (s *ChatService) DeleteMessage(ctx context.Context, actorID, messageID uint) error {
	msg, err := s.chatRepo.GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != actorID {
		return models.NewForbiddenError("You can only delete your own messages")
	}

	if err := s.chatRepo.DeleteMessage(ctx, messageID); err != nil {
		return models.NewInternalError(err)
	}

	s.notifyOthers(ctx, msg.ConversationID, actorID, notifications.EventMessageDeleted, map[string]uint{
		"id":              msg.ID,
		"conversation_id": msg.ConversationID,
	})
	return nil
}

// DeleteConversation removes a thread the actor participates in, messages
// included. A thread the actor is not part of looks like a missing one.
func (s *ChatService) DeleteConversation(ctx context.Context, actorID, convID uint) error {
	ok, err := s.chatRepo.IsParticipant(ctx, convID, actorID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !ok {
		return models.NewNotFoundError("Conversation", convID)
	}
	if err := s.chatRepo.DeleteConversation(ctx, convID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (s *ChatService) publish(ctx context.Context, userID uint, eventType string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishUser(ctx, userID, notifications.Event{Type: eventType, Payload: payload}); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish event",
			slog.String("event", eventType),
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()))
	}
}

// notifyOthers publishes an event to every participant except the actor.
func (s *ChatService) notifyOthers(ctx context.Context, convID, actorID uint, eventType string, payload interface{}) {
	conv, err := s.chatRepo.GetConversation(ctx, convID)
	if err != nil {
		return
	}
	for _, p := range conv.Participants {
		if p.UserID != actorID {
			s.publish(ctx, p.UserID, eventType, payload)
		}
	}
}
