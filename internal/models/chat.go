package models

import "time"

// Conversation is a two-participant direct-message thread. It is created
// lazily on the first message between a pair of users.
type Conversation struct {
	ID           uint                      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
	Messages     []Message                 `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// ConversationParticipant links a user to a conversation.
type ConversationParticipant struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ConversationID uint       `gorm:"not null;uniqueIndex:idx_conv_participant" json:"conversation_id"`
	UserID         uint       `gorm:"not null;uniqueIndex:idx_conv_participant;index:idx_conv_participants_user" json:"user_id"`
	User           User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LastReadAt     *time.Time `json:"last_read_at,omitempty"`
}

// Message is a single direct message inside a conversation.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index:idx_messages_conversation" json:"conversation_id"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	Sender         User      `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsRead         bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
