package models

import "time"

// PrivateMessage is one entry in a direct-message stream between two users.
// Append-only like public messages; the only mutable column is IsRead, which
// transitions false to true exactly once, and only by the receiver.
type PrivateMessage struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index"`
	ReceiverID uint      `json:"receiver_id" gorm:"index"`
	Body       string    `json:"message" gorm:"type:text;column:message"`
	IsRead     bool      `json:"is_read" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// PrivateMessageView is a private message joined with its sender.
type PrivateMessageView struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	ReceiverID uint      `json:"receiver_id"`
	Username   string    `json:"username"`
	Avatar     string    `json:"avatar,omitempty"`
	Body       string    `json:"message" gorm:"column:message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ChatPartner is one row of the conversation list: the other user plus the
// recency and unread badge data needed to render it.
type ChatPartner struct {
	UserID          uint       `json:"user_id"`
	Username        string     `json:"username"`
	Avatar          string     `json:"avatar,omitempty"`
	Status          string     `json:"status"`
	LastActive      *time.Time `json:"last_active,omitempty"`
	LastMessageTime time.Time  `json:"last_message_time"`
	UnreadCount     int64      `json:"unread_count"`
}

// SendPrivateMessageRequest defines the request body for a direct message
type SendPrivateMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Body       string `json:"message" validate:"required,min=1,max=2000"`
}
