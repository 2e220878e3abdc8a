package models

import "time"

// Message is one entry in the public chat room. Rows are append-only: the
// auto-increment id is the ordering key the cursor protocol depends on, so
// messages are never updated or deleted.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Body      string    `json:"message" gorm:"type:text;column:message"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// MessageView is a message joined with its author, the shape the chat
// endpoints return.
type MessageView struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar,omitempty"`
	Body      string    `json:"message" gorm:"column:message"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessageRequest defines the request body for posting to the public room
type SendMessageRequest struct {
	Body string `json:"message" validate:"required,min=1,max=2000"`
}

// UpdateStatusRequest is the client's best-effort presence hook, fired on
// page unload. Not guaranteed to arrive; IsOnline never depends on it.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=online offline"`
}

// ChatEvent is broadcast over websockets when a message is appended.
type ChatEvent struct {
	Type    string       `json:"type"`
	Message *MessageView `json:"message,omitempty"`
}
