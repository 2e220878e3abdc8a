package models

import "time"

// Friendship statuses. Pending is directional (UserID requested FriendID);
// accepted is symmetric and queried in either direction.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
)

// Friendship represents a friend request and, once accepted, the friendship
// itself. At most one row exists per pair regardless of direction.
type Friendship struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`   // requester
	FriendID  uint      `json:"friend_id" gorm:"index"` // recipient
	Status    string    `json:"status" gorm:"size:20;default:'pending'"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendRequestView is a pending request joined with the counterpart user.
type FriendRequestView struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateFriendRequest defines the request body for sending a friend request.
// The original flow adds friends by username, not id.
type CreateFriendRequest struct {
	Username string `json:"username" validate:"required"`
}

// UpdateFriendRequest defines the request body for answering a request
type UpdateFriendRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}
