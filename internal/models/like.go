package models

import "time"

// PostLike represents a like on a post. The (post_id, user_id) pair is
// unique; liking twice toggles instead of duplicating.
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	CreatedAt time.Time `json:"created_at"`
}

// LikePostRequest defines the request body for toggling a like
type LikePostRequest struct {
	PostID uint `json:"post_id" validate:"required"`
}
