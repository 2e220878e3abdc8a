package models

import "time"

// Post represents a feed post. Likes is a denormalized count kept in sync by
// recounting post_likes after every like/unlike.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text"`
	Image     string    `json:"image,omitempty" gorm:"size:255"`
	Likes     int64     `json:"likes" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostView is a post joined with its author and the viewer's like state.
type PostView struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	Username      string    `json:"username"`
	Avatar        string    `json:"avatar,omitempty"`
	Content       string    `json:"content"`
	Image         string    `json:"image,omitempty"`
	Likes         int64     `json:"likes"`
	CommentsCount int64     `json:"comments_count"`
	Liked         bool      `json:"liked"`
	CreatedAt     time.Time `json:"created_at"`
}

// Pagination carries the offset-paged feed metadata. The feed uses
// page-number pagination; only the chat streams use id cursors.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalPosts  int64 `json:"total_posts"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
	Image   string `json:"image,omitempty" validate:"omitempty,max=255"`
}
