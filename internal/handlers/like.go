package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	postRepository         repositories.PostRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(
	likeRepo repositories.LikeRepository,
	postRepo repositories.PostRepository,
	notificationRepo repositories.NotificationRepository,
) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		postRepository:         postRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/like", h.ToggleLike)
}

// ToggleLike likes a post, or removes the like if one already exists.
// Liking notifies the post owner; unliking is silent. The denormalized
// likes counter is refreshed in the background.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req models.LikePostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Post ID is required")
	}

	post, err := h.postRepository.GetPostByID(req.PostID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return failStore(c, err)
	}

	hasLiked, err := h.likeRepository.HasUserLikedPost(post.ID, user.ID)
	if err != nil {
		return failStore(c, err)
	}

	liked := !hasLiked
	if hasLiked {
		if err := h.likeRepository.DeleteLike(post.ID, user.ID); err != nil {
			return failStore(c, err)
		}
	} else {
		like := &models.PostLike{PostID: post.ID, UserID: user.ID}
		if err := h.likeRepository.CreateLike(like); err != nil {
			return failStore(c, err)
		}
		if post.UserID != user.ID {
			go h.notifyPostOwner(user, post)
		}
	}

	go func(postID uint) {
		if err := h.postRepository.RecountLikes(postID); err != nil {
			log.Printf("like recount failed for post %d: %v", postID, err)
		}
	}(post.ID)

	likes, err := h.likeRepository.GetLikesCountByPostID(post.ID)
	if err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{"liked": liked, "likes": likes})
}

func (h *LikeHandler) notifyPostOwner(liker *models.User, post *models.Post) {
	likerID := liker.ID
	notification := &models.Notification{
		UserID:     post.UserID,
		FromUserID: &likerID,
		Message:    fmt.Sprintf("%s liked your post", liker.Username),
		Link:       fmt.Sprintf("/feed?post=%d", post.ID),
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		log.Printf("notification insert failed for like on post %d: %v", post.ID, err)
	}
}
