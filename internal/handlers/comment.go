package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	postRepository         repositories.PostRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	notificationRepo repositories.NotificationRepository,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		postRepository:         postRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:post_id/comments", h.GetComments)
	g.POST("/comments", h.AddComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// GetComments retrieves all comments on a post in chronological order.
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Post ID is required")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(uint(postID))
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"comments": comments})
}

// AddComment creates a comment and notifies the post owner (unless the
// commenter owns the post). The notification is best effort.
func (h *CommentHandler) AddComment(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Post ID and content are required")
	}

	post, err := h.postRepository.GetPostByID(req.PostID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return failStore(c, err)
	}

	comment := &models.Comment{
		PostID:  req.PostID,
		UserID:  user.ID,
		Content: req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return failStore(c, err)
	}

	view, err := h.commentRepository.GetCommentByID(comment.ID)
	if err != nil {
		return failStore(c, err)
	}

	if post.UserID != user.ID {
		go h.notifyPostOwner(user, post)
	}

	return respond(c, http.StatusCreated, echo.Map{"comment": view})
}

// DeleteComment deletes a comment owned by the current user (admins may
// delete any).
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "Comment not found")
		}
		return failStore(c, err)
	}

	if comment.UserID != user.ID && !user.IsAdmin {
		return fail(c, http.StatusForbidden, "You can only delete your own comments")
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}

func (h *CommentHandler) notifyPostOwner(commenter *models.User, post *models.Post) {
	commenterID := commenter.ID
	notification := &models.Notification{
		UserID:     post.UserID,
		FromUserID: &commenterID,
		Message:    fmt.Sprintf("%s commented on your post", commenter.Username),
		Link:       fmt.Sprintf("/feed?post=%d", post.ID),
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		log.Printf("notification insert failed for comment on post %d: %v", post.ID, err)
	}
}
