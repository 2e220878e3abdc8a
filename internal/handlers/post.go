package handlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const postsPerPage = 10

// PostHandler handles HTTP requests related to feed posts
type PostHandler struct {
	postRepository repositories.PostRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository) *PostHandler {
	return &PostHandler{postRepository: postRepo}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.POST("/posts", h.CreatePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
	g.DELETE("/posts/:id", h.DeletePost)
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// GetPosts returns a page of the feed, newest first. The feed is
// page-number paginated, unlike the message endpoints.
func (h *PostHandler) GetPosts(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	page := parsePage(c.QueryParam("page"))
	posts, total, err := h.postRepository.GetPosts(user.ID, page, postsPerPage)
	if err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{
		"posts": posts,
		"pagination": models.Pagination{
			CurrentPage: page,
			TotalPages:  int(math.Ceil(float64(total) / float64(postsPerPage))),
			TotalPosts:  total,
		},
	})
}

// GetUserPosts returns a page of one user's posts.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid user ID")
	}

	page := parsePage(c.QueryParam("page"))
	posts, total, err := h.postRepository.GetPostsByUser(user.ID, uint(userID), page, postsPerPage)
	if err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{
		"posts": posts,
		"pagination": models.Pagination{
			CurrentPage: page,
			TotalPages:  int(math.Ceil(float64(total) / float64(postsPerPage))),
			TotalPosts:  total,
		},
	})
}

// CreatePost creates a new feed post.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Content is required")
	}

	post := &models.Post{
		UserID:  user.ID,
		Content: req.Content,
		Image:   req.Image,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusCreated, echo.Map{"post": post})
}

// DeletePost deletes a post owned by the current user (admins may delete any).
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "Post not found")
		}
		return failStore(c, err)
	}

	if post.UserID != user.ID && !user.IsAdmin {
		return fail(c, http.StatusForbidden, "You can only delete your own posts")
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}
