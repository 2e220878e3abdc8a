package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler handles profile and user search requests
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// RegisterProfileRoutes registers profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.PUT("/profile/password", h.ChangePassword)
	g.GET("/users/:id", h.GetProfile)
	g.GET("/users/search", h.SearchUsers)
}

// GetOwnProfile returns the current user's profile.
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}
	return respond(c, http.StatusOK, echo.Map{"user": user.Profile(time.Now())})
}

// GetProfile returns another user's public profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.userRepository.GetUserByID(uint(userID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return failStore(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{"user": user.Profile(time.Now())})
}

// UpdateProfile updates the current user's bio and avatar.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid profile details")
	}

	// A field left out of the payload is untouched; an explicit empty
	// string clears it.
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"user": user.Profile(time.Now())})
}

// ChangePassword verifies the current password and sets a new one.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Current and new passwords are required")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return fail(c, http.StatusUnauthorized, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return failStore(c, err)
	}
	user.Password = string(hashed)

	if err := h.userRepository.UpdateUser(user); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}

// SearchUsers searches users by username or email substring.
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return fail(c, http.StatusBadRequest, "Search query is required")
	}

	users, err := h.userRepository.SearchUsers(query)
	if err != nil {
		return failStore(c, err)
	}

	now := time.Now()
	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile(now))
	}
	return respond(c, http.StatusOK, echo.Map{"users": profiles})
}
