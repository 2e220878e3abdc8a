package handlers

import (
	"net/http"
	"strconv"

	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AdminHandler handles the admin user-management panel
type AdminHandler struct {
	userRepository repositories.UserRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(userRepo repositories.UserRepository) *AdminHandler {
	return &AdminHandler{userRepository: userRepo}
}

// RegisterAdminRoutes registers admin routes; the group must already be
// gated by middleware.RequireAdmin.
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/users", h.ListUsers)
	g.PUT("/users/:id/ban", h.BanUser)
	g.PUT("/users/:id/unban", h.UnbanUser)
	g.PUT("/users/:id/admin", h.SetAdmin)
	g.DELETE("/users/:id", h.DeleteUser)
}

// ListUsers returns every account for the admin panel.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"users": users})
}

func (h *AdminHandler) targetUser(c echo.Context) (*models.User, error) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	user, err := h.userRepository.GetUserByID(uint(userID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

// BanUser sets a user's status to banned, cutting off their access.
func (h *AdminHandler) BanUser(c echo.Context) error {
	admin, _ := middleware.UserFromContext(c)
	target, err := h.targetUser(c)
	if err != nil {
		return err
	}
	if admin != nil && target.ID == admin.ID {
		return fail(c, http.StatusBadRequest, "Cannot ban yourself")
	}
	if err := h.userRepository.SetStatus(target.ID, models.StatusBanned); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}

// UnbanUser restores a banned account to offline.
func (h *AdminHandler) UnbanUser(c echo.Context) error {
	target, err := h.targetUser(c)
	if err != nil {
		return err
	}
	if err := h.userRepository.SetStatus(target.ID, models.StatusOffline); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}

// SetAdmin grants or revokes admin rights via the is_admin body field.
func (h *AdminHandler) SetAdmin(c echo.Context) error {
	admin, _ := middleware.UserFromContext(c)
	target, err := h.targetUser(c)
	if err != nil {
		return err
	}

	var req struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}

	if admin != nil && target.ID == admin.ID && !req.IsAdmin {
		return fail(c, http.StatusBadRequest, "Cannot revoke your own admin rights")
	}

	if err := h.userRepository.SetAdmin(target.ID, req.IsAdmin); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}

// DeleteUser removes an account entirely.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	admin, _ := middleware.UserFromContext(c)
	target, err := h.targetUser(c)
	if err != nil {
		return err
	}
	if admin != nil && target.ID == admin.ID {
		return fail(c, http.StatusBadRequest, "Cannot delete yourself")
	}
	if err := h.userRepository.DeleteUser(target.ID); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}
