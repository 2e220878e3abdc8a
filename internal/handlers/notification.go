package handlers

import (
	"net/http"
	"strconv"

	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

const notificationsPerPage = 20

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications lists the current user's notifications newest first.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	page := parsePage(c.QueryParam("page"))
	notifications, total, err := h.notificationRepository.GetByUserID(user.ID, page, notificationsPerPage)
	if err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{
		"notifications": notifications,
		"total":         total,
	})
}

// GetUnreadCount returns the unread notification badge count.
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	count, err := h.notificationRepository.GetUnreadCount(user.ID)
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"unread_count": count})
}

// MarkAsRead marks one of the current user's notifications as read.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid notification ID")
	}

	if err := h.notificationRepository.MarkAsRead(uint(notificationID), user.ID); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}

// MarkAllAsRead clears the current user's unread notifications.
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	if err := h.notificationRepository.MarkAllAsRead(user.ID); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}
