package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/chatwave/backend/internal/cursor"
	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/observability"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/chatwave/backend/internal/ws"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PrivateMessageHandler serves direct-message streams: cursor fetches, sends
// with notification side effects, read markers and unread aggregation.
type PrivateMessageHandler struct {
	pmRepository           repositories.PrivateMessageRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	hub                    *ws.Hub
}

// NewPrivateMessageHandler creates a new PrivateMessageHandler
func NewPrivateMessageHandler(
	pmRepo repositories.PrivateMessageRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
	hub *ws.Hub,
) *PrivateMessageHandler {
	return &PrivateMessageHandler{
		pmRepository:           pmRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
		hub:                    hub,
	}
}

// RegisterPrivateMessageRoutes registers direct-message routes
func (h *PrivateMessageHandler) RegisterPrivateMessageRoutes(g *echo.Group) {
	g.GET("/messages", h.GetConversation)
	g.POST("/messages", h.SendMessage)
	g.POST("/messages/read", h.MarkRead)
	g.GET("/messages/unread", h.GetUnreadCounts)
	g.GET("/messages/chats", h.GetChatPartners)
}

// GetConversation returns a cursor window of the stream between the current
// user and the peer given by user_id.
func (h *PrivateMessageHandler) GetConversation(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	peerID := cursor.ParseID(c.QueryParam("user_id"))
	if peerID == 0 {
		return fail(c, http.StatusBadRequest, "User ID is required")
	}
	cursorID := cursor.ParseID(c.QueryParam("last_id"))
	limit := cursor.ParseLimit(c.QueryParam("limit"))
	direction := cursor.ParseDirection(c.QueryParam("direction"))

	var (
		messages []models.PrivateMessageView
		err      error
	)
	if direction == cursor.DirectionOlder {
		messages, err = h.pmRepository.FetchOlder(user.ID, peerID, cursorID, limit)
	} else {
		messages, err = h.pmRepository.FetchNewer(user.ID, peerID, cursorID, limit)
	}
	if err != nil {
		return failStore(c, err)
	}

	total, err := h.pmRepository.Count(user.ID, peerID)
	if err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{
		"messages": messages,
		"total":    total,
		"has_more": cursor.HasMore(len(messages), limit),
	})
}

// SendMessage appends to a private stream. The receiver's notification and
// websocket wake-up are fire-and-forget: their failure never fails the send.
func (h *PrivateMessageHandler) SendMessage(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req models.SendPrivateMessageRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Receiver ID and message are required")
	}
	if req.ReceiverID == user.ID {
		return fail(c, http.StatusBadRequest, "Cannot message yourself")
	}

	if _, err := h.userRepository.GetUserByID(req.ReceiverID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "Receiver not found")
		}
		return failStore(c, err)
	}

	msg, err := h.pmRepository.Append(user.ID, req.ReceiverID, req.Body)
	if err != nil {
		return failStore(c, err)
	}
	observability.IncMessageSent("private")

	view, err := h.pmRepository.GetByID(msg.ID)
	if err != nil {
		return failStore(c, err)
	}

	go h.notifyReceiver(user, req.ReceiverID, view)

	return respond(c, http.StatusCreated, echo.Map{"message": view})
}

func (h *PrivateMessageHandler) notifyReceiver(sender *models.User, receiverID uint, view *models.PrivateMessageView) {
	senderID := sender.ID
	notification := &models.Notification{
		UserID:     receiverID,
		FromUserID: &senderID,
		Message:    fmt.Sprintf("%s sent you a message", sender.Username),
		Link:       fmt.Sprintf("/chat/%d", senderID),
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		log.Printf("notification insert failed for message %d: %v", view.ID, err)
	}
	h.hub.NotifyUser(receiverID, echo.Map{"type": "private_message", "message": view})
}

// MarkRead flips all unread messages from sender_id to the current user.
// Idempotent; calling again is a no-op.
func (h *PrivateMessageHandler) MarkRead(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	senderID := cursor.ParseID(c.QueryParam("sender_id"))
	if senderID == 0 {
		return fail(c, http.StatusBadRequest, "Sender ID is required")
	}

	if err := h.pmRepository.MarkRead(user.ID, senderID); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}

// GetUnreadCounts returns per-sender unread counts plus the grand total.
func (h *PrivateMessageHandler) GetUnreadCounts(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	counts, total, err := h.pmRepository.UnreadCounts(user.ID)
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{
		"unread_counts": counts,
		"total_unread":  total,
	})
}

// GetChatPartners lists users the current user has a conversation with,
// most recent first.
func (h *PrivateMessageHandler) GetChatPartners(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	partners, err := h.pmRepository.ChatPartners(user.ID)
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"users": partners})
}
