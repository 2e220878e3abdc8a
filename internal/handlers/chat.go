package handlers

import (
	"net/http"

	"github.com/chatwave/backend/internal/cursor"
	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/observability"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/chatwave/backend/internal/ws"
	"github.com/labstack/echo/v4"
)

// ChatHandler serves the public chat room: the append-only message log, the
// id-cursor polling endpoints, and the presence views.
type ChatHandler struct {
	messageRepository  repositories.MessageRepository
	presenceRepository repositories.PresenceRepository
	hub                *ws.Hub
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(messageRepo repositories.MessageRepository, presenceRepo repositories.PresenceRepository, hub *ws.Hub) *ChatHandler {
	return &ChatHandler{
		messageRepository:  messageRepo,
		presenceRepository: presenceRepo,
		hub:                hub,
	}
}

// RegisterChatRoutes registers public chat routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chat/messages", h.GetMessages)
	g.POST("/chat/messages", h.SendMessage)
	g.GET("/chat/active-users", h.GetActiveUsers)
	g.POST("/chat/status", h.UpdateStatus)
}

// GetMessages returns a window of the public log relative to the last_id
// cursor. direction=older pages backwards; anything else polls forward.
// Bad cursors or limits clamp instead of erroring so a confused client's
// polling loop keeps working.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	cursorID := cursor.ParseID(c.QueryParam("last_id"))
	limit := cursor.ParseLimit(c.QueryParam("limit"))
	direction := cursor.ParseDirection(c.QueryParam("direction"))

	var (
		messages []models.MessageView
		err      error
	)
	if direction == cursor.DirectionOlder {
		messages, err = h.messageRepository.FetchOlder(cursorID, limit)
	} else {
		messages, err = h.messageRepository.FetchNewer(cursorID, limit)
	}
	if err != nil {
		return failStore(c, err)
	}

	total, err := h.messageRepository.Count()
	if err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{
		"messages": messages,
		"total":    total,
		"has_more": cursor.HasMore(len(messages), limit),
	})
}

// SendMessage appends a message to the public log and broadcasts it.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Message cannot be empty")
	}

	msg, err := h.messageRepository.Append(user.ID, req.Body)
	if err != nil {
		return failStore(c, err)
	}
	observability.IncMessageSent("public")

	// Push is a wake-up only; pollers reconcile via cursors if it is lost.
	go h.hub.BroadcastPublicMessage(models.MessageView{
		ID:        msg.ID,
		UserID:    user.ID,
		Username:  user.Username,
		Avatar:    user.Avatar,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	})

	return respond(c, http.StatusCreated, echo.Map{"message_id": msg.ID})
}

// GetActiveUsers lists users active within the presence window, ordered by
// username.
func (h *ChatHandler) GetActiveUsers(c echo.Context) error {
	users, err := h.presenceRepository.ListActive(models.PresenceWindow)
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"users": users})
}

// UpdateStatus is the client's explicit online/offline hook, fired on page
// unload. Best effort; liveness is still derived from last_active.
func (h *ChatHandler) UpdateStatus(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid status")
	}

	var err error
	if req.Status == models.StatusOffline {
		err = h.presenceRepository.SetOffline(user.ID)
	} else {
		err = h.presenceRepository.Touch(user.ID)
	}
	if err != nil {
		return failStore(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{})
}
