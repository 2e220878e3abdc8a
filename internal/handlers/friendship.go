package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/chatwave/backend/internal/middleware"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendshipRepository   repositories.FriendshipRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(
	friendshipRepo repositories.FriendshipRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipRepository:   friendshipRepo,
		userRepository:         userRepo,
		notificationRepository: notificationRepo,
	}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends/requests/incoming", h.GetIncomingRequests)
	g.GET("/friends/requests/outgoing", h.GetOutgoingRequests)
	g.PUT("/friends/request/:id/status", h.AnswerFriendRequest)
	g.GET("/friends", h.GetFriends)
	g.DELETE("/friends/:id", h.Unfriend)
}

// SendFriendRequest sends a request to another user by username.
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Username is required")
	}

	target, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "User not found")
		}
		return failStore(c, err)
	}

	if target.ID == user.ID {
		return fail(c, http.StatusBadRequest, "Cannot send a friend request to yourself")
	}

	friendship := &models.Friendship{
		UserID:   user.ID,
		FriendID: target.ID,
	}
	if err := h.friendshipRepository.SendFriendRequest(friendship); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAlreadyFriends):
			return fail(c, http.StatusConflict, "You are already friends with this user")
		case errors.Is(err, repositories.ErrRequestPending):
			return fail(c, http.StatusConflict, "A friend request between you is already pending")
		default:
			return failStore(c, err)
		}
	}

	return respond(c, http.StatusCreated, echo.Map{"request": friendship})
}

// GetIncomingRequests lists pending requests addressed to the current user.
func (h *FriendshipHandler) GetIncomingRequests(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	requests, err := h.friendshipRepository.GetIncomingRequests(user.ID)
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"requests": requests})
}

// GetOutgoingRequests lists pending requests the current user has sent.
func (h *FriendshipHandler) GetOutgoingRequests(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	requests, err := h.friendshipRepository.GetOutgoingRequests(user.ID)
	if err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"requests": requests})
}

// AnswerFriendRequest accepts or rejects an incoming request. Rejection
// deletes the row so a new request can be sent later.
func (h *FriendshipHandler) AnswerFriendRequest(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request ID")
	}

	var req models.UpdateFriendRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Status must be accepted or rejected")
	}

	friendship, err := h.friendshipRepository.GetFriendshipByID(uint(requestID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "Friend request not found")
		}
		return failStore(c, err)
	}

	// Only the recipient may answer.
	if friendship.FriendID != user.ID {
		return fail(c, http.StatusForbidden, "You are not authorized to modify this friend request")
	}
	if friendship.Status != models.FriendshipPending {
		return fail(c, http.StatusBadRequest, "Friend request has already been answered")
	}

	if req.Status == models.FriendshipAccepted {
		if err := h.friendshipRepository.UpdateStatus(friendship.ID, models.FriendshipAccepted); err != nil {
			return failStore(c, err)
		}
		friendship.Status = models.FriendshipAccepted
		go h.notifyAccepted(user, friendship.UserID)
	} else {
		if err := h.friendshipRepository.DeleteFriendship(friendship.ID); err != nil {
			return failStore(c, err)
		}
		friendship.Status = "rejected"
	}

	return respond(c, http.StatusOK, echo.Map{"request": friendship})
}

func (h *FriendshipHandler) notifyAccepted(accepter *models.User, requesterID uint) {
	accepterID := accepter.ID
	notification := &models.Notification{
		UserID:     requesterID,
		FromUserID: &accepterID,
		Message:    fmt.Sprintf("%s accepted your friend request", accepter.Username),
		Link:       fmt.Sprintf("/profile/%d", accepterID),
	}
	if err := h.notificationRepository.CreateNotification(notification); err != nil {
		log.Printf("notification insert failed for friend accept: %v", err)
	}
}

// GetFriends lists accepted friends with derived online flags.
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	friends, err := h.friendshipRepository.GetFriends(user.ID)
	if err != nil {
		return failStore(c, err)
	}

	now := time.Now()
	profiles := make([]models.UserProfile, 0, len(friends))
	for i := range friends {
		profiles = append(profiles, friends[i].Profile(now))
	}
	return respond(c, http.StatusOK, echo.Map{"friends": profiles})
}

// Unfriend deletes an accepted friendship with the user given by :id.
func (h *FriendshipHandler) Unfriend(c echo.Context) error {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "Unauthorized")
	}

	friendID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid friend user ID")
	}

	friendship, err := h.friendshipRepository.GetFriendshipBetween(user.ID, uint(friendID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fail(c, http.StatusNotFound, "Friendship not found")
		}
		return failStore(c, err)
	}

	if friendship.Status != models.FriendshipAccepted {
		return fail(c, http.StatusBadRequest, "Users are not friends")
	}

	if err := h.friendshipRepository.DeleteFriendship(friendship.ID); err != nil {
		return failStore(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{})
}
