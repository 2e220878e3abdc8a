package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chatwave/backend/internal/mocks"
	"github.com/chatwave/backend/internal/models"
	"github.com/chatwave/backend/internal/repositories"
)

func newFriendshipTestServer(user *models.User) (*echo.Echo, *mocks.FriendshipRepositoryMock, *mocks.UserRepositoryMock, *mocks.NotificationRepositoryMock) {
	friendshipRepo := new(mocks.FriendshipRepositoryMock)
	userRepo := new(mocks.UserRepositoryMock)
	notificationRepo := new(mocks.NotificationRepositoryMock)
	handler := NewFriendshipHandler(friendshipRepo, userRepo, notificationRepo)

	e := newTestEcho(user)
	handler.RegisterFriendshipRoutes(e.Group(""))
	return e, friendshipRepo, userRepo, notificationRepo
}

func TestSendFriendRequestByUsername(t *testing.T) {
	e, friendshipRepo, userRepo, _ := newFriendshipTestServer(&models.User{ID: 1, Username: "alice"})

	userRepo.On("GetUserByUsername", "bob").Return(&models.User{ID: 2, Username: "bob"}, nil).Once()
	friendshipRepo.On("SendFriendRequest", mock.AnythingOfType("*models.Friendship")).
		Run(func(args mock.Arguments) {
			f := args.Get(0).(*models.Friendship)
			assert.Equal(t, uint(1), f.UserID)
			assert.Equal(t, uint(2), f.FriendID)
		}).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/request", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	friendshipRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestSendFriendRequestUnknownUsername(t *testing.T) {
	e, friendshipRepo, userRepo, _ := newFriendshipTestServer(&models.User{ID: 1, Username: "alice"})

	userRepo.On("GetUserByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/request", strings.NewReader(`{"username":"ghost"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	friendshipRepo.AssertNotCalled(t, "SendFriendRequest")
}

func TestSendFriendRequestToSelf(t *testing.T) {
	e, friendshipRepo, userRepo, _ := newFriendshipTestServer(&models.User{ID: 1, Username: "alice"})

	userRepo.On("GetUserByUsername", "alice").Return(&models.User{ID: 1, Username: "alice"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/request", strings.NewReader(`{"username":"alice"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	friendshipRepo.AssertNotCalled(t, "SendFriendRequest")
}

func TestSendFriendRequestPairConflict(t *testing.T) {
	e, friendshipRepo, userRepo, _ := newFriendshipTestServer(&models.User{ID: 1, Username: "alice"})

	userRepo.On("GetUserByUsername", "bob").Return(&models.User{ID: 2, Username: "bob"}, nil).Once()
	friendshipRepo.On("SendFriendRequest", mock.AnythingOfType("*models.Friendship")).
		Return(repositories.ErrRequestPending).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/request", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "A friend request between you is already pending", body["message"])
}

func TestSendFriendRequestStoreFailureStaysGeneric(t *testing.T) {
	e, friendshipRepo, userRepo, _ := newFriendshipTestServer(&models.User{ID: 1, Username: "alice"})

	userRepo.On("GetUserByUsername", "bob").Return(&models.User{ID: 2, Username: "bob"}, nil).Once()
	storeErr := errors.New("pq: connection refused (SQLSTATE 08006) dial tcp 10.0.0.5:5432")
	friendshipRepo.On("SendFriendRequest", mock.AnythingOfType("*models.Friendship")).
		Return(storeErr).Once()

	req := httptest.NewRequest(http.MethodPost, "/friends/request", strings.NewReader(`{"username":"bob"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Driver failures are not conflicts, and their text never reaches the
	// client.
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Something went wrong", body["message"])
	assert.NotContains(t, rec.Body.String(), "SQLSTATE")
}

func TestAnswerFriendRequestRecipientOnly(t *testing.T) {
	// User 3 tries to answer a request addressed to user 2.
	e, friendshipRepo, _, _ := newFriendshipTestServer(&models.User{ID: 3, Username: "carol"})

	friendshipRepo.On("GetFriendshipByID", uint(10)).
		Return(&models.Friendship{ID: 10, UserID: 1, FriendID: 2, Status: models.FriendshipPending}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/friends/request/10/status", strings.NewReader(`{"status":"accepted"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	friendshipRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestAnswerFriendRequestAccept(t *testing.T) {
	e, friendshipRepo, _, notificationRepo := newFriendshipTestServer(&models.User{ID: 2, Username: "bob"})

	friendshipRepo.On("GetFriendshipByID", uint(10)).
		Return(&models.Friendship{ID: 10, UserID: 1, FriendID: 2, Status: models.FriendshipPending}, nil).Once()
	friendshipRepo.On("UpdateStatus", uint(10), models.FriendshipAccepted).Return(nil).Once()
	// The requester's notification fires on a goroutine after the response.
	notificationRepo.On("CreateNotification", mock.Anything).Return(nil).Maybe()

	req := httptest.NewRequest(http.MethodPut, "/friends/request/10/status", strings.NewReader(`{"status":"accepted"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	friendshipRepo.AssertExpectations(t)
}

func TestAnswerFriendRequestRejectDeletesRow(t *testing.T) {
	e, friendshipRepo, _, _ := newFriendshipTestServer(&models.User{ID: 2, Username: "bob"})

	friendshipRepo.On("GetFriendshipByID", uint(10)).
		Return(&models.Friendship{ID: 10, UserID: 1, FriendID: 2, Status: models.FriendshipPending}, nil).Once()
	friendshipRepo.On("DeleteFriendship", uint(10)).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/friends/request/10/status", strings.NewReader(`{"status":"rejected"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	friendshipRepo.AssertExpectations(t)
	friendshipRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestAnswerFriendRequestAlreadyAnswered(t *testing.T) {
	e, friendshipRepo, _, _ := newFriendshipTestServer(&models.User{ID: 2, Username: "bob"})

	friendshipRepo.On("GetFriendshipByID", uint(10)).
		Return(&models.Friendship{ID: 10, UserID: 1, FriendID: 2, Status: models.FriendshipAccepted}, nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/friends/request/10/status", strings.NewReader(`{"status":"accepted"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	friendshipRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestUnfriendRequiresAcceptedFriendship(t *testing.T) {
	e, friendshipRepo, _, _ := newFriendshipTestServer(&models.User{ID: 1, Username: "alice"})

	friendshipRepo.On("GetFriendshipBetween", uint(1), uint(2)).
		Return(&models.Friendship{ID: 10, UserID: 1, FriendID: 2, Status: models.FriendshipPending}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/friends/2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	friendshipRepo.AssertNotCalled(t, "DeleteFriendship")
}

func TestGetFriendsDerivesOnlineFlags(t *testing.T) {
	e, friendshipRepo, _, _ := newFriendshipTestServer(&models.User{ID: 1, Username: "alice"})

	friendshipRepo.On("GetFriends", uint(1)).
		Return([]models.User{{ID: 2, Username: "bob", Status: models.StatusOnline}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/friends", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	friends, ok := body["friends"].([]any)
	require.True(t, ok)
	require.Len(t, friends, 1)
	// Status says online but there is no recent activity, so online is false.
	friend := friends[0].(map[string]any)
	assert.Equal(t, false, friend["online"])
}
