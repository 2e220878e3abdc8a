package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chatwave/backend/internal/mocks"
	"github.com/chatwave/backend/internal/models"
)

func newUserTestServer(user *models.User) (*echo.Echo, *mocks.UserRepositoryMock) {
	userRepo := new(mocks.UserRepositoryMock)
	handler := NewUserHandler(userRepo)

	e := newTestEcho(user)
	handler.RegisterProfileRoutes(e.Group(""))
	return e, userRepo
}

func TestUpdateProfileClearsBioWithEmptyString(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice", Bio: "old bio", Avatar: "avatar.png"}
	e, userRepo := newUserTestServer(user)

	var saved *models.User
	userRepo.On("UpdateUser", mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(0).(*models.User)
		}).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(`{"bio":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, saved)
	assert.Equal(t, "", saved.Bio)
	// An absent field stays as it was.
	assert.Equal(t, "avatar.png", saved.Avatar)
}

func TestUpdateProfileOmittedFieldsUntouched(t *testing.T) {
	user := &models.User{ID: 1, Username: "alice", Bio: "old bio", Avatar: "avatar.png"}
	e, userRepo := newUserTestServer(user)

	var saved *models.User
	userRepo.On("UpdateUser", mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(0).(*models.User)
		}).Return(nil).Once()

	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(`{"avatar":"new.png"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, saved)
	assert.Equal(t, "old bio", saved.Bio)
	assert.Equal(t, "new.png", saved.Avatar)
}
