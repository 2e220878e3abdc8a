package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/chatwave/backend/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUsers() ([]models.User, error) {
	args := m.Called()
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *UserRepositoryMock) DeleteUser(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *UserRepositoryMock) SearchUsers(query string) ([]models.User, error) {
	args := m.Called(query)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) UsernameExists(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepositoryMock) EmailExists(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepositoryMock) SetStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *UserRepositoryMock) SetAdmin(id uint, isAdmin bool) error {
	args := m.Called(id, isAdmin)
	return args.Error(0)
}

type PasswordResetRepositoryMock struct {
	mock.Mock
}

func (m *PasswordResetRepositoryMock) Create(reset *models.PasswordReset) error {
	args := m.Called(reset)
	return args.Error(0)
}

func (m *PasswordResetRepositoryMock) GetValid(token string, now time.Time) (*models.PasswordReset, error) {
	args := m.Called(token, now)
	var reset *models.PasswordReset
	if val := args.Get(0); val != nil {
		reset = val.(*models.PasswordReset)
	}
	return reset, args.Error(1)
}

func (m *PasswordResetRepositoryMock) MarkUsed(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type PresenceRepositoryMock struct {
	mock.Mock
}

func (m *PresenceRepositoryMock) Touch(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *PresenceRepositoryMock) SetOffline(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *PresenceRepositoryMock) ListActive(window time.Duration) ([]models.UserProfile, error) {
	args := m.Called(window)
	var profiles []models.UserProfile
	if val := args.Get(0); val != nil {
		profiles = val.([]models.UserProfile)
	}
	return profiles, args.Error(1)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Append(userID uint, body string) (*models.Message, error) {
	args := m.Called(userID, body)
	var msg *models.Message
	if val := args.Get(0); val != nil {
		msg = val.(*models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) FetchNewer(cursorID uint, limit int) ([]models.MessageView, error) {
	args := m.Called(cursorID, limit)
	var views []models.MessageView
	if val := args.Get(0); val != nil {
		views = val.([]models.MessageView)
	}
	return views, args.Error(1)
}

func (m *MessageRepositoryMock) FetchOlder(cursorID uint, limit int) ([]models.MessageView, error) {
	args := m.Called(cursorID, limit)
	var views []models.MessageView
	if val := args.Get(0); val != nil {
		views = val.([]models.MessageView)
	}
	return views, args.Error(1)
}

func (m *MessageRepositoryMock) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

type PrivateMessageRepositoryMock struct {
	mock.Mock
}

func (m *PrivateMessageRepositoryMock) Append(senderID, receiverID uint, body string) (*models.PrivateMessage, error) {
	args := m.Called(senderID, receiverID, body)
	var msg *models.PrivateMessage
	if val := args.Get(0); val != nil {
		msg = val.(*models.PrivateMessage)
	}
	return msg, args.Error(1)
}

func (m *PrivateMessageRepositoryMock) GetByID(id uint) (*models.PrivateMessageView, error) {
	args := m.Called(id)
	var view *models.PrivateMessageView
	if val := args.Get(0); val != nil {
		view = val.(*models.PrivateMessageView)
	}
	return view, args.Error(1)
}

func (m *PrivateMessageRepositoryMock) FetchNewer(userID, peerID, cursorID uint, limit int) ([]models.PrivateMessageView, error) {
	args := m.Called(userID, peerID, cursorID, limit)
	var views []models.PrivateMessageView
	if val := args.Get(0); val != nil {
		views = val.([]models.PrivateMessageView)
	}
	return views, args.Error(1)
}

func (m *PrivateMessageRepositoryMock) FetchOlder(userID, peerID, cursorID uint, limit int) ([]models.PrivateMessageView, error) {
	args := m.Called(userID, peerID, cursorID, limit)
	var views []models.PrivateMessageView
	if val := args.Get(0); val != nil {
		views = val.([]models.PrivateMessageView)
	}
	return views, args.Error(1)
}

func (m *PrivateMessageRepositoryMock) Count(userID, peerID uint) (int64, error) {
	args := m.Called(userID, peerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PrivateMessageRepositoryMock) MarkRead(receiverID, senderID uint) error {
	args := m.Called(receiverID, senderID)
	return args.Error(0)
}

func (m *PrivateMessageRepositoryMock) UnreadCounts(receiverID uint) (map[uint]int64, int64, error) {
	args := m.Called(receiverID)
	var counts map[uint]int64
	if val := args.Get(0); val != nil {
		counts = val.(map[uint]int64)
	}
	return counts, args.Get(1).(int64), args.Error(2)
}

func (m *PrivateMessageRepositoryMock) ChatPartners(userID uint) ([]models.ChatPartner, error) {
	args := m.Called(userID)
	var partners []models.ChatPartner
	if val := args.Get(0); val != nil {
		partners = val.([]models.ChatPartner)
	}
	return partners, args.Error(1)
}

type FriendshipRepositoryMock struct {
	mock.Mock
}

func (m *FriendshipRepositoryMock) SendFriendRequest(req *models.Friendship) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *FriendshipRepositoryMock) GetFriendshipByID(id uint) (*models.Friendship, error) {
	args := m.Called(id)
	var f *models.Friendship
	if val := args.Get(0); val != nil {
		f = val.(*models.Friendship)
	}
	return f, args.Error(1)
}

func (m *FriendshipRepositoryMock) GetFriendshipBetween(userID, otherID uint) (*models.Friendship, error) {
	args := m.Called(userID, otherID)
	var f *models.Friendship
	if val := args.Get(0); val != nil {
		f = val.(*models.Friendship)
	}
	return f, args.Error(1)
}

func (m *FriendshipRepositoryMock) GetIncomingRequests(userID uint) ([]models.FriendRequestView, error) {
	args := m.Called(userID)
	var views []models.FriendRequestView
	if val := args.Get(0); val != nil {
		views = val.([]models.FriendRequestView)
	}
	return views, args.Error(1)
}

func (m *FriendshipRepositoryMock) GetOutgoingRequests(userID uint) ([]models.FriendRequestView, error) {
	args := m.Called(userID)
	var views []models.FriendRequestView
	if val := args.Get(0); val != nil {
		views = val.([]models.FriendRequestView)
	}
	return views, args.Error(1)
}

func (m *FriendshipRepositoryMock) GetFriends(userID uint) ([]models.User, error) {
	args := m.Called(userID)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *FriendshipRepositoryMock) UpdateStatus(id uint, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *FriendshipRepositoryMock) DeleteFriendship(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) CreateNotification(notification *models.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) GetByUserID(userID uint, page, limit int) ([]models.Notification, int64, error) {
	args := m.Called(userID, page, limit)
	var notifications []models.Notification
	if val := args.Get(0); val != nil {
		notifications = val.([]models.Notification)
	}
	return notifications, args.Get(1).(int64), args.Error(2)
}

func (m *NotificationRepositoryMock) GetUnreadCount(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepositoryMock) MarkAsRead(notificationID, userID uint) error {
	args := m.Called(notificationID, userID)
	return args.Error(0)
}

func (m *NotificationRepositoryMock) MarkAllAsRead(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}
