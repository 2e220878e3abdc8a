package repositories

import (
	"errors"

	"github.com/chatwave/backend/internal/models"
	"gorm.io/gorm"
)

// Pair-conflict errors returned by SendFriendRequest. Handlers map these to
// 409; any other error is a store failure.
var (
	ErrAlreadyFriends = errors.New("users are already friends")
	ErrRequestPending = errors.New("a pending friend request already exists between these users")
)

// FriendshipRepository defines the interface for friendship data operations
type FriendshipRepository interface {
	SendFriendRequest(req *models.Friendship) error
	GetFriendshipByID(id uint) (*models.Friendship, error)
	GetFriendshipBetween(userID, otherID uint) (*models.Friendship, error)
	GetIncomingRequests(userID uint) ([]models.FriendRequestView, error)
	GetOutgoingRequests(userID uint) ([]models.FriendRequestView, error)
	GetFriends(userID uint) ([]models.User, error)
	UpdateStatus(id uint, status string) error
	DeleteFriendship(id uint) error
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// SendFriendRequest creates a new pending friendship. At most one row may
// exist per pair regardless of direction.
func (r *PostgresFriendshipRepository) SendFriendRequest(req *models.Friendship) error {
	var existing models.Friendship
	err := r.db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		req.UserID, req.FriendID, req.FriendID, req.UserID).First(&existing).Error

	if err == nil {
		if existing.Status == models.FriendshipAccepted {
			return ErrAlreadyFriends
		}
		return ErrRequestPending
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	req.Status = models.FriendshipPending
	return r.db.Create(req).Error
}

// GetFriendshipByID retrieves a friendship row by ID
func (r *PostgresFriendshipRepository) GetFriendshipByID(id uint) (*models.Friendship, error) {
	var f models.Friendship
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// GetFriendshipBetween retrieves the friendship row for a pair, if any,
// in either direction.
func (r *PostgresFriendshipRepository) GetFriendshipBetween(userID, otherID uint) (*models.Friendship, error) {
	var f models.Friendship
	err := r.db.Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
		userID, otherID, otherID, userID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// GetIncomingRequests retrieves pending requests sent to a user
func (r *PostgresFriendshipRepository) GetIncomingRequests(userID uint) ([]models.FriendRequestView, error) {
	var requests []models.FriendRequestView
	err := r.db.Table("friendships").
		Select("friendships.id, friendships.user_id, friendships.created_at, users.username, users.avatar").
		Joins("JOIN users ON friendships.user_id = users.id").
		Where("friendships.friend_id = ? AND friendships.status = ?", userID, models.FriendshipPending).
		Order("friendships.created_at DESC").
		Scan(&requests).Error
	return requests, err
}

// GetOutgoingRequests retrieves pending requests a user has sent
func (r *PostgresFriendshipRepository) GetOutgoingRequests(userID uint) ([]models.FriendRequestView, error) {
	var requests []models.FriendRequestView
	err := r.db.Table("friendships").
		Select("friendships.id, friendships.friend_id AS user_id, friendships.created_at, users.username, users.avatar").
		Joins("JOIN users ON friendships.friend_id = users.id").
		Where("friendships.user_id = ? AND friendships.status = ?", userID, models.FriendshipPending).
		Order("friendships.created_at DESC").
		Scan(&requests).Error
	return requests, err
}

// GetFriends retrieves all accepted friends for a user
func (r *PostgresFriendshipRepository) GetFriends(userID uint) ([]models.User, error) {
	var friends []models.User
	subQuery1 := r.db.Table("friendships").Select("friend_id").Where("user_id = ? AND status = ?", userID, models.FriendshipAccepted)
	subQuery2 := r.db.Table("friendships").Select("user_id").Where("friend_id = ? AND status = ?", userID, models.FriendshipAccepted)

	if err := r.db.Where("id IN (?) OR id IN (?)", subQuery1, subQuery2).
		Order("username ASC").
		Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

// UpdateStatus updates the status of a friendship row
func (r *PostgresFriendshipRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Friendship{}).Where("id = ?", id).Update("status", status).Error
}

// DeleteFriendship deletes a friendship row (reject or unfriend)
func (r *PostgresFriendshipRepository) DeleteFriendship(id uint) error {
	return r.db.Delete(&models.Friendship{}, id).Error
}
