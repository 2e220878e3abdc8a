package repositories

import (
	"github.com/chatwave/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for the public chat message log.
// The log is append-only and ordered by id; fetches are windows relative to
// an id cursor.
type MessageRepository interface {
	Append(userID uint, body string) (*models.Message, error)
	FetchNewer(cursorID uint, limit int) ([]models.MessageView, error)
	FetchOlder(cursorID uint, limit int) ([]models.MessageView, error)
	Count() (int64, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

const messageViewSelect = "messages.id, messages.user_id, messages.message, messages.created_at, users.username, users.avatar"

// Append stores a new message. The assigned id is strictly greater than any
// existing message id, which is the ordering contract the cursor protocol
// relies on.
func (r *PostgresMessageRepository) Append(userID uint, body string) (*models.Message, error) {
	msg := &models.Message{UserID: userID, Body: body}
	if err := r.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// FetchNewer returns up to limit messages with id > cursorID in ascending
// order. A zero cursor returns the earliest window, establishing the
// client's initial page.
func (r *PostgresMessageRepository) FetchNewer(cursorID uint, limit int) ([]models.MessageView, error) {
	var msgs []models.MessageView
	err := r.db.Table("messages").
		Select(messageViewSelect).
		Joins("JOIN users ON messages.user_id = users.id").
		Where("messages.id > ?", cursorID).
		Order("messages.id ASC").
		Limit(limit).
		Scan(&msgs).Error
	return msgs, err
}

// FetchOlder returns up to limit messages with id < cursorID. The window is
// taken descending from the cursor, then reversed so callers always receive
// chronological order.
func (r *PostgresMessageRepository) FetchOlder(cursorID uint, limit int) ([]models.MessageView, error) {
	var msgs []models.MessageView
	err := r.db.Table("messages").
		Select(messageViewSelect).
		Joins("JOIN users ON messages.user_id = users.id").
		Where("messages.id < ?", cursorID).
		Order("messages.id DESC").
		Limit(limit).
		Scan(&msgs).Error
	if err != nil {
		return nil, err
	}
	reverseMessageViews(msgs)
	return msgs, nil
}

// Count returns the total number of messages in the public stream.
func (r *PostgresMessageRepository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&models.Message{}).Count(&total).Error
	return total, err
}

func reverseMessageViews(msgs []models.MessageView) {
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
}
