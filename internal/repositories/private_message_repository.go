package repositories

import (
	"time"

	"github.com/chatwave/backend/internal/models"
	"gorm.io/gorm"
)

// PrivateMessageRepository defines the interface for direct-message streams.
// A stream is the pair (userID, peerID) in either direction; ordering and
// cursors work exactly as in the public log. It also owns the read markers:
// IsRead flips false to true only, only for the receiver.
type PrivateMessageRepository interface {
	Append(senderID, receiverID uint, body string) (*models.PrivateMessage, error)
	GetByID(id uint) (*models.PrivateMessageView, error)
	FetchNewer(userID, peerID, cursorID uint, limit int) ([]models.PrivateMessageView, error)
	FetchOlder(userID, peerID, cursorID uint, limit int) ([]models.PrivateMessageView, error)
	Count(userID, peerID uint) (int64, error)
	MarkRead(receiverID, senderID uint) error
	UnreadCounts(receiverID uint) (map[uint]int64, int64, error)
	ChatPartners(userID uint) ([]models.ChatPartner, error)
}

// PostgresPrivateMessageRepository implements PrivateMessageRepository for PostgreSQL
type PostgresPrivateMessageRepository struct {
	db *gorm.DB
}

// NewPostgresPrivateMessageRepository creates a new PostgresPrivateMessageRepository
func NewPostgresPrivateMessageRepository(db *gorm.DB) *PostgresPrivateMessageRepository {
	return &PostgresPrivateMessageRepository{db: db}
}

const privateViewSelect = "pm.id, pm.sender_id, pm.receiver_id, pm.message, pm.is_read, pm.created_at, users.username, users.avatar"

// Append stores a new private message in the sender/receiver stream.
func (r *PostgresPrivateMessageRepository) Append(senderID, receiverID uint, body string) (*models.PrivateMessage, error) {
	msg := &models.PrivateMessage{SenderID: senderID, ReceiverID: receiverID, Body: body}
	if err := r.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// GetByID returns a single message hydrated with its sender, the shape the
// send endpoint echoes back.
func (r *PostgresPrivateMessageRepository) GetByID(id uint) (*models.PrivateMessageView, error) {
	var msg models.PrivateMessageView
	err := r.db.Table("private_messages AS pm").
		Select(privateViewSelect).
		Joins("JOIN users ON pm.sender_id = users.id").
		Where("pm.id = ?", id).
		Take(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *PostgresPrivateMessageRepository) streamWhere(q *gorm.DB, userID, peerID uint) *gorm.DB {
	return q.Where("(pm.sender_id = ? AND pm.receiver_id = ?) OR (pm.sender_id = ? AND pm.receiver_id = ?)",
		userID, peerID, peerID, userID)
}

// FetchNewer returns up to limit messages with id > cursorID from the
// userID/peerID stream, ascending.
func (r *PostgresPrivateMessageRepository) FetchNewer(userID, peerID, cursorID uint, limit int) ([]models.PrivateMessageView, error) {
	var msgs []models.PrivateMessageView
	q := r.db.Table("private_messages AS pm").
		Select(privateViewSelect).
		Joins("JOIN users ON pm.sender_id = users.id").
		Where("pm.id > ?", cursorID)
	err := r.streamWhere(q, userID, peerID).
		Order("pm.id ASC").
		Limit(limit).
		Scan(&msgs).Error
	return msgs, err
}

// FetchOlder returns up to limit messages with id < cursorID, reversed to
// chronological order.
func (r *PostgresPrivateMessageRepository) FetchOlder(userID, peerID, cursorID uint, limit int) ([]models.PrivateMessageView, error) {
	var msgs []models.PrivateMessageView
	q := r.db.Table("private_messages AS pm").
		Select(privateViewSelect).
		Joins("JOIN users ON pm.sender_id = users.id").
		Where("pm.id < ?", cursorID)
	err := r.streamWhere(q, userID, peerID).
		Order("pm.id DESC").
		Limit(limit).
		Scan(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// Count returns the total number of messages in a stream.
func (r *PostgresPrivateMessageRepository) Count(userID, peerID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.PrivateMessage{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Count(&total).Error
	return total, err
}

// MarkRead flips every unread message from senderID to receiverID to read.
// Idempotent: a second call matches no rows.
func (r *PostgresPrivateMessageRepository) MarkRead(receiverID, senderID uint) error {
	return r.db.Model(&models.PrivateMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true).Error
}

// UnreadCounts aggregates unread messages for a receiver, keyed by sender,
// plus the grand total used for the global badge.
func (r *PostgresPrivateMessageRepository) UnreadCounts(receiverID uint) (map[uint]int64, int64, error) {
	var rows []struct {
		SenderID uint
		Count    int64
	}
	err := r.db.Model(&models.PrivateMessage{}).
		Select("sender_id, COUNT(*) as count").
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Group("sender_id").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	counts := make(map[uint]int64, len(rows))
	var total int64
	for _, row := range rows {
		counts[row.SenderID] = row.Count
		total += row.Count
	}
	return counts, total, nil
}

// ChatPartners lists every user the given user has exchanged messages with,
// newest conversation first, with per-partner unread counts.
func (r *PostgresPrivateMessageRepository) ChatPartners(userID uint) ([]models.ChatPartner, error) {
	var partners []models.ChatPartner
	err := r.db.Raw(`
		SELECT u.id AS user_id, u.username, u.avatar, u.status, u.last_active,
		       MAX(pm.created_at) AS last_message_time,
		       COALESCE(SUM(CASE WHEN pm.receiver_id = ? AND pm.is_read = ? THEN 1 ELSE 0 END), 0) AS unread_count
		FROM private_messages pm
		JOIN users u ON u.id = CASE WHEN pm.sender_id = ? THEN pm.receiver_id ELSE pm.sender_id END
		WHERE pm.sender_id = ? OR pm.receiver_id = ?
		GROUP BY u.id, u.username, u.avatar, u.status, u.last_active
		ORDER BY last_message_time DESC`,
		userID, false, userID, userID, userID).
		Scan(&partners).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range partners {
		if partners[i].Status == models.StatusBanned {
			continue
		}
		if models.IsOnline(partners[i].LastActive, now) {
			partners[i].Status = models.StatusOnline
		} else {
			partners[i].Status = models.StatusOffline
		}
	}
	return partners, nil
}
