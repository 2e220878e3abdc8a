package repositories

import (
	"time"

	"github.com/chatwave/backend/internal/models"
	"gorm.io/gorm"
)

// PresenceRepository tracks per-user liveness through the last_active
// column. This is heartbeat-by-request: every authenticated hit touches the
// timestamp, and "online" is derived at read time from the window, never
// from the stored status flag.
type PresenceRepository interface {
	Touch(userID uint) error
	SetOffline(userID uint) error
	ListActive(window time.Duration) ([]models.UserProfile, error)
}

// PostgresPresenceRepository implements PresenceRepository for PostgreSQL
type PostgresPresenceRepository struct {
	db *gorm.DB
}

// NewPostgresPresenceRepository creates a new PostgresPresenceRepository
func NewPostgresPresenceRepository(db *gorm.DB) *PostgresPresenceRepository {
	return &PostgresPresenceRepository{db: db}
}

// Touch records activity for a user, setting status online and advancing
// last_active to now. Banned users keep their status untouched.
func (r *PostgresPresenceRepository) Touch(userID uint) error {
	now := time.Now()
	return r.db.Model(&models.User{}).
		Where("id = ? AND status <> ?", userID, models.StatusBanned).
		Updates(map[string]interface{}{"status": models.StatusOnline, "last_active": now}).Error
}

// SetOffline is the client's explicit page-unload hook. Best effort only;
// the presence window is the real source of truth.
func (r *PostgresPresenceRepository) SetOffline(userID uint) error {
	return r.db.Model(&models.User{}).
		Where("id = ? AND status <> ?", userID, models.StatusBanned).
		Update("status", models.StatusOffline).Error
}

// ListActive returns users whose last activity falls inside the window,
// ordered by username.
func (r *PostgresPresenceRepository) ListActive(window time.Duration) ([]models.UserProfile, error) {
	now := time.Now()
	cutoff := now.Add(-window)

	var users []models.User
	err := r.db.Where("last_active > ? AND status <> ?", cutoff, models.StatusBanned).
		Order("username ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile(now))
	}
	return profiles, nil
}
