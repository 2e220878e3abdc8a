package repositories

import (
	"time"

	"github.com/chatwave/backend/internal/models"
	"gorm.io/gorm"
)

// PasswordResetRepository defines the interface for password reset token operations
type PasswordResetRepository interface {
	Create(reset *models.PasswordReset) error
	GetValid(token string, now time.Time) (*models.PasswordReset, error)
	MarkUsed(id uint) error
}

// PostgresPasswordResetRepository implements PasswordResetRepository for PostgreSQL
type PostgresPasswordResetRepository struct {
	db *gorm.DB
}

// NewPostgresPasswordResetRepository creates a new PostgresPasswordResetRepository
func NewPostgresPasswordResetRepository(db *gorm.DB) *PostgresPasswordResetRepository {
	return &PostgresPasswordResetRepository{db: db}
}

// Create stores a new reset token
func (r *PostgresPasswordResetRepository) Create(reset *models.PasswordReset) error {
	return r.db.Create(reset).Error
}

// GetValid retrieves a token that is unused and not yet expired
func (r *PostgresPasswordResetRepository) GetValid(token string, now time.Time) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	if err := r.db.Where("token = ? AND used = ? AND expires_at > ?", token, false, now).
		First(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

// MarkUsed burns a token so it cannot be replayed
func (r *PostgresPasswordResetRepository) MarkUsed(id uint) error {
	return r.db.Model(&models.PasswordReset{}).Where("id = ?", id).Update("used", true).Error
}
