package repositories

import (
	"github.com/chatwave/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.CommentView, error)
	GetCommentsByPostID(postID uint) ([]models.CommentView, error)
	DeleteComment(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

const commentViewSelect = "comments.id, comments.post_id, comments.user_id, comments.content, comments.created_at, users.username, users.avatar"

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment with its author
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.CommentView, error) {
	var comment models.CommentView
	err := r.db.Table("comments").
		Select(commentViewSelect).
		Joins("JOIN users ON comments.user_id = users.id").
		Where("comments.id = ?", id).
		Take(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a post in chronological order
func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.CommentView, error) {
	var comments []models.CommentView
	err := r.db.Table("comments").
		Select(commentViewSelect).
		Joins("JOIN users ON comments.user_id = users.id").
		Where("comments.post_id = ?", postID).
		Order("comments.created_at ASC").
		Scan(&comments).Error
	return comments, err
}

// DeleteComment deletes a comment by ID
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
