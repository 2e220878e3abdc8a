package repositories

import (
	"github.com/chatwave/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for feed post operations. The feed
// is page-number paginated; only the chat streams use id cursors.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPosts(viewerID uint, page, perPage int) ([]models.PostView, int64, error)
	GetPostsByUser(viewerID, userID uint, page, perPage int) ([]models.PostView, int64, error)
	DeletePost(id uint) error
	RecountLikes(postID uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post in PostgreSQL
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by ID from PostgreSQL
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

const postViewSelect = `posts.id, posts.user_id, posts.content, posts.image, posts.likes, posts.created_at,
	users.username, users.avatar,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count,
	(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id AND post_likes.user_id = ?) > 0 AS liked`

// GetPosts retrieves a page of the feed, newest first, with author details
// and the viewer's like state.
func (r *PostgresPostRepository) GetPosts(viewerID uint, page, perPage int) ([]models.PostView, int64, error) {
	var total int64
	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.PostView
	offset := (page - 1) * perPage
	err := r.db.Table("posts").
		Select(postViewSelect, viewerID).
		Joins("JOIN users ON posts.user_id = users.id").
		Order("posts.created_at DESC").
		Offset(offset).Limit(perPage).
		Scan(&posts).Error
	return posts, total, err
}

// GetPostsByUser retrieves a page of one user's posts, newest first.
func (r *PostgresPostRepository) GetPostsByUser(viewerID, userID uint, page, perPage int) ([]models.PostView, int64, error) {
	var total int64
	if err := r.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.PostView
	offset := (page - 1) * perPage
	err := r.db.Table("posts").
		Select(postViewSelect, viewerID).
		Joins("JOIN users ON posts.user_id = users.id").
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Offset(offset).Limit(perPage).
		Scan(&posts).Error
	return posts, total, err
}

// DeletePost deletes a post and its dependent rows
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// RecountLikes refreshes the denormalized likes column from post_likes.
func (r *PostgresPostRepository) RecountLikes(postID uint) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", postID).
		Update("likes", r.db.Model(&models.PostLike{}).Select("COUNT(*)").Where("post_id = ?", postID)).
		Error
}
