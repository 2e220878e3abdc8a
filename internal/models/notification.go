package models

import "time"

// Notification represents a user notification
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index"` // recipient
	FromUserID *uint     `json:"from_user_id,omitempty" gorm:"index"`
	Message    string    `json:"message" gorm:"type:text"`
	Link       string    `json:"link" gorm:"size:255"`
	IsRead     bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}
