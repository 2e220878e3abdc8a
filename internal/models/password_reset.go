package models

import "time"

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = time.Hour

// PasswordReset is a single-use password reset token. Tokens expire after
// ResetTokenTTL and are marked used on a successful reset, never deleted.
type PasswordReset struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Token     string    `json:"-" gorm:"size:64;uniqueIndex"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// RequestPasswordResetRequest defines the request body for starting a reset
type RequestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ConfirmPasswordResetRequest defines the request body for completing a reset
type ConfirmPasswordResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}
