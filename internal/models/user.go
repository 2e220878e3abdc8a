package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User statuses. Online/offline are advisory only; liveness is always
// derived from LastActive (see IsOnline). Banned blocks access entirely.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusBanned  = "banned"
)

// PresenceWindow is how long after the last activity a user still counts
// as online.
const PresenceWindow = 5 * time.Minute

type User struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Username   string     `json:"username" gorm:"size:50;uniqueIndex"`
	Email      string     `json:"email" gorm:"size:100;uniqueIndex"`
	Password   string     `json:"-"` // bcrypt hash, never serialized
	Bio        string     `json:"bio,omitempty" gorm:"type:text"`
	Avatar     string     `json:"avatar,omitempty" gorm:"size:255"`
	Status     string     `json:"status" gorm:"size:20;default:'offline';index"`
	IsAdmin    bool       `json:"is_admin" gorm:"default:false"`
	LastActive *time.Time `json:"last_active,omitempty" gorm:"index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsOnline reports whether a user with the given last-active time counts as
// online at now. Exactly PresenceWindow ago is offline. The stored status
// column is deliberately not consulted: it can be stale when the client
// never fired its unload hook.
func IsOnline(lastActive *time.Time, now time.Time) bool {
	if lastActive == nil {
		return false
	}
	return now.Sub(*lastActive) < PresenceWindow
}

// UserProfile is the public view of a user, with liveness derived rather
// than read from the status column.
type UserProfile struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	Bio        string     `json:"bio,omitempty"`
	Avatar     string     `json:"avatar,omitempty"`
	Online     bool       `json:"online"`
	LastActive *time.Time `json:"last_active,omitempty"`
}

// Profile converts a User into its public view.
func (u *User) Profile(now time.Time) UserProfile {
	return UserProfile{
		ID:         u.ID,
		Username:   u.Username,
		Bio:        u.Bio,
		Avatar:     u.Avatar,
		Online:     IsOnline(u.LastActive, now),
		LastActive: u.LastActive,
	}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest uses pointers so a missing field can be told apart
// from an empty string, which clears the value.
type UpdateProfileRequest struct {
	Bio    *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,max=255"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
