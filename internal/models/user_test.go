package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOnline(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		lastActive *time.Time
		want       bool
	}{
		{"never active", nil, false},
		{"just now", timePtr(now), true},
		{"one second ago", timePtr(now.Add(-time.Second)), true},
		{"just inside the window", timePtr(now.Add(-PresenceWindow + time.Second)), true},
		{"exactly the window ago", timePtr(now.Add(-PresenceWindow)), false},
		{"well past the window", timePtr(now.Add(-time.Hour)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOnline(tt.lastActive, now))
		})
	}
}

func TestUserProfileDerivesOnline(t *testing.T) {
	now := time.Now()
	stale := now.Add(-time.Hour)

	// Status column says online but the user went silent an hour ago.
	u := User{ID: 7, Username: "alice", Status: StatusOnline, LastActive: &stale}
	profile := u.Profile(now)

	assert.False(t, profile.Online)
	assert.Equal(t, "alice", profile.Username)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
