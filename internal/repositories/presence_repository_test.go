package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatwave/backend/internal/models"
)

func TestPresenceTouchAndListActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPresenceRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	// Bob was last seen an hour ago.
	stale := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", bob.ID).
		Update("last_active", stale).Error)

	require.NoError(t, repo.Touch(alice.ID))

	profiles, err := repo.ListActive(models.PresenceWindow)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "alice", profiles[0].Username)
	assert.True(t, profiles[0].Online)
}

func TestPresenceTouchSkipsBannedUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPresenceRepository(db)
	mallory := seedUser(t, db, "mallory")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", mallory.ID).
		Update("status", models.StatusBanned).Error)

	require.NoError(t, repo.Touch(mallory.ID))

	var got models.User
	require.NoError(t, db.First(&got, mallory.ID).Error)
	assert.Equal(t, models.StatusBanned, got.Status)
	assert.Nil(t, got.LastActive)

	profiles, err := repo.ListActive(models.PresenceWindow)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestPresenceSetOfflineKeepsActivityWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPresenceRepository(db)
	alice := seedUser(t, db, "alice")

	require.NoError(t, repo.Touch(alice.ID))
	require.NoError(t, repo.SetOffline(alice.ID))

	var got models.User
	require.NoError(t, db.First(&got, alice.ID).Error)
	assert.Equal(t, models.StatusOffline, got.Status)
	// last_active survives the unload hook; the window still counts the
	// user as active until it expires.
	require.NotNil(t, got.LastActive)

	profiles, err := repo.ListActive(models.PresenceWindow)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}
