package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatwave/backend/internal/models"
)

func TestSendFriendRequestRejectsDuplicatesEitherDirection(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.SendFriendRequest(&models.Friendship{UserID: alice.ID, FriendID: bob.ID}))

	err := repo.SendFriendRequest(&models.Friendship{UserID: alice.ID, FriendID: bob.ID})
	assert.ErrorIs(t, err, ErrRequestPending)

	// The reverse direction is the same pair.
	err = repo.SendFriendRequest(&models.Friendship{UserID: bob.ID, FriendID: alice.ID})
	assert.ErrorIs(t, err, ErrRequestPending)
}

func TestSendFriendRequestRejectsExistingFriends(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	req := &models.Friendship{UserID: alice.ID, FriendID: bob.ID}
	require.NoError(t, repo.SendFriendRequest(req))
	require.NoError(t, repo.UpdateStatus(req.ID, models.FriendshipAccepted))

	err := repo.SendFriendRequest(&models.Friendship{UserID: bob.ID, FriendID: alice.ID})
	assert.ErrorIs(t, err, ErrAlreadyFriends)
}

func TestGetFriendsSeesBothDirections(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	// Alice requested bob; carol requested alice. Both accepted.
	toBob := &models.Friendship{UserID: alice.ID, FriendID: bob.ID}
	require.NoError(t, repo.SendFriendRequest(toBob))
	require.NoError(t, repo.UpdateStatus(toBob.ID, models.FriendshipAccepted))

	fromCarol := &models.Friendship{UserID: carol.ID, FriendID: alice.ID}
	require.NoError(t, repo.SendFriendRequest(fromCarol))
	require.NoError(t, repo.UpdateStatus(fromCarol.ID, models.FriendshipAccepted))

	friends, err := repo.GetFriends(alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	assert.Equal(t, "bob", friends[0].Username)
	assert.Equal(t, "carol", friends[1].Username)
}

func TestPendingRequestsAreDirectional(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFriendshipRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.SendFriendRequest(&models.Friendship{UserID: alice.ID, FriendID: bob.ID}))

	incoming, err := repo.GetIncomingRequests(bob.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, "alice", incoming[0].Username)

	incoming, err = repo.GetIncomingRequests(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)

	outgoing, err := repo.GetOutgoingRequests(alice.ID)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, "bob", outgoing[0].Username)
}
