package repositories

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatwave/backend/internal/models"
)

func TestPrivateMessageStreamIsolation(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPrivateMessageRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := repo.Append(alice.ID, bob.ID, "to bob")
	require.NoError(t, err)
	_, err = repo.Append(bob.ID, alice.ID, "to alice")
	require.NoError(t, err)
	_, err = repo.Append(alice.ID, carol.ID, "to carol")
	require.NoError(t, err)

	// The alice/bob stream contains both directions but never carol's message.
	msgs, err := repo.FetchNewer(alice.ID, bob.ID, 0, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "to bob", msgs[0].Body)
	assert.Equal(t, "to alice", msgs[1].Body)
	assert.Equal(t, "alice", msgs[0].Username)
	assert.Equal(t, "bob", msgs[1].Username)

	// Same stream seen from bob's side.
	msgs, err = repo.FetchNewer(bob.ID, alice.ID, 0, 50)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)

	total, err := repo.Count(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestPrivateMessageFetchOlderIsChronological(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPrivateMessageRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	var lastID uint
	for i := 1; i <= 10; i++ {
		msg, err := repo.Append(alice.ID, bob.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
		lastID = msg.ID
	}

	msgs, err := repo.FetchOlder(alice.ID, bob.ID, lastID, 5)
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	assert.Equal(t, "msg 5", msgs[0].Body)
	assert.Equal(t, "msg 9", msgs[4].Body)
	for i := 1; i < len(msgs); i++ {
		assert.Greater(t, msgs[i].ID, msgs[i-1].ID)
	}
}

func TestPrivateMessageMarkReadIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPrivateMessageRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	for i := 0; i < 3; i++ {
		_, err := repo.Append(alice.ID, bob.ID, "hi")
		require.NoError(t, err)
	}
	// A message in the opposite direction must stay untouched.
	reply, err := repo.Append(bob.ID, alice.ID, "hello back")
	require.NoError(t, err)

	_, total, err := repo.UnreadCounts(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	require.NoError(t, repo.MarkRead(bob.ID, alice.ID))

	counts, total, err := repo.UnreadCounts(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, counts)

	// Second call matches no rows and still succeeds.
	require.NoError(t, repo.MarkRead(bob.ID, alice.ID))

	// Bob's reply to alice was not marked.
	view, err := repo.GetByID(reply.ID)
	require.NoError(t, err)
	assert.False(t, view.IsRead)
}

func TestPrivateMessageUnreadCountsGroupBySender(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPrivateMessageRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	for i := 0; i < 2; i++ {
		_, err := repo.Append(bob.ID, alice.ID, "from bob")
		require.NoError(t, err)
	}
	_, err := repo.Append(carol.ID, alice.ID, "from carol")
	require.NoError(t, err)

	counts, total, err := repo.UnreadCounts(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(2), counts[bob.ID])
	assert.Equal(t, int64(1), counts[carol.ID])
}

func TestChatPartnersUnreadAndOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPrivateMessageRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	// Older conversation with bob, newer with carol.
	_, err := repo.Append(bob.ID, alice.ID, "old chat")
	require.NoError(t, err)
	_, err = repo.Append(alice.ID, carol.ID, "sent by alice")
	require.NoError(t, err)
	_, err = repo.Append(carol.ID, alice.ID, "newer chat")
	require.NoError(t, err)

	partners, err := repo.ChatPartners(alice.ID)
	require.NoError(t, err)
	require.Len(t, partners, 2)

	assert.Equal(t, "carol", partners[0].Username)
	assert.Equal(t, "bob", partners[1].Username)
	// Unread counts only count messages alice received.
	assert.Equal(t, int64(1), partners[0].UnreadCount)
	assert.Equal(t, int64(1), partners[1].UnreadCount)
	// Neither user has recent activity, so both derive to offline.
	assert.Equal(t, models.StatusOffline, partners[0].Status)
}
