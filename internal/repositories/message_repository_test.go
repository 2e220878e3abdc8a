package repositories

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageAppendAssignsIncreasingIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := seedUser(t, db, "alice")

	var lastID uint
	for i := 0; i < 5; i++ {
		msg, err := repo.Append(alice.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
		assert.Greater(t, msg.ID, lastID)
		lastID = msg.ID
	}
}

func TestMessageFetchNewerFromZeroReturnsEarliest(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := seedUser(t, db, "alice")

	for i := 0; i < 3; i++ {
		_, err := repo.Append(alice.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	msgs, err := repo.FetchNewer(0, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "msg 0", msgs[0].Body)
	assert.Equal(t, "alice", msgs[0].Username)
	for i := 1; i < len(msgs); i++ {
		assert.Greater(t, msgs[i].ID, msgs[i-1].ID)
	}
}

func TestMessageFetchNewerAtTailIsEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := seedUser(t, db, "alice")

	var lastID uint
	for i := 0; i < 3; i++ {
		msg, err := repo.Append(alice.ID, "hi")
		require.NoError(t, err)
		lastID = msg.ID
	}

	msgs, err := repo.FetchNewer(lastID, 50)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMessageFetchOlderReturnsChronologicalWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := seedUser(t, db, "alice")

	// 60 messages, ids 1..60.
	for i := 1; i <= 60; i++ {
		_, err := repo.Append(alice.ID, fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	msgs, err := repo.FetchOlder(60, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 50)
	// The 50 ids just below the cursor, in chronological order.
	assert.Equal(t, uint(10), msgs[0].ID)
	assert.Equal(t, uint(59), msgs[49].ID)

	msgs, err = repo.FetchOlder(10, 50)
	require.NoError(t, err)
	require.Len(t, msgs, 9)
	assert.Equal(t, uint(1), msgs[0].ID)
	assert.Equal(t, uint(9), msgs[8].ID)
}

func TestMessageCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresMessageRepository(db)
	alice := seedUser(t, db, "alice")

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	for i := 0; i < 4; i++ {
		_, err := repo.Append(alice.ID, "hi")
		require.NoError(t, err)
	}

	total, err = repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}
