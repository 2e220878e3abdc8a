package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatwave/backend/internal/models"
)

func TestGetPostsViewerLikeState(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	likeRepo := NewPostgresLikeRepository(db)
	commentRepo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	post := &models.Post{UserID: alice.ID, Content: "first post"}
	require.NoError(t, postRepo.CreatePost(post))

	require.NoError(t, likeRepo.CreateLike(&models.PostLike{PostID: post.ID, UserID: bob.ID}))
	require.NoError(t, postRepo.RecountLikes(post.ID))
	require.NoError(t, commentRepo.CreateComment(&models.Comment{PostID: post.ID, UserID: bob.ID, Content: "nice"}))

	// Bob sees his own like.
	posts, total, err := postRepo.GetPosts(bob.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].Liked)
	assert.Equal(t, int64(1), posts[0].Likes)
	assert.Equal(t, int64(1), posts[0].CommentsCount)
	assert.Equal(t, "alice", posts[0].Username)

	// Alice does not.
	posts, _, err = postRepo.GetPosts(alice.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.False(t, posts[0].Liked)
}

func TestRecountLikesAfterUnlike(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	likeRepo := NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	post := &models.Post{UserID: alice.ID, Content: "hello"}
	require.NoError(t, postRepo.CreatePost(post))

	require.NoError(t, likeRepo.CreateLike(&models.PostLike{PostID: post.ID, UserID: bob.ID}))
	require.NoError(t, postRepo.RecountLikes(post.ID))
	require.NoError(t, likeRepo.DeleteLike(post.ID, bob.ID))
	require.NoError(t, postRepo.RecountLikes(post.ID))

	got, err := postRepo.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Likes)

	liked, err := likeRepo.HasUserLikedPost(post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestDeletePostCascades(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	likeRepo := NewPostgresLikeRepository(db)
	commentRepo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	post := &models.Post{UserID: alice.ID, Content: "short lived"}
	require.NoError(t, postRepo.CreatePost(post))
	require.NoError(t, likeRepo.CreateLike(&models.PostLike{PostID: post.ID, UserID: bob.ID}))
	require.NoError(t, commentRepo.CreateComment(&models.Comment{PostID: post.ID, UserID: bob.ID, Content: "bye"}))

	require.NoError(t, postRepo.DeletePost(post.ID))

	_, err := postRepo.GetPostByID(post.ID)
	assert.Error(t, err)

	comments, err := commentRepo.GetCommentsByPostID(post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	count, err := likeRepo.GetLikesCountByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
