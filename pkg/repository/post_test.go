package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_UpsertAndExists(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	pub := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	exists, err := repos.Post.Exists(ctx, "writer", "p1")
	require.NoError(t, err)
	assert.False(t, exists)

	inserted, err := repos.Post.Upsert(ctx, testPost("writer", "p1", &pub))
	require.NoError(t, err)
	assert.True(t, inserted)

	exists, err = repos.Post.Exists(ctx, "writer", "p1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repos.Post.Exists(ctx, "other", "p1")
	require.NoError(t, err)
	assert.False(t, exists, "ids are scoped by creator")

	require.NoError(t, repos.Post.MarkRead(ctx, "writer", "p1", true))

	// re-upsert overwrites content, not counted as new, keeps read flag
	updated := testPost("writer", "p1", &pub)
	updated.Title = "new title"
	updated.Images = nil
	inserted, err = repos.Post.Upsert(ctx, updated)
	require.NoError(t, err)
	assert.False(t, inserted)

	post, err := repos.Post.Get(ctx, "writer", "p1")
	require.NoError(t, err)
	assert.Equal(t, "new title", post.Title)
	assert.Empty(t, post.Images)
	assert.True(t, post.IsRead)
	require.NotNil(t, post.Published)
	assert.True(t, pub.Equal(*post.Published))

	count, err := repos.Post.Count(ctx, "writer")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPostRepository_Get(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	_, err := repos.Post.Upsert(ctx, testPost("writer", "p1", nil))
	require.NoError(t, err)

	post, err := repos.Post.Get(ctx, "writer", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ExternalID)
	assert.Equal(t, "writer", post.CreatorSlug)
	assert.Equal(t, "<p>body p1</p>", post.Body)
	assert.Equal(t, []string{"https://example.com/p1.png"}, post.Images)
	assert.Nil(t, post.Published)
	assert.False(t, post.FetchedAt.IsZero())

	_, err = repos.Post.Get(ctx, "writer", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_ListExternalIDs(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := repos.Post.Upsert(ctx, testPost("writer", id, nil))
		require.NoError(t, err)
	}
	_, err := repos.Post.Upsert(ctx, testPost("other", "z", nil))
	require.NoError(t, err)

	ids, err := repos.Post.ListExternalIDs(ctx, "writer")
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"a": {}, "b": {}, "c": {}}, ids)

	ids, err = repos.Post.ListExternalIDs(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPostRepository_ListByCreator(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"p1", "p2", "p3"} {
		_, err := repos.Post.Upsert(ctx, testPost("writer", id, tsPtr(base.Add(time.Duration(i)*time.Hour))))
		require.NoError(t, err)
	}

	posts, err := repos.Post.ListByCreator(ctx, "writer", 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "p3", posts[0].ExternalID)
	assert.Equal(t, "p1", posts[2].ExternalID)

	posts, err = repos.Post.ListByCreator(ctx, "writer", 1, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p2", posts[0].ExternalID)
}

func TestPostRepository_Search(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	p1 := testPost("writer", "p1", nil)
	p1.Title = "Dark Tower: Chapter 1"
	p2 := testPost("writer", "p2", nil)
	p2.Body = "<p>the dark tower rises</p>"
	p3 := testPost("other", "p3", nil)
	p3.Title = "Dark Tower fan art"
	_, err := repos.Post.Upsert(ctx, p1)
	require.NoError(t, err)
	_, err = repos.Post.Upsert(ctx, p2)
	require.NoError(t, err)
	_, err = repos.Post.Upsert(ctx, p3)
	require.NoError(t, err)

	posts, err := repos.Post.Search(ctx, "dark tower", "", 0)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	posts, err = repos.Post.Search(ctx, "dark tower", "writer", 0)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, err = repos.Post.Search(ctx, "nothing like this", "", 0)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_ReadState(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		_, err := repos.Post.Upsert(ctx, testPost("writer", id, nil))
		require.NoError(t, err)
	}

	unread, err := repos.Post.UnreadCount(ctx, "writer")
	require.NoError(t, err)
	assert.Equal(t, 3, unread)

	require.NoError(t, repos.Post.MarkRead(ctx, "writer", "p1", true))
	require.NoError(t, repos.Post.MarkRead(ctx, "writer", "p2", true))
	require.NoError(t, repos.Post.MarkRead(ctx, "writer", "p2", false))

	unread, err = repos.Post.UnreadCount(ctx, "writer")
	require.NoError(t, err)
	assert.Equal(t, 2, unread)

	err = repos.Post.MarkRead(ctx, "writer", "missing", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostRepository_LatestPublished(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	latest, err := repos.Post.LatestPublished(ctx, "writer")
	require.NoError(t, err)
	assert.Nil(t, latest)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = repos.Post.Upsert(ctx, testPost("writer", "p1", tsPtr(base)))
	require.NoError(t, err)
	_, err = repos.Post.Upsert(ctx, testPost("writer", "p2", tsPtr(base.Add(48*time.Hour))))
	require.NoError(t, err)
	_, err = repos.Post.Upsert(ctx, testPost("writer", "p3", nil))
	require.NoError(t, err)

	latest, err = repos.Post.LatestPublished(ctx, "writer")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, base.Add(48*time.Hour).Equal(*latest))
}

func TestPostRepository_Adjacent(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"p1", "p2", "p3"} {
		_, err := repos.Post.Upsert(ctx, testPost("writer", id, tsPtr(base.Add(time.Duration(i)*time.Hour))))
		require.NoError(t, err)
	}
	_, err := repos.Post.Upsert(ctx, testPost("other", "x", tsPtr(base.Add(30*time.Minute))))
	require.NoError(t, err)

	t.Run("by published date", func(t *testing.T) {
		adj, err := repos.Post.Adjacent(ctx, "writer", "p2")
		require.NoError(t, err)
		assert.Equal(t, "p1", adj.PrevID)
		assert.Equal(t, "p3", adj.NextID)

		adj, err = repos.Post.Adjacent(ctx, "writer", "p1")
		require.NoError(t, err)
		assert.Empty(t, adj.PrevID)
		assert.Equal(t, "p2", adj.NextID)

		adj, err = repos.Post.Adjacent(ctx, "writer", "p3")
		require.NoError(t, err)
		assert.Equal(t, "p2", adj.PrevID)
		assert.Empty(t, adj.NextID)
	})

	t.Run("by fetch time without published date", func(t *testing.T) {
		for i, id := range []string{"u1", "u2", "u3"} {
			p := testPost("undated", id, nil)
			p.FetchedAt = base.Add(time.Duration(i) * time.Minute)
			_, err := repos.Post.Upsert(ctx, p)
			require.NoError(t, err)
		}
		adj, err := repos.Post.Adjacent(ctx, "undated", "u2")
		require.NoError(t, err)
		assert.Equal(t, "u1", adj.PrevID)
		assert.Equal(t, "u3", adj.NextID)
	})

	t.Run("unknown post", func(t *testing.T) {
		adj, err := repos.Post.Adjacent(ctx, "writer", "missing")
		require.NoError(t, err)
		assert.Empty(t, adj.PrevID)
		assert.Empty(t, adj.NextID)
	})
}
