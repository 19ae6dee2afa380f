package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/serialbook/pkg/domain"
)

func TestCreatorRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Creator.Save(ctx, domain.Creator{Slug: "jane", Name: "Jane", URL: "https://www.patreon.com/c/jane", Enabled: true}))
	require.NoError(t, repos.Creator.Save(ctx, domain.Creator{Slug: "bob", Name: "Bob", URL: "https://www.patreon.com/bob", Enabled: false}))

	t.Run("list", func(t *testing.T) {
		all, err := repos.Creator.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "bob", all[0].Slug)
		assert.Equal(t, "jane", all[1].Slug)

		enabled, err := repos.Creator.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, enabled, 1)
		assert.Equal(t, "jane", enabled[0].Slug)
		assert.Nil(t, enabled[0].LastSync)
	})

	t.Run("save updates existing", func(t *testing.T) {
		require.NoError(t, repos.Creator.Save(ctx, domain.Creator{Slug: "bob", Name: "Robert", URL: "https://www.patreon.com/bob", Enabled: true}))
		c, err := repos.Creator.Get(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "Robert", c.Name)
		assert.True(t, c.Enabled)
	})

	t.Run("empty slug rejected", func(t *testing.T) {
		assert.Error(t, repos.Creator.Save(ctx, domain.Creator{Name: "nobody"}))
	})

	t.Run("update sync", func(t *testing.T) {
		for _, id := range []string{"p1", "p2"} {
			_, err := repos.Post.Upsert(ctx, testPost("jane", id, nil))
			require.NoError(t, err)
		}
		syncTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, repos.Creator.UpdateSync(ctx, "jane", syncTime))

		c, err := repos.Creator.Get(ctx, "jane")
		require.NoError(t, err)
		assert.Equal(t, 2, c.TotalPosts)
		require.NotNil(t, c.LastSync)
		assert.True(t, syncTime.Equal(*c.LastSync))
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, repos.Creator.Remove(ctx, "jane"))
		_, err := repos.Creator.Get(ctx, "jane")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repos.Creator.Remove(ctx, "jane"), ErrNotFound)

		// posts are kept
		count, err := repos.Post.Count(ctx, "jane")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestSyncLogRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repos.SyncLog.Log(ctx, domain.SyncLogEntry{CreatorSlug: "jane", SyncTime: base, PostsAdded: 5, Status: domain.SyncSuccess}))
	require.NoError(t, repos.SyncLog.Log(ctx, domain.SyncLogEntry{CreatorSlug: "jane", SyncTime: base.Add(time.Hour),
		Status: domain.SyncError, ErrorMessage: "feed unavailable"}))
	require.NoError(t, repos.SyncLog.Log(ctx, domain.SyncLogEntry{CreatorSlug: "bob", SyncTime: base, Status: domain.SyncSuccess}))

	history, err := repos.SyncLog.History(ctx, "jane", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.SyncError, history[0].Status)
	assert.Equal(t, "feed unavailable", history[0].ErrorMessage)
	assert.Equal(t, 5, history[1].PostsAdded)
	assert.True(t, base.Equal(history[1].SyncTime))

	history, err = repos.SyncLog.History(ctx, "jane", 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSettingRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	value, err := repos.Setting.GetSetting(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, repos.Setting.SetSetting(ctx, "key", "v1"))
	require.NoError(t, repos.Setting.SetSetting(ctx, "key", "v2"))
	value, err = repos.Setting.GetSetting(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)

	ts, err := repos.Setting.GetTime(ctx, domain.SettingLastFullSync)
	require.NoError(t, err)
	assert.True(t, ts.IsZero())

	now := time.Date(2024, 5, 1, 12, 30, 15, 500, time.FixedZone("X", 3600))
	require.NoError(t, repos.Setting.SetTime(ctx, domain.SettingLastFullSync, now))
	ts, err = repos.Setting.GetTime(ctx, domain.SettingLastFullSync)
	require.NoError(t, err)
	assert.True(t, now.Equal(ts))

	require.NoError(t, repos.Setting.SetSetting(ctx, "bad", "not a time"))
	_, err = repos.Setting.GetTime(ctx, "bad")
	assert.Error(t, err)
}
