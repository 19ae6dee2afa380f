package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/serialbook/pkg/domain"
)

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func testPost(creator, id string, published *time.Time) *domain.StoredPost {
	return &domain.StoredPost{
		SourceItem: domain.SourceItem{
			Title:      "title " + id,
			Body:       "<p>body " + id + "</p>",
			URL:        "https://www.patreon.com/posts/" + id,
			Images:     []string{"https://example.com/" + id + ".png"},
			Published:  published,
			ExternalID: id,
		},
		CreatorSlug: creator,
	}
}

func tsPtr(ts time.Time) *time.Time { return &ts }

func TestRepositories_Ping(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))
}

func TestNewRepositories_InvalidDSN(t *testing.T) {
	_, err := NewRepositories(context.Background(), Config{DSN: "invalid://database/url"})
	assert.Error(t, err)
}

func TestNewRepositories_FileDB(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/test.db?mode=rwc"
	repos, err := NewRepositories(context.Background(), Config{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, repos.Close())

	// schema init is idempotent
	repos, err = NewRepositories(context.Background(), Config{DSN: dsn})
	require.NoError(t, err)
	require.NoError(t, repos.Close())
}

func TestRepositories_ConcurrentUpserts(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/test.db?mode=rwc&_txlock=immediate&_pragma=busy_timeout(5000)"
	repos, err := NewRepositories(context.Background(), Config{DSN: dsn, MaxOpenConns: 4})
	require.NoError(t, err)
	defer repos.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := repos.Post.Upsert(ctx, testPost("writer", fmt.Sprintf("post-%d", n%10), nil))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := repos.Post.Count(ctx, "writer")
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestCriticalError(t *testing.T) {
	err := withRetry(context.Background(), "op", func() error { return ErrNotFound })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "op: not found", err.Error())

	calls := 0
	err = withRetry(context.Background(), "op", func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	assert.True(t, isLockError(fmt.Errorf("SQLITE_BUSY")))
	assert.False(t, isLockError(nil))
	assert.False(t, isLockError(fmt.Errorf("syntax error")))
}
