package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/serialbook/pkg/domain"
	"github.com/umputun/serialbook/pkg/scheduler"
	"github.com/umputun/serialbook/server/mocks"
)

func testConfig(listen string) *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) {
			return listen, 30 * time.Second
		},
	}
}

func testScheduler() *mocks.SchedulerMock {
	return &mocks.SchedulerMock{
		TriggerFunc:    func(full bool) bool { return true },
		RunningFunc:    func() bool { return false },
		LastReportFunc: func() *scheduler.Report { return nil },
	}
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(":8080"), &mocks.DatabaseMock{}, testScheduler(), &mocks.SeriesDetectorMock{}, "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	srv := New(testConfig(fmt.Sprintf("127.0.0.1:%d", port)), &mocks.DatabaseMock{}, testScheduler(),
		&mocks.SeriesDetectorMock{}, "1.0.0", true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(body))
	assert.Equal(t, "serialbook", resp.Header.Get("App-Name"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop")
	}
}

func TestServer_statusHandler(t *testing.T) {
	lastFull := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	db := &mocks.DatabaseMock{
		CountPostsFunc: func(ctx context.Context, creator string) (int, int, error) {
			assert.Empty(t, creator)
			return 42, 7, nil
		},
		ListCreatorsFunc: func(ctx context.Context) ([]domain.Creator, error) {
			return []domain.Creator{{Slug: "jane"}, {Slug: "bob"}}, nil
		},
		LastFullSyncFunc: func(ctx context.Context) (time.Time, error) { return lastFull, nil },
	}
	sched := testScheduler()
	sched.RunningFunc = func() bool { return true }
	srv := New(testConfig(":8080"), db, sched, &mocks.SeriesDetectorMock{}, "1.2.3", false)

	req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.2.3", status["version"])
	assert.NotEmpty(t, status["time"])
	assert.InDelta(t, 42, status["posts"], 0)
	assert.InDelta(t, 7, status["unread"], 0)
	assert.InDelta(t, 2, status["creators"], 0)
	assert.Equal(t, true, status["syncing"])
	assert.Equal(t, "2026-03-01T10:00:00Z", status["last_full_sync"])
}

func TestServer_statusHandlerNoFullSync(t *testing.T) {
	db := &mocks.DatabaseMock{
		CountPostsFunc:   func(ctx context.Context, creator string) (int, int, error) { return 0, 0, nil },
		ListCreatorsFunc: func(ctx context.Context) ([]domain.Creator, error) { return nil, nil },
		LastFullSyncFunc: func(ctx context.Context) (time.Time, error) { return time.Time{}, nil },
	}
	srv := New(testConfig(":8080"), db, testScheduler(), &mocks.SeriesDetectorMock{}, "1.2.3", false)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/status", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)

	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.NotContains(t, status, "last_full_sync")
}
