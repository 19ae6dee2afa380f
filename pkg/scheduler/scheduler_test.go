package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/serialbook/pkg/domain"
)

func TestScheduler_StartStop(t *testing.T) {
	m := newSyncerMocks(map[string][]domain.SourceItem{"alice": items("a1"), "bob": items("b1"), "carol": items("c1")})
	s := NewScheduler(m.syncer(0, false), time.Hour)
	assert.Nil(t, s.LastReport())

	s.Start(context.Background())
	require.Eventually(t, func() bool { return s.LastReport() != nil }, time.Second, 10*time.Millisecond,
		"first sync runs immediately")
	s.Stop()

	assert.False(t, s.Running())
	assert.Equal(t, 3, s.LastReport().Added())
	assert.False(t, s.LastReport().Full)
}

func TestScheduler_Trigger(t *testing.T) {
	m := newSyncerMocks(map[string][]domain.SourceItem{"alice": items("a1"), "bob": items("b1"), "carol": items("c1")})
	s := NewScheduler(m.syncer(0, false), time.Hour)
	s.Start(context.Background())
	defer s.Stop()
	require.Eventually(t, func() bool { return s.LastReport() != nil }, time.Second, 10*time.Millisecond)

	assert.True(t, s.Trigger(true))
	require.Eventually(t, func() bool { r := s.LastReport(); return r != nil && r.Full }, time.Second, 10*time.Millisecond)
	assert.Len(t, m.settings.SetTimeCalls(), 1)
	assert.Equal(t, 0, s.LastReport().Added(), "nothing new on second sync")
}

func TestScheduler_TriggerPending(t *testing.T) {
	s := NewScheduler(nil, time.Hour) // not started, nothing consumes triggers
	assert.True(t, s.Trigger(false))
	assert.False(t, s.Trigger(true), "only one pending request")
}

func TestScheduler_Interval(t *testing.T) {
	m := newSyncerMocks(map[string][]domain.SourceItem{"alice": nil, "bob": nil, "carol": nil})
	s := NewScheduler(m.syncer(0, false), 20*time.Millisecond)
	s.Start(context.Background())
	require.Eventually(t, func() bool { return len(m.creators.ListCalls()) >= 3 }, time.Second, 10*time.Millisecond)
	s.Stop()
}
