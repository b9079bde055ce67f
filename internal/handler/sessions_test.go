package handler

import (
	"testing"
	"time"

	"orfoepiya/internal/config"
	"orfoepiya/internal/domain"
	"orfoepiya/internal/drill"
	"orfoepiya/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestHandler(clock *fakeClock) *Handler {
	h := NewHandler(nil, nil, nil, nil, config.DrillConfig{
		StatsDebounce:     time.Hour,
		StatsWriteTimeout: time.Second,
	}, testutil.NewTestLogger())
	h.sessions.now = clock.Now
	return h
}

func newChatSession(writer drill.StatsWriter, learnerID int64) *chatSession {
	reporter := drill.NewReporter(writer, learnerID, "orfoepiya", time.Hour, time.Second, testutil.NewTestLogger())
	return &chatSession{
		session:  drill.NewSession(drill.WithObserver(reporter)),
		reporter: reporter,
		moduleID: "orfoepiya",
	}
}

func TestSessionStore_PutReturnsPrevious(t *testing.T) {
	store := newSessionStore()
	first := &chatSession{moduleID: "a"}
	second := &chatSession{moduleID: "b"}

	assert.Nil(t, store.put(1, first))
	assert.Same(t, first, store.put(1, second))

	got, ok := store.get(1)
	assert.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, store.len())
}

func TestSessionStore_GetTouchesSession(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := newSessionStore()
	store.now = clock.Now

	store.put(1, &chatSession{})
	store.put(2, &chatSession{})

	clock.now = clock.now.Add(20 * time.Minute)
	store.get(2)
	clock.now = clock.now.Add(15 * time.Minute)

	assert.Equal(t, []int64{1}, store.idle(30*time.Minute))
}

func TestSessionStore_RemoveIfIdle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := newSessionStore()
	store.now = clock.Now

	store.put(1, &chatSession{})

	assert.Nil(t, store.removeIfIdle(1, time.Minute))
	assert.Nil(t, store.removeIfIdle(2, time.Minute))

	clock.now = clock.now.Add(2 * time.Minute)
	assert.NotNil(t, store.removeIfIdle(1, time.Minute))
	assert.Equal(t, 0, store.len())
}

func TestHandler_ReapIdle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	h := newTestHandler(clock)

	writer := new(testutil.MockStatsWriter)
	writer.On("WriteStats", mock.Anything, int64(7), "orfoepiya", 3, 2).Return(nil).Once()

	idle := newChatSession(writer, 7)
	idle.reporter.Report(drill.Counters{TotalAttempts: 3, CorrectAnswers: 2})
	h.sessions.put(100, idle)

	clock.now = clock.now.Add(40 * time.Minute)
	h.sessions.put(200, newChatSession(writer, 8))

	reaped := h.ReapIdle(30 * time.Minute)

	assert.Equal(t, 1, reaped)
	_, ok := h.sessions.get(100)
	assert.False(t, ok)
	_, ok = h.sessions.get(200)
	assert.True(t, ok)

	// The pending snapshot was written on close
	writer.AssertExpectations(t)
}

func TestHandler_CloseAll(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	h := newTestHandler(clock)

	writer := new(testutil.MockStatsWriter)
	writer.On("WriteStats", mock.Anything, int64(1), "orfoepiya", 1, 1).Return(nil).Once()

	cs := newChatSession(writer, 1)
	cs.reporter.Report(drill.Counters{TotalAttempts: 1, CorrectAnswers: 1})
	h.sessions.put(10, cs)
	h.sessions.put(20, newChatSession(writer, 2))

	h.CloseAll()

	assert.Equal(t, 0, h.sessions.len())
	writer.AssertExpectations(t)
}

func TestHandler_LoginState(t *testing.T) {
	h := newTestHandler(&fakeClock{now: time.Now()})

	assert.False(t, h.IsLoggedIn(1))
	assert.False(t, h.IsAwaitingNickname(1))

	h.SetState(1, &domain.StateData{State: domain.StateWaitingNickname})
	assert.True(t, h.IsAwaitingNickname(1))

	h.SetState(1, &domain.StateData{State: domain.StateIdle, User: testutil.NewTestUser(5, "anna")})
	assert.True(t, h.IsLoggedIn(1))

	h.ResetState(1)
	assert.False(t, h.IsLoggedIn(1))
}
