package handler

import (
	"sync"
	"time"

	"orfoepiya/internal/drill"

	"go.uber.org/zap"
)

// chatSession is a running drill of one chat
type chatSession struct {
	session    *drill.Session
	reporter   *drill.Reporter
	moduleID   string
	lastActive time.Time
}

// sessionStore keeps the running drills by user id
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*chatSession
	now      func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		sessions: make(map[int64]*chatSession),
		now:      time.Now,
	}
}

// put stores cs and returns the session it replaced, if any
func (s *sessionStore) put(userID int64, cs *chatSession) *chatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs.lastActive = s.now()
	prev := s.sessions[userID]
	s.sessions[userID] = cs
	return prev
}

// get returns the session of userID and marks it active
func (s *sessionStore) get(userID int64) (*chatSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.sessions[userID]
	if ok {
		cs.lastActive = s.now()
	}
	return cs, ok
}

func (s *sessionStore) remove(userID int64) *chatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := s.sessions[userID]
	delete(s.sessions, userID)
	return cs
}

// idle lists users whose sessions saw no activity for maxIdle
func (s *sessionStore) idle(maxIdle time.Duration) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	var ids []int64
	for id, cs := range s.sessions {
		if cs.lastActive.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

// removeIfIdle removes the session of userID only if it is still idle
func (s *sessionStore) removeIfIdle(userID int64, maxIdle time.Duration) *chatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs, ok := s.sessions[userID]
	if !ok || !cs.lastActive.Before(s.now().Add(-maxIdle)) {
		return nil
	}
	delete(s.sessions, userID)
	return cs
}

func (s *sessionStore) ids() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// closeSession ends the drill of userID and writes its pending counters
func (h *Handler) closeSession(userID int64) {
	if cs := h.sessions.remove(userID); cs != nil {
		cs.reporter.Close()
	}
}

// ReapIdle ends drills idle for longer than maxIdle and returns how many
// were ended.
func (h *Handler) ReapIdle(maxIdle time.Duration) int {
	reaped := 0
	for _, userID := range h.sessions.idle(maxIdle) {
		unlock := h.lockUser(userID)
		cs := h.sessions.removeIfIdle(userID, maxIdle)
		unlock()
		if cs == nil {
			continue
		}

		cs.reporter.Close()
		reaped++
		h.logger.Info("Idle drill session closed",
			zap.Int64("user_id", userID),
			zap.String("module_id", cs.moduleID),
		)
	}
	return reaped
}

// CloseAll ends every drill, writing pending counters
func (h *Handler) CloseAll() {
	for _, userID := range h.sessions.ids() {
		h.closeSession(userID)
	}
}
