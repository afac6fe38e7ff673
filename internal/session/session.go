// Package session keeps per test-taker state. Each session owns its active
// exam, so one upload or library load never changes what another caller sees.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/docexam/internal/exam"
)

type Session struct {
	ID          string
	Subject     string
	Role        string
	StudentName string
	CreatedAt   time.Time

	mu        sync.RWMutex
	questions []exam.Question
}

// SetExam replaces the active exam. The slice is copied.
func (s *Session) SetExam(qs []exam.Question) {
	cp := make([]exam.Question, len(qs))
	copy(cp, qs)
	s.mu.Lock()
	s.questions = cp
	s.mu.Unlock()
}

// Exam returns the active exam or exam.ErrNoExam when none is loaded.
func (s *Session) Exam() ([]exam.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.questions == nil {
		return nil, exam.ErrNoExam
	}
	cp := make([]exam.Question, len(s.questions))
	copy(cp, s.questions)
	return cp, nil
}

// pruneEvery bounds how often Create and Ensure sweep expired sessions.
const pruneEvery = time.Minute

// Manager holds live sessions. A session lives for ttl after it is created,
// which matches the lifetime of the token that names it.
type Manager struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	ttl       time.Duration
	now       func() time.Time
	lastPrune time.Time
}

// NewManager returns a Manager whose sessions expire after ttl. A ttl of
// zero or less keeps sessions until they are dropped.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{sessions: map[string]*Session{}, ttl: ttl, now: time.Now}
}

func (m *Manager) expired(s *Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.CreatedAt) >= m.ttl
}

// pruneLocked removes expired sessions. Callers hold m.mu for writing.
func (m *Manager) pruneLocked(now time.Time) {
	if m.ttl <= 0 || now.Sub(m.lastPrune) < pruneEvery {
		return
	}
	m.lastPrune = now
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
		}
	}
}

// Create registers a fresh session with a random id.
func (m *Manager) Create(subject, role, studentName string) *Session {
	now := m.now()
	s := &Session{
		ID:          uuid.NewString(),
		Subject:     subject,
		Role:        role,
		StudentName: studentName,
		CreatedAt:   now,
	}
	m.mu.Lock()
	m.pruneLocked(now)
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok || m.expired(s, m.now()) {
		return nil, false
	}
	return s, true
}

// Ensure returns the session for id, recreating an empty one when the
// process no longer knows it (for example after a restart, while the
// caller's token is still valid) or when it has expired.
func (m *Manager) Ensure(id, subject, role string) *Session {
	if s, ok := m.Get(id); ok {
		return s
	}
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pruneLocked(now)
	if s, ok := m.sessions[id]; ok && !m.expired(s, now) {
		return s
	}
	s := &Session{ID: id, Subject: subject, Role: role, CreatedAt: now}
	m.sessions[id] = s
	return s
}

func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
