// Package tracking keeps live location sessions for assignments on the road.
package tracking

import (
	"sync"
	"time"

	"daycare-dispatch/internal/domain"
)

const maxPath = 50

// Session is the live view of one assignment in transit.
type Session struct {
	AssignmentID string               `json:"assignment_id"`
	AgentID      string               `json:"agent_id"`
	Location     *domain.Coordinates  `json:"location,omitempty"`
	Path         []domain.Coordinates `json:"path"`
	StartedAt    time.Time            `json:"started_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	ExpiresAt    time.Time            `json:"expires_at"`
}

func (s *Session) copy() Session {
	c := *s
	c.Path = append([]domain.Coordinates(nil), s.Path...)
	if s.Location != nil {
		l := *s.Location
		c.Location = &l
	}
	return c
}

// Store is a TTL keyed session store. Every write extends the session.
type Store struct {
	ttl         time.Duration
	now         func() time.Time
	mu          sync.Mutex
	sessions    map[string]*Session
	lastCleanup time.Time
}

// NewStore creates a Store. A non-positive ttl defaults to two hours.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Start opens (or restarts) the session of an assignment.
func (s *Store) Start(assignmentID, agentID string) Session {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maybeCleanup(now)

	sess := &Session{
		AssignmentID: assignmentID,
		AgentID:      agentID,
		Path:         []domain.Coordinates{},
		StartedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    now.Add(s.ttl),
	}
	s.sessions[assignmentID] = sess
	return sess.copy()
}

// Update records a position. A missing or expired session is started on the fly.
func (s *Store) Update(assignmentID, agentID string, c domain.Coordinates) Session {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maybeCleanup(now)

	sess, ok := s.sessions[assignmentID]
	if !ok || now.After(sess.ExpiresAt) {
		sess = &Session{AssignmentID: assignmentID, AgentID: agentID, StartedAt: now}
		s.sessions[assignmentID] = sess
	}
	sess.Location = &c
	sess.Path = append(sess.Path, c)
	if len(sess.Path) > maxPath {
		sess.Path = sess.Path[len(sess.Path)-maxPath:]
	}
	sess.UpdatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)
	return sess.copy()
}

// Get returns a live session.
func (s *Store) Get(assignmentID string) (Session, bool) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[assignmentID]
	if !ok {
		return Session{}, false
	}
	if now.After(sess.ExpiresAt) {
		delete(s.sessions, assignmentID)
		return Session{}, false
	}
	return sess.copy(), true
}

// Stop ends a session.
func (s *Store) Stop(assignmentID string) {
	s.mu.Lock()
	delete(s.sessions, assignmentID)
	s.mu.Unlock()
}

// Len reports the number of stored sessions, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// maybeCleanup drops expired sessions at most once per half TTL (min one minute).
// Caller holds mu.
func (s *Store) maybeCleanup(now time.Time) {
	interval := time.Minute
	if half := s.ttl / 2; half > interval {
		interval = half
	}
	if !s.lastCleanup.IsZero() && now.Sub(s.lastCleanup) < interval {
		return
	}
	s.lastCleanup = now

	for k, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, k)
		}
	}
}
