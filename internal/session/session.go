// Package session keeps live negotiations in memory. Each session owns its
// transcript and the hidden deal parameters; a manager indexes them by ID
// and sweeps out the ones nobody is talking to anymore.
package session

import (
	"sync"
	"time"

	"github.com/TheJegede/Negotiator/internal/models"
)

type State string

const (
	StateNegotiating State = "NEGOTIATING"
	StateClosing     State = "CLOSING"
)

// Session is a single live negotiation. Callers mutate History and Agreed
// only while holding the session lock; the per-session lock keeps a chat
// turn atomic without serializing unrelated sessions.
//
// State and the activity timestamp live behind their own mutex: a chat turn
// holds the session lock across the provider call, which can take seconds,
// and the manager's sweep must be able to read session metadata without
// waiting that out. metaMu is only ever held for a field read or write.
type Session struct {
	ID          string
	CreatedAt   time.Time
	Params      models.DealParameters
	ParamsBrief string
	History     []models.Message
	Agreed      *models.Terms

	mu sync.Mutex

	metaMu     sync.Mutex
	state      State
	lastActive time.Time
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

func (s *Session) State() State {
	s.metaMu.Lock()
	defer s.metaMu.Unlock()
	return s.state
}

func (s *Session) SetState(st State) {
	s.metaMu.Lock()
	s.state = st
	s.metaMu.Unlock()
}

func (s *Session) LastActive() time.Time {
	s.metaMu.Lock()
	defer s.metaMu.Unlock()
	return s.lastActive
}

// Touch refreshes the activity timestamp.
func (s *Session) Touch(t time.Time) {
	s.metaMu.Lock()
	s.lastActive = t
	s.metaMu.Unlock()
}

// Append adds a message and refreshes the activity timestamp. The caller
// holds the session lock.
func (s *Session) Append(role models.Role, content string) {
	now := time.Now().UTC()
	s.History = append(s.History, models.Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	s.Touch(now)
}

// Snapshot returns a consistent copy for read-only use outside the lock.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	State     State
	Params    models.DealParameters
	History   []models.Message
	Agreed    *models.Terms
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]models.Message, len(s.History))
	copy(history, s.History)

	var agreed *models.Terms
	if s.Agreed != nil {
		t := *s.Agreed
		agreed = &t
	}

	return Snapshot{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		State:     s.State(),
		Params:    s.Params,
		History:   history,
		Agreed:    agreed,
	}
}
