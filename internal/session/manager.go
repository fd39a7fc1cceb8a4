package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TheJegede/Negotiator/internal/deal"
	"github.com/TheJegede/Negotiator/internal/models"
)

var ErrNotFound = errors.New("session not found")

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	gen      *deal.Generator
}

func NewManager(gen *deal.Generator) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		gen:      gen,
	}
}

// Create opens a fresh negotiation. A non-empty studentID pins the deal
// parameters to that student, so retaking the exercise replays the same
// scenario; otherwise the parameters are drawn at random.
func (m *Manager) Create(studentID, greeting string) *Session {
	var params models.DealParameters
	if studentID != "" {
		params = m.gen.Generate(deal.SeedFromStudentID(studentID))
	} else {
		params = m.gen.GenerateRandom()
	}

	now := time.Now().UTC()
	s := &Session{
		ID:          uuid.NewString(),
		CreatedAt:   now,
		Params:      params,
		ParamsBrief: deal.FormatParameters(params),
		History: []models.Message{
			{Role: models.RoleSeller, Content: greeting, Timestamp: now},
		},
	}
	s.SetState(StateNegotiating)
	s.Touch(now)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// List returns the active session IDs in stable order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Closed returns the IDs of sessions that reached the closing state.
func (m *Manager) Closed() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ids []string
	for id, s := range m.sessions {
		if s.State() == StateClosing {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and reports how many
// were removed. It runs from a cron job, not from the request path.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
