package store

import (
	"fmt"
	"sort"
	"sync"

	"pufsim/internal/domain"
)

// MemoryStore is the in-memory session store. Sessions are never
// evicted; they live until explicit deletion.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// entry pairs a session with its own lock so phase operations against
// one id serialize without blocking other sessions.
type entry struct {
	mu sync.Mutex
	s  *domain.Session
}

// NewMemoryStore returns an empty session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*entry)}
}

// Create registers a new session. The id must be unique process-wide.
func (m *MemoryStore) Create(s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[s.ID]; exists {
		return fmt.Errorf("session id %q already exists", s.ID)
	}
	clone := s.Clone()
	m.sessions[s.ID] = &entry{s: &clone}
	return nil
}

// Snapshot returns a deep copy of the session, never a live alias.
func (m *MemoryStore) Snapshot(id string) (domain.Session, error) {
	e, err := m.lookup(id)
	if err != nil {
		return domain.Session{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.s.Clone(), nil
}

// Update runs fn against the live session under its lock. fn is the
// unit of work for one phase: it sees consistent state and its
// mutations are visible atomically to the next operation.
func (m *MemoryStore) Update(id string, fn func(*domain.Session) error) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

// Delete removes the session. Deleting an unknown id fails NotFound.
func (m *MemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

// List returns summaries of all sessions, oldest first.
func (m *MemoryStore) List() []domain.Summary {
	m.mu.RLock()
	entries := make([]*entry, 0, len(m.sessions))
	for _, e := range m.sessions {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	out := make([]domain.Summary, 0, len(entries))
	type keyed struct {
		sum domain.Summary
		at  int64
		id  string
	}
	keys := make([]keyed, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		keys = append(keys, keyed{sum: e.s.Summarize(), at: e.s.CreatedAt.UnixNano(), id: e.s.ID})
		e.mu.Unlock()
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].at != keys[j].at {
			return keys[i].at < keys[j].at
		}
		return keys[i].id < keys[j].id
	})
	for _, k := range keys {
		out = append(out, k.sum)
	}
	return out
}

func (m *MemoryStore) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, exists := m.sessions[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return e, nil
}

// Compile-time assertion that MemoryStore implements domain.SessionStore.
var _ domain.SessionStore = (*MemoryStore)(nil)
