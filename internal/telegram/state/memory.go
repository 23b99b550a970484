package state

import "sync"

type memoryManager struct {
	mu     sync.RWMutex
	states map[int64]State
}

// NewMemoryManager constructs an in-memory Manager implementation.
func NewMemoryManager() Manager {
	return &memoryManager{
		states: make(map[int64]State),
	}
}

// Set arms the pending state for a user. Setting StateIdle is equivalent to Clear.
func (m *memoryManager) Set(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st == StateIdle || st == "" {
		delete(m.states, userID)
		return
	}
	m.states[userID] = st
}

// Get returns the pending state of a user without clearing it, or StateIdle.
func (m *memoryManager) Get(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if st, ok := m.states[userID]; ok {
		return st
	}
	return StateIdle
}

// Consume returns the pending state and clears it in one step.
func (m *memoryManager) Consume(userID int64) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[userID]
	if !ok {
		return StateIdle
	}
	delete(m.states, userID)
	return st
}

// InProgress reports whether the user currently has a pending state.
func (m *memoryManager) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[userID]
	return ok && st != StateIdle
}

// Clear removes the pending state for a user.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, userID)
}
