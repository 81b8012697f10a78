// Package store holds the in-memory recipe collection and the sources it can
// be seeded from.
package store

import (
	"errors"
	"fmt"
	"sync"

	"recipeshare_backend/models"
)

var (
	// ErrDuplicateID is returned when inserting a record whose id is already stored.
	ErrDuplicateID = errors.New("recipe id already exists")
	// ErrMissingID is returned when inserting a record without an id.
	ErrMissingID = errors.New("recipe id is required")
)

// Memory is an ordered, mutex-guarded collection of recipes. The zero value is
// an empty store ready for use.
type Memory struct {
	mu      sync.RWMutex
	recipes []models.Recipe
}

// NewMemory returns a store holding copies of seed in the given order.
func NewMemory(seed []models.Recipe) (*Memory, error) {
	m := &Memory{}
	for _, r := range seed {
		if err := m.Insert(r); err != nil {
			return nil, fmt.Errorf("failed to seed recipe %q: %w", r.ID, err)
		}
	}
	return m, nil
}

// List returns every recipe in insertion order.
func (m *Memory) List() []models.Recipe {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		out = append(out, r.Clone())
	}
	return out
}

// Len returns the number of stored recipes.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recipes)
}

func (m *Memory) FindByID(id string) (models.Recipe, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		return m.recipes[i].Clone(), true
	}
	return models.Recipe{}, false
}

// Insert appends r. The id must already be assigned and unused.
func (m *Memory) Insert(r models.Recipe) error {
	if r.ID == "" {
		return ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.indexOf(r.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
	}
	m.recipes = append(m.recipes, r.Clone())
	return nil
}

// Replace overwrites the record stored under id, keeping its position and id.
// It reports false when no such record exists. Replace swaps in a whole
// record; the service merges partial changes through Update instead.
func (m *Memory) Replace(id string, r models.Recipe) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	r = r.Clone()
	r.ID = id
	m.recipes[i] = r
	return true
}

// Update applies fn to the record stored under id while holding the write
// lock, so read-modify-write sequences cannot interleave.
func (m *Memory) Update(id string, fn func(*models.Recipe)) (models.Recipe, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return models.Recipe{}, false
	}
	r := m.recipes[i].Clone()
	fn(&r)
	r.ID = id
	m.recipes[i] = r
	return r.Clone(), true
}

// Remove deletes the record stored under id and returns it.
func (m *Memory) Remove(id string) (models.Recipe, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return models.Recipe{}, false
	}
	removed := m.recipes[i]
	m.recipes = append(m.recipes[:i:i], m.recipes[i+1:]...)
	return removed, true
}

// indexOf must be called with mu held.
func (m *Memory) indexOf(id string) int {
	for i := range m.recipes {
		if m.recipes[i].ID == id {
			return i
		}
	}
	return -1
}
