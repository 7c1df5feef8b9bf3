package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/pzgaai/easel/internal/engine/element"
)

// Errors returned by store operations.
var (
	// ErrElementNotFound indicates no element with the given ID exists.
	ErrElementNotFound = errors.New("element not found")

	// ErrDuplicateID indicates an element with the given ID already exists.
	ErrDuplicateID = errors.New("duplicate element id")
)

// Store holds the live element collection for an editing session.
// All operations are thread-safe.
type Store struct {
	mu       sync.RWMutex
	elements element.Collection
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Add inserts an element. An empty ID is replaced with a fresh UUID.
// Elements without a zIndex land on top of the stack. Color attributes are
// normalized to canonical form. Returns the element as stored.
func (s *Store) Add(e element.Element) (element.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := e.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if s.elements.Contains(stored.ID) {
		return element.Element{}, ErrDuplicateID
	}
	if _, ok := stored.Attrs[element.AttrZIndex]; !ok {
		stored.Attrs[element.AttrZIndex] = s.elements.MaxZIndex() + 1
	}
	if err := element.NormalizeColorAttrs(stored.Attrs); err != nil {
		return element.Element{}, err
	}

	s.elements = s.elements.InsertOrdered(stored)
	return stored.Clone(), nil
}

// Update patches the element's attributes: a nil value deletes the
// attribute, anything else replaces it. Returns the updated element.
func (s *Store) Update(id string, attrs map[string]any) (element.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.elements.IndexOf(id)
	if idx < 0 {
		return element.Element{}, ErrElementNotFound
	}

	patched := s.elements[idx].Clone()
	zChanged := false
	for key, val := range attrs {
		if val == nil {
			delete(patched.Attrs, key)
			continue
		}
		patched.Attrs[key] = val
		if key == element.AttrZIndex {
			zChanged = true
		}
	}
	if err := element.NormalizeColorAttrs(patched.Attrs); err != nil {
		return element.Element{}, err
	}

	s.elements[idx] = patched
	if zChanged {
		s.elements.SortByZIndex()
	}
	return patched.Clone(), nil
}

// Remove deletes the element with the given ID.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.elements.Contains(id) {
		return ErrElementNotFound
	}
	s.elements = s.elements.Remove(id)
	return nil
}

// Get returns a copy of the element with the given ID.
func (s *Store) Get(id string) (element.Element, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.elements.Get(id)
	if !ok {
		return element.Element{}, false
	}
	return e.Clone(), true
}

// List returns a copy of all elements in display order.
func (s *Store) List() element.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elements.Clone()
}

// Len returns the number of elements.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.elements)
}

// Snapshot returns a deep copy of the current collection, suitable for
// pushing into the history log.
func (s *Store) Snapshot() element.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.elements.Clone()
}

// Restore replaces the store's state with the given collection,
// typically one materialized by the history log after undo or redo.
func (s *Store) Restore(c element.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = c.Clone()
}

// Clear removes all elements.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = nil
}

// BringForward swaps the element's zIndex with the next element above it.
// Already on top is a no-op.
func (s *Store) BringForward(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swapZ(id, +1)
}

// SendBackward swaps the element's zIndex with the next element below it.
// Already at the bottom is a no-op.
func (s *Store) SendBackward(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swapZ(id, -1)
}

// swapZ exchanges zIndex values with an adjacent neighbor (must hold lock).
func (s *Store) swapZ(id string, dir int) error {
	idx := s.elements.IndexOf(id)
	if idx < 0 {
		return ErrElementNotFound
	}
	other := idx + dir
	if other < 0 || other >= len(s.elements) {
		return nil
	}

	a := s.elements[idx].Clone()
	b := s.elements[other].Clone()
	a.Attrs[element.AttrZIndex], b.Attrs[element.AttrZIndex] = b.ZIndex(), a.ZIndex()

	s.elements[idx] = a
	s.elements[other] = b
	s.elements.SortByZIndex()
	return nil
}
