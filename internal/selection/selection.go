// Package selection holds the ordered set of ingredients the user has picked.
package selection

import "sync"

// Selection is an ordered set of ingredient names. Uniqueness is exact and
// case-sensitive; insertion order is kept.
type Selection struct {
	mu    sync.RWMutex
	items []string
	index map[string]struct{}
}

// New returns a selection seeded with items, duplicates dropped.
func New(items ...string) *Selection {
	s := &Selection{index: make(map[string]struct{})}
	for _, item := range items {
		s.Add(item)
	}
	return s
}

// Add appends item unless it is already present. It reports whether the set changed.
func (s *Selection) Add(item string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[item]; ok {
		return false
	}
	s.index[item] = struct{}{}
	s.items = append(s.items, item)
	return true
}

// Remove deletes item. Removing an absent item is a no-op.
func (s *Selection) Remove(item string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[item]; !ok {
		return false
	}
	delete(s.index, item)
	for i, v := range s.items {
		if v == item {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

func (s *Selection) Contains(item string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[item]
	return ok
}

// Items returns a copy of the selection in insertion order.
func (s *Selection) Items() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.index = make(map[string]struct{})
}
