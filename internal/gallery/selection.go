package gallery

import (
	"sort"
	"sync"

	"photovault/internal/models"
)

// Selection is a set of photo IDs, independent of the filtered view: a
// selected photo that a filter hides stays selected. Safe for concurrent
// use.
type Selection struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

func (s *Selection) Add(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

func (s *Selection) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Toggle flips membership and reports the new state.
func (s *Selection) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Selection) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[string]struct{})
}

// SelectAll adds every photo in the given (typically filtered) view.
func (s *Selection) SelectAll(photos []models.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range photos {
		s.ids[p.ID] = struct{}{}
	}
}

// Prune drops IDs that no longer exist in the authoritative list. Hidden
// photos are kept; only removed ones go.
func (s *Selection) Prune(photos []models.Photo) {
	existing := make(map[string]struct{}, len(photos))
	for _, p := range photos {
		existing[p.ID] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.ids {
		if _, ok := existing[id]; !ok {
			delete(s.ids, id)
		}
	}
}

func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// IDs returns the selection in deterministic order.
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
