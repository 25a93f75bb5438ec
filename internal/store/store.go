package store

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"tasklist/internal/model"
)

// DefaultMaxTitleLen is the title length cap in Unicode code points,
// counted after trimming.
const DefaultMaxTitleLen = 200

// Filter selects which items List-style reads return.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a user-supplied value to a Filter. Unknown values mean
// FilterAll; filtering is a view concern and has no failure mode.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterActive:
		return FilterActive
	case FilterCompleted:
		return FilterCompleted
	default:
		return FilterAll
	}
}

type Options struct {
	// MaxTitleLen bounds titles in Unicode code points. Zero means DefaultMaxTitleLen.
	MaxTitleLen int
}

// Store holds all items in memory and is the single owner of their state.
// Every method is safe for concurrent use; mutations serialize against all
// other operations, and reads return copies so callers never alias the
// backing slice.
type Store struct {
	mu     sync.RWMutex
	items  []model.Item
	nextID int64

	maxTitleLen int
}

func New(opts Options) *Store {
	maxLen := opts.MaxTitleLen
	if maxLen <= 0 {
		maxLen = DefaultMaxTitleLen
	}
	return &Store{nextID: 1, maxTitleLen: maxLen}
}

// Create validates and trims title, assigns the next id, and appends the item
// at the end of the list. IDs are strictly increasing for the process
// lifetime; an id freed by Delete is never handed out again.
func (s *Store) Create(title string) (model.Item, error) {
	t, err := s.cleanTitle(title)
	if err != nil {
		return model.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	it := model.Item{
		ID:        s.nextID,
		Title:     t,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.items = append(s.items, it)
	return it, nil
}

// List returns a snapshot of all items in insertion order.
func (s *Store) List() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// ListFiltered returns a snapshot of the items matching f, in insertion order.
func (s *Store) ListFiltered(f Filter) []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		switch f {
		case FilterActive:
			if it.Completed {
				continue
			}
		case FilterCompleted:
			if !it.Completed {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

func (s *Store) Get(id int64) (model.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.Item{}, NotFoundError{ID: id}
}

// Toggle flips the completion state of one item. Title and list position are
// untouched.
func (s *Store) Toggle(id int64) (model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Completed = !s.items[i].Completed
			s.items[i].UpdatedAt = time.Now().UTC()
			return s.items[i], nil
		}
	}
	return model.Item{}, NotFoundError{ID: id}
}

// UpdateTitle replaces an item's title in place, with the same validation as
// Create. Completion state and list position are untouched.
func (s *Store) UpdateTitle(id int64, title string) (model.Item, error) {
	t, err := s.cleanTitle(title)
	if err != nil {
		return model.Item{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Title = t
			s.items[i].UpdatedAt = time.Now().UTC()
			return s.items[i], nil
		}
	}
	return model.Item{}, NotFoundError{ID: id}
}

// Delete removes the item. Its id is retired permanently.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return NotFoundError{ID: id}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) cleanTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(t) > s.maxTitleLen {
		return "", ValidationError{Field: "title", Reason: fmt.Sprintf("longer than %d characters", s.maxTitleLen)}
	}
	return t, nil
}
