// Package todo provides the ordered todo list store with duplicate rejection.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/storage"
)

// ErrDuplicate is returned when text collides with another item.
var ErrDuplicate = domain.ErrDuplicateTodo

// Option configures a Store.
type Option func(*Store)

// WithNow overrides the clock used to derive new ids.
func WithNow(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store owns the persisted todo list. Index 0 is the most recently added item.
type Store struct {
	repo domain.Repository[[]domain.TodoItem]
	now  func() time.Time

	mu    sync.Mutex
	items []domain.TodoItem
	// lastErr is the most recent save failure, cleared by the next successful save.
	lastErr error
}

// New loads the stored list. Missing or corrupt data yields an empty list.
func New(repo domain.Repository[[]domain.TodoItem], opts ...Option) *Store {
	if repo == nil {
		panic("todo.New: repository cannot be nil")
	}
	s := &Store{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.items = s.load()
	return s
}

func (s *Store) load() []domain.TodoItem {
	items, _, err := s.repo.Load()
	if err != nil {
		colors.Warning(fmt.Sprintf("failed to load todo list, starting empty: %v", err))
		colors.StructuredWarn("todo", "load", "fallback", err, storage.KeyTodoList, nil)
		return nil
	}
	return dropInvalid(items)
}

// dropInvalid removes entries that break the list invariants: blank text,
// repeated ids or normalized duplicates. The first occurrence wins.
func dropInvalid(items []domain.TodoItem) []domain.TodoItem {
	seenIDs := make(map[int64]bool, len(items))
	seenText := make(map[string]bool, len(items))
	out := make([]domain.TodoItem, 0, len(items))
	for _, item := range items {
		norm := domain.NormalizeText(item.Text)
		if norm == "" || seenIDs[item.ID] || seenText[norm] {
			colors.Warning(fmt.Sprintf("dropping invalid stored todo %d", item.ID))
			continue
		}
		seenIDs[item.ID] = true
		seenText[norm] = true
		item.Text = strings.TrimSpace(item.Text)
		out = append(out, item)
	}
	return out
}

// Reload re-reads the list, picking up writes made by other processes.
func (s *Store) Reload() {
	items := s.load()
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

// LastSaveError returns the most recent persistence failure, or nil.
func (s *Store) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// saveLocked persists the whole list. Caller must hold s.mu.
func (s *Store) saveLocked(action string) {
	snapshot := make([]domain.TodoItem, len(s.items))
	copy(snapshot, s.items)
	if err := s.repo.Save(snapshot); err != nil {
		s.lastErr = err
		colors.Error(fmt.Sprintf("failed to save todo list: %v", err))
		colors.StructuredError("todo", action, "failed", err, storage.KeyTodoList, nil)
		return
	}
	s.lastErr = nil
	colors.StructuredDebug("todo", action, "completed", nil, storage.KeyTodoList, map[string]interface{}{"count": len(s.items)})
}

func (s *Store) indexLocked(id int64) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// duplicateLocked reports whether text matches an item other than exceptID.
func (s *Store) duplicateLocked(text string, exceptID int64, hasExcept bool) bool {
	norm := domain.NormalizeText(text)
	for _, item := range s.items {
		if hasExcept && item.ID == exceptID {
			continue
		}
		if domain.NormalizeText(item.Text) == norm {
			return true
		}
	}
	return false
}

// Add inserts a new pending item at the front. It returns false without
// changing anything when text is blank or a duplicate.
func (s *Store) Add(text string) (domain.TodoItem, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.TodoItem{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.duplicateLocked(text, 0, false) {
		return domain.TodoItem{}, false
	}
	item := domain.TodoItem{
		ID:   domain.NextTodoID(s.items, s.now().UnixMilli()),
		Text: text,
	}
	s.items = append([]domain.TodoItem{item}, s.items...)
	s.saveLocked("add")
	return item, true
}

// Remove deletes the item with id. Unknown ids are ignored.
func (s *Store) Remove(id int64) (domain.TodoItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.TodoItem{}, false
	}
	removed := s.items[idx]
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	s.saveLocked("remove")
	return removed, true
}

// Toggle flips the completion flag of id. Unknown ids are ignored.
func (s *Store) Toggle(id int64) (domain.TodoItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return domain.TodoItem{}, false
	}
	s.items[idx].IsDone = !s.items[idx].IsDone
	s.saveLocked("toggle")
	return s.items[idx], true
}

// Edit replaces the text of id. Unknown ids and blank text are ignored and
// return nil; a collision with another item returns ErrDuplicate.
func (s *Store) Edit(id int64, text string) error {
	_, err := s.update(id, text, nil, "edit")
	if errors.Is(err, domain.ErrTodoNotFound) || errors.Is(err, domain.ErrEmptyText) {
		return nil
	}
	return err
}

// Update sets text and completion together. It reports whether the update was applied.
func (s *Store) Update(id int64, text string, isDone bool) bool {
	applied, _ := s.update(id, text, &isDone, "update")
	return applied
}

func (s *Store) update(id int64, text string, isDone *bool, action string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, domain.ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return false, domain.ErrTodoNotFound
	}
	current := s.items[idx]
	if domain.NormalizeText(current.Text) != domain.NormalizeText(text) && s.duplicateLocked(text, id, true) {
		return false, fmt.Errorf("%w: %s", ErrDuplicate, text)
	}
	current.Text = text
	if isDone != nil {
		current.IsDone = *isDone
	}
	if current == s.items[idx] {
		return true, nil
	}
	s.items[idx] = current
	s.saveLocked(action)
	return true, nil
}

// ClearAll empties the list.
func (s *Store) ClearAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.items)
	s.items = nil
	s.saveLocked("clear")
	return n
}

// Items returns a copy of the list in stored order.
func (s *Store) Items() []domain.TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TodoItem, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the item with id.
func (s *Store) Get(id int64) (domain.TodoItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	return domain.TodoItem{}, false
}

// Count returns the number of items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// CompletedCount returns the number of done items.
func (s *Store) CompletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		if item.IsDone {
			n++
		}
	}
	return n
}

// PendingCount returns the number of items not done.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		if !item.IsDone {
			n++
		}
	}
	return n
}

// View returns the filtered and sorted items without touching the store.
func (s *Store) View(filter domain.TodoFilter, order domain.TodoSort) []domain.TodoItem {
	return domain.SortTodos(domain.FilterTodos(s.Items(), filter), order)
}
