// Package notify holds the transient, self-expiring list of user-facing messages.
package notify

import (
	"sync"
	"time"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/domain"
	"github.com/jonboulle/clockwork"
)

const (
	// DefaultDuration is the lifetime of a notification when none is given.
	DefaultDuration = 3500 * time.Millisecond
	// DefaultErrorDuration is the lifetime of an error notification when none is given.
	DefaultErrorDuration = 5 * time.Second
)

// Listener is called with the live list after every change.
type Listener func(live []domain.Notification)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock that drives expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithDurations overrides the default lifetimes. Non-positive values are ignored.
func WithDurations(normal, errDuration time.Duration) Option {
	return func(s *Store) {
		if normal > 0 {
			s.defaultDuration = normal
		}
		if errDuration > 0 {
			s.errorDuration = errDuration
		}
	}
}

type entry struct {
	notification domain.Notification
	timer        clockwork.Timer
}

// Store is safe for concurrent use. Expiry callbacks run on timer goroutines.
type Store struct {
	clock           clockwork.Clock
	defaultDuration time.Duration
	errorDuration   time.Duration

	mu        sync.Mutex
	nextID    int
	live      []*entry
	listeners map[int]Listener
	nextSub   int
	closed    bool
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		clock:           clockwork.NewRealClock(),
		defaultDuration: DefaultDuration,
		errorDuration:   DefaultErrorDuration,
		listeners:       make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultFor returns the lifetime used for typ when Emit gets a non-positive duration.
func (s *Store) DefaultFor(typ domain.NotificationType) time.Duration {
	if typ == domain.NotificationError {
		return s.errorDuration
	}
	return s.defaultDuration
}

// Emit appends a notification and schedules its removal after duration.
// A non-positive duration uses the default for the type.
func (s *Store) Emit(message string, typ domain.NotificationType, duration time.Duration) domain.Notification {
	if duration <= 0 {
		duration = s.DefaultFor(typ)
	}

	s.mu.Lock()
	s.nextID++
	n := domain.Notification{
		ID:        s.nextID,
		Message:   message,
		Type:      typ,
		Duration:  duration,
		CreatedAt: s.clock.Now(),
	}
	if s.closed {
		s.mu.Unlock()
		return n
	}
	e := &entry{notification: n}
	s.live = append(s.live, e)
	id := n.ID
	e.timer = s.clock.AfterFunc(duration, func() {
		s.expire(id)
	})
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	colors.StructuredDebug("notify", "emit", "completed", nil, "", map[string]interface{}{
		"id":   id,
		"type": string(typ),
	})
	notifyAll(listeners, snapshot)
	return n
}

func (s *Store) expire(id int) {
	if s.removeEntry(id, false) {
		colors.StructuredDebug("notify", "expire", "completed", nil, "", map[string]interface{}{"id": id})
	}
}

// Remove drops the notification with id. Unknown ids are ignored.
func (s *Store) Remove(id int) {
	s.removeEntry(id, true)
}

func (s *Store) removeEntry(id int, stopTimer bool) bool {
	s.mu.Lock()
	idx := -1
	for i, e := range s.live {
		if e.notification.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	e := s.live[idx]
	s.live = append(s.live[:idx], s.live[idx+1:]...)
	if stopTimer && e.timer != nil {
		e.timer.Stop()
	}
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notifyAll(listeners, snapshot)
	return true
}

// List returns the live notifications in creation order.
func (s *Store) List() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, _ := s.snapshotLocked()
	return snapshot
}

// Len returns the number of live notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Subscribe registers fn for change events and returns a function that unregisters it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close stops every pending timer and empties the live list.
// Later emits are returned but never listed.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.live {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	s.live = nil
	s.closed = true
}

func (s *Store) snapshotLocked() ([]domain.Notification, []Listener) {
	snapshot := make([]domain.Notification, len(s.live))
	for i, e := range s.live {
		snapshot[i] = e.notification
	}
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	return snapshot, listeners
}

func notifyAll(listeners []Listener, snapshot []domain.Notification) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}
