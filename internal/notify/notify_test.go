package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

func newTestStore(t *testing.T) (*Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	s := New(WithClock(clock))
	t.Cleanup(s.Close)
	return s, clock
}

func ids(list []domain.Notification) []int {
	out := make([]int, 0, len(list))
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}

func TestEmitAssignsIDsAndDefaults(t *testing.T) {
	s, clock := newTestStore(t)

	a := s.Emit("saved", domain.NotificationSuccess, 0)
	b := s.Error("boom")
	c := s.Emit("custom", domain.NotificationInfo, time.Second)

	assert.Equal(t, []int{1, 2, 3}, ids(s.List()))
	assert.Equal(t, DefaultDuration, a.Duration)
	assert.Equal(t, DefaultErrorDuration, b.Duration)
	assert.Equal(t, time.Second, c.Duration)
	assert.Equal(t, clock.Now(), a.CreatedAt)
	assert.Equal(t, clock.Now().Add(time.Second), c.ExpiresAt())
}

func TestNegativeDurationUsesDefault(t *testing.T) {
	s, _ := newTestStore(t)
	n := s.Emit("x", domain.NotificationAdd, -5*time.Second)
	assert.Equal(t, DefaultDuration, n.Duration)
}

func TestExpiresAfterDuration(t *testing.T) {
	s, clock := newTestStore(t)
	s.Emit("short", domain.NotificationInfo, time.Second)
	s.Emit("long", domain.NotificationInfo, 3*time.Second)

	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, []int{1, 2}, ids(s.List()))

	clock.Advance(time.Millisecond)
	require.Eventually(t, func() bool { return s.Len() == 1 }, waitFor, time.Millisecond)
	assert.Equal(t, "long", s.List()[0].Message)

	clock.Advance(2 * time.Second)
	require.Eventually(t, func() bool { return s.Len() == 0 }, waitFor, time.Millisecond)
}

func TestRemoveIsIdempotentAndStopsTimer(t *testing.T) {
	s, clock := newTestStore(t)
	first := s.Info("one")
	s.Info("two")

	s.Remove(first.ID)
	s.Remove(first.ID)
	s.Remove(999)
	assert.Equal(t, []int{2}, ids(s.List()))

	third := s.Info("three")
	clock.Advance(DefaultDuration)
	require.Eventually(t, func() bool { return s.Len() == 0 }, waitFor, time.Millisecond)

	s.Remove(third.ID)
	assert.Empty(t, s.List())
}

func TestExpiryAfterRemovalIsNoop(t *testing.T) {
	s, clock := newTestStore(t)
	n := s.Info("gone")

	var mu sync.Mutex
	changes := 0
	unsubscribe := s.Subscribe(func([]domain.Notification) {
		mu.Lock()
		changes++
		mu.Unlock()
	})
	defer unsubscribe()

	s.Remove(n.ID)
	clock.Advance(time.Minute)
	s.expire(n.ID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, changes)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s, clock := newTestStore(t)

	var mu sync.Mutex
	var lengths []int
	unsubscribe := s.Subscribe(func(live []domain.Notification) {
		mu.Lock()
		lengths = append(lengths, len(live))
		mu.Unlock()
	})

	s.Success("a")
	s.Success("b")
	clock.Advance(DefaultDuration)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(lengths) == 4
	}, waitFor, time.Millisecond)

	unsubscribe()
	s.Success("c")
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, lengths, 4)
	assert.Equal(t, []int{1, 2}, lengths[:2])
}

func TestConvenienceEmitterTypes(t *testing.T) {
	s, _ := newTestStore(t)
	tests := []struct {
		emit func(string) domain.Notification
		want domain.NotificationType
	}{
		{s.Info, domain.NotificationInfo},
		{s.Success, domain.NotificationSuccess},
		{s.Error, domain.NotificationError},
		{s.AddTodo, domain.NotificationAdd},
		{s.EditTodo, domain.NotificationEdit},
		{s.CompleteTodo, domain.NotificationComplete},
		{s.ReopenTodo, domain.NotificationReopen},
		{s.DeleteTodo, domain.NotificationDelete},
		{s.NameUpdated, domain.NotificationNameUpdate},
		{s.LocaleChanged, domain.NotificationLocaleChange},
		{s.CitySaved, domain.NotificationCitySaved},
		{func(m string) domain.Notification { return s.ThemeChanged(m, true) }, domain.NotificationThemeLight},
		{func(m string) domain.Notification { return s.ThemeChanged(m, false) }, domain.NotificationThemeDark},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.emit("msg").Type)
	}
	assert.Len(t, s.List(), len(tests))
}

func TestWithDurations(t *testing.T) {
	s := New(WithClock(clockwork.NewFakeClock()), WithDurations(time.Second, 0))
	defer s.Close()
	assert.Equal(t, time.Second, s.DefaultFor(domain.NotificationInfo))
	assert.Equal(t, DefaultErrorDuration, s.DefaultFor(domain.NotificationError))
}

func TestCloseStopsTimers(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(WithClock(clock))
	s.Info("a")
	s.Close()
	assert.Empty(t, s.List())

	s.Info("after close")
	assert.Empty(t, s.List())
	clock.Advance(time.Minute)
	assert.Empty(t, s.List())
}

func TestConcurrentEmitAndRemove(t *testing.T) {
	s, clock := newTestStore(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := s.Info("x")
			if n.ID%2 == 0 {
				s.Remove(n.ID)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 25, s.Len())

	seen := map[int]bool{}
	for _, n := range s.List() {
		assert.False(t, seen[n.ID])
		seen[n.ID] = true
	}

	clock.Advance(DefaultDuration)
	require.Eventually(t, func() bool { return s.Len() == 0 }, waitFor, time.Millisecond)
}
