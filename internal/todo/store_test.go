package todo

import (
	"errors"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items   []domain.TodoItem
	loadErr error
	saveErr error
	saves   int
}

func (r *fakeRepo) Load() ([]domain.TodoItem, bool, error) {
	return r.items, r.items != nil, r.loadErr
}

func (r *fakeRepo) Save(items []domain.TodoItem) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.items = items
	return nil
}

func (r *fakeRepo) Clear() error {
	r.items = nil
	return nil
}

func fixedClock() func() time.Time {
	t := time.UnixMilli(1_700_000_000_000)
	return func() time.Time { return t }
}

func texts(items []domain.TodoItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Text)
	}
	return out
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Buy milk", "Buy milk"},
		{"trimmed", "  Walk dog \n", "Walk dog"},
		{"unicode", "خرید نان", "خرید نان"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			s := New(repo)
			_, _ = s.Add("existing")
			item, ok := s.Add(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.want, item.Text)
			assert.False(t, item.IsDone)
			assert.Equal(t, item, s.Items()[0])
			assert.Equal(t, s.Items(), repo.items)
		})
	}
}

func TestAddRejectsBlankAndDuplicates(t *testing.T) {
	repo := &fakeRepo{}
	s := New(repo)

	_, ok := s.Add("")
	assert.False(t, ok)
	_, ok = s.Add("   ")
	assert.False(t, ok)
	assert.Equal(t, 0, repo.saves)

	_, ok = s.Add("Buy milk")
	require.True(t, ok)
	before := s.Items()

	for _, dup := range []string{"buy milk ", "BUY MILK", "\tBuy milk"} {
		_, ok = s.Add(dup)
		assert.False(t, ok, dup)
	}
	assert.Equal(t, before, s.Items())
	assert.Equal(t, 1, repo.saves)
}

func TestIDsAreUniqueWithFrozenClock(t *testing.T) {
	s := New(&fakeRepo{}, WithNow(fixedClock()))
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")
	assert.Equal(t, int64(1_700_000_000_000), a.ID)
	assert.Equal(t, a.ID+1, b.ID)
	assert.Equal(t, b.ID+1, c.ID)
}

func TestScenarioAddDuplicateClear(t *testing.T) {
	s := New(&fakeRepo{})
	_, ok := s.Add("Buy milk")
	require.True(t, ok)
	_, ok = s.Add("buy milk ")
	require.False(t, ok)
	_, ok = s.Add("Buy eggs")
	require.True(t, ok)

	assert.Equal(t, []string{"Buy eggs", "Buy milk"}, texts(s.Items()))

	assert.Equal(t, 2, s.ClearAll())
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.Count())
}

func TestRemove(t *testing.T) {
	repo := &fakeRepo{}
	s := New(repo)
	a, _ := s.Add("a")
	s.Add("b")

	removed, ok := s.Remove(a.ID)
	require.True(t, ok)
	assert.Equal(t, a, removed)
	assert.Equal(t, []string{"b"}, texts(s.Items()))

	saves := repo.saves
	_, ok = s.Remove(12345)
	assert.False(t, ok)
	assert.Equal(t, saves, repo.saves)
}

func TestToggleTwiceRestores(t *testing.T) {
	s := New(&fakeRepo{})
	item, _ := s.Add("a")

	toggled, ok := s.Toggle(item.ID)
	require.True(t, ok)
	assert.True(t, toggled.IsDone)
	assert.Equal(t, 1, s.CompletedCount())
	assert.Equal(t, 0, s.PendingCount())

	s.Toggle(item.ID)
	got, _ := s.Get(item.ID)
	assert.False(t, got.IsDone)

	_, ok = s.Toggle(999)
	assert.False(t, ok)
}

func TestEdit(t *testing.T) {
	s := New(&fakeRepo{})
	milk, _ := s.Add("Buy milk")
	eggs, _ := s.Add("Buy eggs")

	require.NoError(t, s.Edit(milk.ID, "  Buy oat milk "))
	got, _ := s.Get(milk.ID)
	assert.Equal(t, "Buy oat milk", got.Text)

	require.NoError(t, s.Edit(milk.ID, "BUY OAT MILK"), "case-only change of itself is allowed")
	got, _ = s.Get(milk.ID)
	assert.Equal(t, "BUY OAT MILK", got.Text)

	err := s.Edit(milk.ID, "buy eggs")
	require.ErrorIs(t, err, ErrDuplicate)
	got, _ = s.Get(milk.ID)
	assert.Equal(t, "BUY OAT MILK", got.Text)

	require.NoError(t, s.Edit(eggs.ID, "   "))
	got, _ = s.Get(eggs.ID)
	assert.Equal(t, "Buy eggs", got.Text)

	require.NoError(t, s.Edit(999, "anything"))
}

func TestUpdate(t *testing.T) {
	repo := &fakeRepo{}
	s := New(repo)
	a, _ := s.Add("a")
	s.Add("b")

	assert.True(t, s.Update(a.ID, "a2", true))
	got, _ := s.Get(a.ID)
	assert.Equal(t, domain.TodoItem{ID: a.ID, Text: "a2", IsDone: true}, got)

	assert.False(t, s.Update(a.ID, "B", false))
	got, _ = s.Get(a.ID)
	assert.True(t, got.IsDone, "rejected update must not change completion")

	assert.False(t, s.Update(a.ID, " ", false))
	assert.False(t, s.Update(42, "x", false))

	saves := repo.saves
	assert.True(t, s.Update(a.ID, "a2", true))
	assert.Equal(t, saves, repo.saves, "unchanged update does not persist")
}

func TestRoundTripThroughStorage(t *testing.T) {
	kv := storage.NewMemoryKV()
	repo := storage.NewRepository[[]domain.TodoItem](kv, storage.KeyTodoList)
	s := New(repo)
	s.Add("one")
	two, _ := s.Add("two")
	s.Add("three")
	s.Toggle(two.ID)

	reloaded := New(repo)
	assert.Equal(t, s.Items(), reloaded.Items())

	s.ClearAll()
	raw, _, err := kv.Get(storage.KeyTodoList)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestLoadCorruptStartsEmpty(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(storage.KeyTodoList, []byte(`{oops`)))
	s := New(storage.NewRepository[[]domain.TodoItem](kv, storage.KeyTodoList))
	assert.Empty(t, s.Items())

	_, ok := s.Add("fresh")
	assert.True(t, ok)
}

func TestLoadDropsInvalidEntries(t *testing.T) {
	repo := &fakeRepo{items: []domain.TodoItem{
		{ID: 3, Text: "keep"},
		{ID: 3, Text: "same id"},
		{ID: 2, Text: " KEEP "},
		{ID: 1, Text: "  "},
		{ID: 0, Text: "other"},
	}}
	s := New(repo)
	assert.Equal(t, []string{"keep", "other"}, texts(s.Items()))
}

func TestSaveFailureIsReported(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	s := New(repo)
	_, ok := s.Add("x")
	assert.True(t, ok)
	require.Error(t, s.LastSaveError())
	assert.Equal(t, 1, s.Count())

	repo.saveErr = nil
	s.Add("y")
	assert.NoError(t, s.LastSaveError())
}

func TestViewDoesNotMutate(t *testing.T) {
	s := New(&fakeRepo{}, WithNow(fixedClock()))
	s.Add("b")
	c, _ := s.Add("c")
	s.Add("a")
	s.Toggle(c.ID)
	before := s.Items()

	assert.Equal(t, []string{"a", "b"}, texts(s.View(domain.FilterPending, domain.SortAlphabetical)))
	assert.Equal(t, []string{"c"}, texts(s.View(domain.FilterCompleted, domain.SortNewest)))
	assert.Equal(t, []string{"b", "c", "a"}, texts(s.View(domain.FilterAll, domain.SortOldest)))
	assert.Equal(t, before, s.Items())
}
