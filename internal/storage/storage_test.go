package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/domain"
	"github.com/daybook-app/daybook/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	file, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return map[string]KV{
		"memory": NewMemoryKV(),
		"file":   file,
		"sqlite": db,
	}
}

func TestKVContract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := kv.Get(KeyTodoList)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, kv.Set(KeyTodoList, []byte(`[1]`)))
			require.NoError(t, kv.Set(KeyUserSettings, []byte(`{}`)))
			require.NoError(t, kv.Set(KeyTodoList, []byte(`[2]`)))

			value, found, err := kv.Get(KeyTodoList)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, `[2]`, string(value))

			keys, err := kv.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{KeyTodoList, KeyUserSettings}, keys)

			require.NoError(t, kv.Delete(KeyTodoList))
			require.NoError(t, kv.Delete(KeyWeatherCity))
			_, found, err = kv.Get(KeyTodoList)
			require.NoError(t, err)
			assert.False(t, found)

			require.Error(t, kv.Set("", []byte(`1`)))
		})
	}
}

func TestValidateKey(t *testing.T) {
	for _, key := range []string{KeyUserSettings, KeyTodoList, KeyWeatherCity, "a.b-c"} {
		assert.NoError(t, ValidateKey(key), key)
	}
	for _, key := range []string{"", ".hidden", "../escape", "a/b", "a b"} {
		assert.ErrorIs(t, ValidateKey(key), ErrInvalidKey, key)
	}
}

func TestFileKVLayout(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set(KeyWeatherCity, []byte(`{"city":"Tehran"}`)))
	data, err := os.ReadFile(filepath.Join(dir, "weather_store_city.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"city":"Tehran"}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files and lock must be cleaned up")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{KeyWeatherCity}, keys)

	require.ErrorIs(t, kv.Set("../evil", nil), ErrInvalidKey)

	require.NoError(t, kv.Close())
	_, _, err = kv.Get(KeyWeatherCity)
	require.ErrorIs(t, err, ErrClosed)
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	value := []byte(`"a"`)
	require.NoError(t, kv.Set("k", value))
	value[1] = 'b'

	got, _, err := kv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(got))
}

func TestLockExcludes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".lock")
	first := NewLock(dir)
	require.NoError(t, first.Acquire())

	acquired := make(chan struct{})
	go func() {
		_ = WithLock(dir, func() error {
			close(acquired)
			return nil
		})
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired lock while first held it")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, first.Release())
	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("lock not acquired after release")
	}
}

func TestLockBreaksStaleDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".lock")
	require.NoError(t, os.Mkdir(dir, 0o755))
	old := time.Now().Add(-2 * lockStale)
	require.NoError(t, os.Chtimes(dir, old, old))

	require.NoError(t, WithLock(dir, func() error { return nil }))
}

func TestRepository(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewRepository[domain.UserSettings](kv, KeyUserSettings)

	_, found, err := repo.Load()
	require.NoError(t, err)
	assert.False(t, found)

	want := domain.UserSettings{Name: "Kasra", Theme: domain.ThemeDark, Locale: domain.LocaleFarsi}
	require.NoError(t, repo.Save(want))

	raw, _, err := kv.Get(KeyUserSettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Kasra","theme":"dark","locale":"fa","memberSince":""}`, string(raw))

	got, found, err := repo.Load()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, repo.Clear())
	_, found, err = repo.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRepositoryCorrupt(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(KeyTodoList, []byte(`{not json`)))
	repo := NewRepository[[]domain.TodoItem](kv, KeyTodoList)

	items, found, err := repo.Load()
	require.ErrorIs(t, err, ErrCorrupt)
	assert.True(t, found)
	assert.Nil(t, items)
}

func TestTodoListRoundTripPreservesOrder(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			repo := NewRepository[[]domain.TodoItem](kv, KeyTodoList)
			items := []domain.TodoItem{
				{ID: 30, Text: "Buy eggs"},
				{ID: 20, Text: "Buy milk", IsDone: true},
				{ID: 10, Text: "Call mom"},
			}
			require.NoError(t, repo.Save(items))
			got, found, err := repo.Load()
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, items, got)
		})
	}
}

func TestCopy(t *testing.T) {
	src := NewMemoryKV()
	require.NoError(t, src.Set("a", []byte(`1`)))
	require.NoError(t, src.Set("b", []byte(`2`)))
	dst := NewMemoryKV()

	n, err := Copy(dst, src)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	keys, _ := dst.Keys()
	assert.Equal(t, []string{"a", "b"}, keys)
}

func TestNewForBackend(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("DAYBOOK_STATE_DIR", stateDir)
	t.Setenv("DAYBOOK_CONFIG_PATH", filepath.Join(t.TempDir(), "none.toml"))
	config.Load()

	kv, err := NewForBackend("bogus")
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	kv, err = NewForBackend("memory")
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	files, err := NewFileKV(stateDir)
	require.NoError(t, err)
	require.NoError(t, files.Set(KeyTodoList, []byte(`[{"id":1,"text":"x","isDone":false}]`)))

	kv, err = NewForBackend("sqlite")
	require.NoError(t, err)
	defer kv.Close()
	assert.IsType(t, &sqlite.Store{}, kv)

	value, found, err := kv.Get(KeyTodoList)
	require.NoError(t, err)
	require.True(t, found, "file backend values are imported into a new database")
	assert.Contains(t, string(value), `"text":"x"`)
}

func TestNewFromConfigUsesBackendSetting(t *testing.T) {
	t.Setenv("DAYBOOK_STATE_DIR", t.TempDir())
	t.Setenv("DAYBOOK_CONFIG_PATH", filepath.Join(t.TempDir(), "none.toml"))
	t.Setenv("DAYBOOK_STORAGE_BACKEND", "sqlite")

	kv, err := NewFromConfig()
	require.NoError(t, err)
	defer kv.Close()
	assert.IsType(t, &sqlite.Store{}, kv)
}

func TestWatchUnsupported(t *testing.T) {
	err := Watch(context.Background(), NewMemoryKV(), func(string) {})
	require.ErrorIs(t, err, ErrWatchUnsupported)
}

func TestFileWatchReportsExternalWrites(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	writer, err := NewFileKV(dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []string
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, kv, func(key string) {
			mu.Lock()
			seen = append(seen, key)
			mu.Unlock()
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, writer.Set(KeyUserSettings, []byte(`{}`)))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[0] == KeyUserSettings
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
