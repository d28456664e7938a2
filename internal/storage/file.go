package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/fsnotify/fsnotify"
)

const (
	fileExtJSON = ".json"
	lockDirName = ".lock"
)

// FileKV stores each key as <key>.json inside a directory.
// Writes go through a temporary file and a rename so readers never see partial data.
type FileKV struct {
	dir string

	mu     sync.Mutex
	closed bool
}

// NewFileKV creates a file backend rooted at dir, creating it if needed.
func NewFileKV(dir string) (*FileKV, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("file storage: directory cannot be empty")
	}
	if err := os.MkdirAll(dir, FileModeDir); err != nil {
		return nil, fmt.Errorf("file storage: create directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Dir returns the backing directory.
func (f *FileKV) Dir() string {
	return f.dir
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+fileExtJSON)
}

func (f *FileKV) check(key string) error {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return ErrClosed
	}
	return ValidateKey(key)
}

// Get reads the value stored under key.
func (f *FileKV) Get(key string) ([]byte, bool, error) {
	if err := f.check(key); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("file storage: read %s: %w", key, err)
	}
	return data, true, nil
}

// Set atomically replaces the value stored under key.
func (f *FileKV) Set(key string, value []byte) error {
	if err := f.check(key); err != nil {
		return err
	}
	return WithLock(filepath.Join(f.dir, lockDirName), func() error {
		tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
		if err != nil {
			return fmt.Errorf("file storage: create temp file: %w", err)
		}
		tmpName := tmp.Name()
		if _, err := tmp.Write(value); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("file storage: write %s: %w", key, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("file storage: close %s: %w", key, err)
		}
		if err := os.Chmod(tmpName, FileModeFile); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("file storage: chmod %s: %w", key, err)
		}
		if err := os.Rename(tmpName, f.path(key)); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("file storage: rename %s: %w", key, err)
		}
		colors.StructuredDebug("storage", "set", "completed", nil, key, map[string]interface{}{"bytes": len(value)})
		return nil
	})
}

// Delete removes key. Missing keys are ignored.
func (f *FileKV) Delete(key string) error {
	if err := f.check(key); err != nil {
		return err
	}
	return WithLock(filepath.Join(f.dir, lockDirName), func() error {
		if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("file storage: delete %s: %w", key, err)
		}
		return nil
	})
}

// Keys lists stored keys in lexical order.
func (f *FileKV) Keys() ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("file storage: list: %w", err)
	}
	var keys []string
	for _, entry := range entries {
		if key, ok := keyFromFileName(entry.Name()); ok && !entry.IsDir() {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close marks the backend closed. Files stay on disk.
func (f *FileKV) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func keyFromFileName(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, fileExtJSON) {
		return "", false
	}
	key := strings.TrimSuffix(name, fileExtJSON)
	if ValidateKey(key) != nil {
		return "", false
	}
	return key, true
}

// watchDebounce coalesces the create/write/rename burst of one atomic write.
const watchDebounce = 50 * time.Millisecond

// Watch reports keys whose files are created, replaced or removed.
func (f *FileKV) Watch(ctx context.Context, fn func(key string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("file storage: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(f.dir); err != nil {
		return fmt.Errorf("file storage: watch %s: %w", f.dir, err)
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			key, ok := keyFromFileName(filepath.Base(event.Name))
			if !ok {
				continue
			}
			pending[key] = struct{}{}
			timer.Reset(watchDebounce)
		case <-timer.C:
			keys := make([]string, 0, len(pending))
			for key := range pending {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			clear(pending)
			for _, key := range keys {
				fn(key)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			colors.Warning(fmt.Sprintf("storage watcher error: %v", err))
		}
	}
}
