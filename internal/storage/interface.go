// Package storage provides key-value persistence for daybook's stores.
// Each key holds one JSON document; backends are JSON files, SQLite or memory.
package storage

import (
	"context"
	"errors"
	"regexp"
)

// Storage keys owned by the stores.
const (
	KeyUserSettings    = "userSettings"
	KeyTodoList        = "todoList"
	KeyWeatherCity     = "weather_store_city"
	KeyViewPreferences = "uiPreferences"
)

var (
	// ErrCorrupt indicates a stored value that cannot be decoded.
	ErrCorrupt = errors.New("corrupt stored value")
	// ErrInvalidKey indicates a key that is empty or contains unsupported characters.
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrWatchUnsupported is returned by Watch for backends without change notification.
	ErrWatchUnsupported = errors.New("backend does not support watching")
	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("storage closed")
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]*$`)

// ValidateKey returns ErrInvalidKey unless key is usable by every backend.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}

// KV is a string-keyed store of raw JSON documents.
// Get reports found=false for a missing key. Delete of a missing key is not an error.
type KV interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

// Watcher is implemented by backends that can report writes made by other processes.
// fn receives the changed key; it runs on the watcher goroutine.
type Watcher interface {
	Watch(ctx context.Context, fn func(key string)) error
}

// Watch blocks until ctx is done, calling fn for every externally changed key.
func Watch(ctx context.Context, kv KV, fn func(key string)) error {
	w, ok := kv.(Watcher)
	if !ok {
		return ErrWatchUnsupported
	}
	return w.Watch(ctx, fn)
}

// Copy writes every key of src into dst and returns how many were copied.
func Copy(dst, src KV) (int, error) {
	keys, err := src.Keys()
	if err != nil {
		return 0, err
	}
	copied := 0
	for _, key := range keys {
		value, found, err := src.Get(key)
		if err != nil {
			return copied, err
		}
		if !found {
			continue
		}
		if err := dst.Set(key, value); err != nil {
			return copied, err
		}
		copied++
	}
	return copied, nil
}
