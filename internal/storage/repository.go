package storage

import (
	"encoding/json"
	"fmt"

	"github.com/daybook-app/daybook/internal/domain"
)

var _ domain.Repository[domain.UserSettings] = (*Repository[domain.UserSettings])(nil)

// Repository is a typed JSON view over a single key.
type Repository[T any] struct {
	kv  KV
	key string
}

// NewRepository binds a repository to key on kv.
func NewRepository[T any](kv KV, key string) *Repository[T] {
	if kv == nil {
		panic("NewRepository: kv cannot be nil")
	}
	return &Repository[T]{kv: kv, key: key}
}

// Key returns the storage key.
func (r *Repository[T]) Key() string {
	return r.key
}

// Load decodes the stored value. A value that fails to decode is reported
// with found=true and an error wrapping ErrCorrupt.
func (r *Repository[T]) Load() (T, bool, error) {
	var value T
	data, found, err := r.kv.Get(r.key)
	if err != nil || !found {
		return value, false, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		var zero T
		return zero, true, fmt.Errorf("%w: %s: %v", ErrCorrupt, r.key, err)
	}
	return value, true, nil
}

// Save encodes value and writes it under the key.
func (r *Repository[T]) Save(value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	return r.kv.Set(r.key, data)
}

// Clear removes the key.
func (r *Repository[T]) Clear() error {
	return r.kv.Delete(r.key)
}
