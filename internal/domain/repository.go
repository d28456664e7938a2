package domain

// Repository persists a single value under one storage key.
// Load reports found=false when nothing is stored.
type Repository[T any] interface {
	Load() (value T, found bool, err error)
	Save(value T) error
	Clear() error
}
