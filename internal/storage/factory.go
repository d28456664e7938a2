package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/storage/sqlite"
)

const (
	// BackendFile selects one JSON file per key.
	BackendFile = "file"
	// BackendSQLite selects a SQLite database.
	BackendSQLite = "sqlite"
	// BackendMemory selects a process-local map.
	BackendMemory = "memory"

	dbFileName = "daybook.db"
)

var (
	_ KV      = (*sqlite.Store)(nil)
	_ Watcher = (*sqlite.Store)(nil)
	_ KV      = (*FileKV)(nil)
	_ Watcher = (*FileKV)(nil)
	_ KV      = (*MemoryKV)(nil)
)

// NewFromConfig creates a storage backend based on configuration.
func NewFromConfig() (KV, error) {
	config.Load()
	backend := config.Get("storage_backend", BackendFile)
	return NewForBackend(backend)
}

// NewForBackend creates a storage backend for the provided backend name.
// Unknown names and sqlite failures fall back to the file backend.
func NewForBackend(backend string) (KV, error) {
	if strings.ToLower(strings.TrimSpace(backend)) == BackendMemory {
		return NewMemoryKV(), nil
	}

	stateDir, err := StateDir()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileKV(stateDir)
	case BackendSQLite:
		dbPath := filepath.Join(stateDir, dbFileName)
		store, err := openSQLite(stateDir, dbPath)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to file: %v", err))
			return NewFileKV(stateDir)
		}
		return store, nil
	default:
		colors.Warning(fmt.Sprintf("unknown storage backend '%s', falling back to file", backend))
		return NewFileKV(stateDir)
	}
}

// openSQLite opens the database and, when it is new, imports any JSON
// documents left by the file backend in stateDir.
func openSQLite(stateDir, dbPath string) (*sqlite.Store, error) {
	_, statErr := os.Stat(dbPath)
	fresh := os.IsNotExist(statErr)

	store, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return store, nil
	}

	files, err := NewFileKV(stateDir)
	if err != nil {
		return store, nil
	}
	copied, err := Copy(store, files)
	if err != nil {
		_ = store.Close()
		_ = os.Remove(dbPath)
		return nil, fmt.Errorf("import file storage: %w", err)
	}
	if copied > 0 {
		colors.Success(fmt.Sprintf("Imported %d stored values into sqlite", copied))
	}
	return store, nil
}
