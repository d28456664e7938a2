package storage

import (
	"fmt"
	"os"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/config"
)

// File permission constants
const (
	FileModeDir  = config.FileModeDir
	FileModeFile = config.FileModeFile
)

// StateDir returns the configured state directory and makes sure it exists.
func StateDir() (string, error) {
	dir := config.Get("state_dir", "")
	if dir == "" {
		return "", fmt.Errorf("storage initialization failed: %sSTATE_DIR not configured", config.EnvPrefix)
	}
	if err := os.MkdirAll(dir, FileModeDir); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}
	colors.Debug("state_dir: " + dir)
	return dir, nil
}
