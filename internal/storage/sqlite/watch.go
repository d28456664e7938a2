package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 50 * time.Millisecond

// Watch reports keys changed by any connection to the database file.
// File events on the database or its journal trigger a diff of key versions.
func (s *Store) Watch(ctx context.Context, fn func(key string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("sqlite storage: create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("sqlite storage: watch %s: %w", dir, err)
	}

	known, err := s.versions()
	if err != nil {
		return err
	}

	base := filepath.Base(s.path)
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
			if strings.HasPrefix(filepath.Base(event.Name), base) {
				timer.Reset(watchDebounce)
			}
		case <-timer.C:
			current, err := s.versions()
			if err != nil {
				return err
			}
			for _, key := range diffVersions(known, current) {
				fn(key)
			}
			known = current
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("sqlite storage: watcher: %w", err)
		}
	}
}

// diffVersions returns keys added, updated or removed between two snapshots.
func diffVersions(before, after map[string]int64) []string {
	var changed []string
	for key, stamp := range after {
		if prev, ok := before[key]; !ok || prev != stamp {
			changed = append(changed, key)
		}
	}
	for key := range before {
		if _, ok := after[key]; !ok {
			changed = append(changed, key)
		}
	}
	sort.Strings(changed)
	return changed
}
