package hooks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir string, event Event, name, body string, mode os.FileMode) string {
	t.Helper()
	hookDir := filepath.Join(dir, string(event))
	require.NoError(t, os.MkdirAll(hookDir, 0o755))
	path := filepath.Join(hookDir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), mode))
	return path
}

func TestInitCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hooks")
	r := NewRunner(Config{Dir: dir, Enabled: true})
	require.NoError(t, r.Init())
	_, err := os.Stat(dir)
	assert.NoError(t, err)
}

func TestScriptsSortedAndExecutableOnly(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, EventTodoAdd, "20-second.sh", "exit 0", 0o755)
	writeScript(t, dir, EventTodoAdd, "10-first.sh", "exit 0", 0o755)
	writeScript(t, dir, EventTodoAdd, "README", "not a hook", 0o644)

	r := NewRunner(Config{Dir: dir, Enabled: true})
	scripts, err := r.Scripts(EventTodoAdd)
	require.NoError(t, err)
	require.Len(t, scripts, 2)
	assert.Equal(t, "10-first.sh", filepath.Base(scripts[0]))

	scripts, err = r.Scripts(EventCitySaved)
	require.NoError(t, err)
	assert.Empty(t, scripts)
}

func TestRunPassesEnvironment(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "env.txt")
	writeScript(t, dir, EventTodoAdd, "dump.sh", `echo "$DAYBOOK_HOOK_POINT|$DAYBOOK_TODO_TEXT|$DAYBOOK_TODO_ID" > `+out, 0o755)

	r := NewRunner(Config{Dir: dir, Enabled: true})
	err := r.Run(context.Background(), EventTodoAdd, map[string]string{
		"todo_text":       "Buy milk",
		"DAYBOOK_TODO_ID": "42",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "todo-add|Buy milk|42", strings.TrimSpace(string(data)))
}

func TestFailureModes(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{FailureIgnore, false},
		{FailureWarn, false},
		{FailureAbort, true},
		{"bogus", false},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			dir := t.TempDir()
			marker := filepath.Join(t.TempDir(), "ran")
			writeScript(t, dir, EventTodoClear, "01-fail.sh", "exit 3", 0o755)
			writeScript(t, dir, EventTodoClear, "02-after.sh", "touch "+marker, 0o755)

			var buf bytes.Buffer
			r := NewRunner(Config{Dir: dir, Enabled: true, FailureMode: tt.mode, Output: &buf})
			err := r.Run(context.Background(), EventTodoClear, nil)
			_, statErr := os.Stat(marker)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrHookFailed)
				assert.True(t, os.IsNotExist(statErr), "abort stops later scripts")
				return
			}
			require.NoError(t, err)
			assert.NoError(t, statErr)
		})
	}
}

func TestRunDisabled(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, EventTodoAdd, "fail.sh", "exit 1", 0o755)
	r := NewRunner(Config{Dir: dir, Enabled: false, FailureMode: FailureAbort})
	assert.NoError(t, r.Run(context.Background(), EventTodoAdd, nil))
}

func TestRunTimeout(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, EventSettingsChange, "slow.sh", "sleep 5", 0o755)
	r := NewRunner(Config{Dir: dir, Enabled: true, FailureMode: FailureAbort, Timeout: 100 * time.Millisecond})

	start := time.Now()
	err := r.Run(context.Background(), EventSettingsChange, nil)
	require.ErrorIs(t, err, ErrHookFailed)
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestConfigFromGlobal(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("DAYBOOK_CONFIG_PATH", "")
	t.Setenv("DAYBOOK_HOOKS_FAILURE_MODE", "ABORT")
	t.Setenv("DAYBOOK_HOOKS_TIMEOUT", "2s")
	config.Load()

	cfg := ConfigFromGlobal()
	assert.Equal(t, filepath.Join(tmp, "daybook", "hooks"), cfg.Dir)
	assert.Equal(t, FailureAbort, cfg.FailureMode)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.True(t, cfg.Enabled)
}
