package colors

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	entries []string
	args    [][]any
}

func (r *recordingLogger) record(level, msg string, args []any) {
	r.entries = append(r.entries, level+":"+msg)
	r.args = append(r.args, args)
}

func (r *recordingLogger) Debug(msg string, args ...any) { r.record("debug", msg, args) }
func (r *recordingLogger) Info(msg string, args ...any)  { r.record("info", msg, args) }
func (r *recordingLogger) Warn(msg string, args ...any)  { r.record("warn", msg, args) }
func (r *recordingLogger) Error(msg string, args ...any) { r.record("error", msg, args) }

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	t.Cleanup(func() { SetOutput(nil, nil) })
	return &out, &errOut
}

func TestConsoleOutput(t *testing.T) {
	tests := []struct {
		name     string
		emit     func(...string)
		toStderr bool
		contains []string
	}{
		{name: "error", emit: Error, toStderr: true, contains: []string{"Error:", Red, "something went wrong"}},
		{name: "warning", emit: Warning, toStderr: true, contains: []string{"Warning:", Yellow, "something went wrong"}},
		{name: "success", emit: Success, contains: []string{checkmark, Green, "something went wrong"}},
		{name: "info", emit: Info, contains: []string{Blue, "something went wrong"}},
		{name: "log info", emit: LogInfo, toStderr: true, contains: []string{Blue, "something went wrong"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := captureOutput(t)
			tt.emit("something", "went wrong")

			target, other := out, errOut
			if tt.toStderr {
				target, other = errOut, out
			}
			for _, want := range tt.contains {
				assert.Contains(t, target.String(), want)
			}
			assert.Empty(t, other.String())
		})
	}
}

func TestDebugGatedByFlag(t *testing.T) {
	_, errOut := captureOutput(t)
	SetDebug(false)
	t.Cleanup(func() { SetDebug(false) })

	Debug("hidden")
	assert.Empty(t, errOut.String())

	SetDebug(true)
	Debug("visible")
	assert.Contains(t, errOut.String(), "Debug:")
	assert.Contains(t, errOut.String(), "visible")
}

func TestQuietSuppressesInfoAndSuccess(t *testing.T) {
	out, errOut := captureOutput(t)
	SetQuiet(true)
	t.Cleanup(func() { SetQuiet(false) })

	Info("info")
	Success("done")
	Warning("still shown")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "still shown")
}

func TestMessagesMirrorToLogger(t *testing.T) {
	captureOutput(t)
	rec := &recordingLogger{}
	SetLogger(rec)
	t.Cleanup(func() { SetLogger(nil) })

	Error("e")
	Warning("w")
	Info("i")
	Success("s")

	require.Equal(t, []string{"error:e", "warn:w", "info:i", "info:s"}, rec.entries)
}

func TestStructuredDebugIsGatedByDebugMode(t *testing.T) {
	_, errOut := captureOutput(t)
	EnableStructuredLogging()
	SetDebug(false)
	t.Cleanup(func() { SetDebug(false) })

	StructuredDebug("colors", "debug_disabled", "skipped", nil, "", nil)
	assert.Empty(t, errOut.String())

	SetDebug(true)
	StructuredDebug("todo", "toggle", "completed", nil, "todoList", map[string]interface{}{"count": 2})
	line := errOut.String()
	assert.True(t, strings.Contains(line, `"level":"debug"`), line)
	assert.Contains(t, line, `"store":"todo"`)
	assert.Contains(t, line, `"op":"toggle"`)
	assert.Contains(t, line, `"key":"todoList"`)
}

func TestEventsReachLoggerWithoutDebug(t *testing.T) {
	_, errOut := captureOutput(t)
	SetDebug(false)
	rec := &recordingLogger{}
	SetLogger(rec)
	t.Cleanup(func() { SetLogger(nil) })

	StructuredError("settings", "update_theme", "failed", errors.New("disk full"), "userSettings",
		map[string]interface{}{"theme": "dark", "attempt": 1})

	assert.Empty(t, errOut.String())
	require.Equal(t, []string{"error:update_theme"}, rec.entries)
	assert.Equal(t, []any{
		"store", "settings", "op", "update_theme", "status", "failed",
		"key", "userSettings", "error", "disk full",
		"attempt", 1, "theme", "dark",
	}, rec.args[0])
}

func TestEventArgsOmitEmptyKeyAndError(t *testing.T) {
	e := Event{Store: "notify", Op: "expire", Status: "completed"}
	assert.Equal(t, []any{"store", "notify", "op", "expire", "status", "completed"}, e.Args())
}

func TestStructuredLoggingCanBeDisabled(t *testing.T) {
	_, errOut := captureOutput(t)
	SetDebug(true)
	t.Cleanup(func() { SetDebug(false) })
	DisableStructuredLogging()
	t.Cleanup(EnableStructuredLogging)

	StructuredInfo("colors", "disabled", "skipped", nil, "", nil)
	assert.Empty(t, errOut.String())
}
