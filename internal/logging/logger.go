// Package logging writes daybook's JSON log file.
//
// Every line carries the command and version. Lines produced by
// colors.Emit also carry the store, op, status and storage key of the
// operation. Todo text and city coordinates are redacted before writing.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/version"
)

// Logger writes leveled JSON lines. args are alternating key-value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a logger that adds args to every line.
	With(args ...any) Logger
	// Shutdown closes the log file, if any.
	Shutdown() error
}

type jsonLogger struct {
	out  *clog.Logger
	file *logFile
}

// logFile is shared by a logger and everything derived through With.
type logFile struct {
	once sync.Once
	f    *os.File
	path string
}

func (lf *logFile) close() error {
	var err error
	lf.once.Do(func() { err = lf.f.Close() })
	return err
}

// Open creates the log file for cfg and prunes old files.
// A disabled config returns a logger that drops everything.
func Open(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return nopLogger{}, nil
	}
	dir, err := cfg.directory()
	if err != nil {
		return nil, err
	}
	if err := rotate(dir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}
	path := filepath.Join(dir, cfg.fileName(time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := newJSONLogger(f, cfg)
	l.file = &logFile{f: f, path: path}
	return l, nil
}

// NewWriter returns a logger writing JSON lines to w.
func NewWriter(w io.Writer, cfg Config) Logger {
	return newJSONLogger(w, cfg)
}

func newJSONLogger(w io.Writer, cfg Config) *jsonLogger {
	out := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           cfg.Level,
		Formatter:       clog.JSONFormatter,
	})
	return &jsonLogger{out: out.With("command", cfg.Command, "version", version.String())}
}

func (l *jsonLogger) Debug(msg string, args ...any) { l.out.Debug(msg, redact(args)...) }
func (l *jsonLogger) Info(msg string, args ...any)  { l.out.Info(msg, redact(args)...) }
func (l *jsonLogger) Warn(msg string, args ...any)  { l.out.Warn(msg, redact(args)...) }
func (l *jsonLogger) Error(msg string, args ...any) { l.out.Error(msg, redact(args)...) }

func (l *jsonLogger) With(args ...any) Logger {
	return &jsonLogger{out: l.out.With(redact(args)...), file: l.file}
}

func (l *jsonLogger) Shutdown() error {
	if l.file == nil {
		return nil
	}
	return l.file.close()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) Logger { return n }
func (nopLogger) Shutdown() error      { return nil }

var global struct {
	sync.Mutex
	logger Logger
}

// InitGlobal opens the log file from the global configuration and mirrors
// console output and structured events into it. Repeated calls are no-ops
// until ShutdownGlobal.
func InitGlobal() error {
	global.Lock()
	defer global.Unlock()
	if global.logger != nil {
		return nil
	}
	l, err := Open(FromGlobalConfig())
	if err != nil {
		return err
	}
	global.logger = l
	colors.SetLogger(l)
	if jl, ok := l.(*jsonLogger); ok && jl.file != nil {
		colors.Debug("Logging to file:", jl.file.path)
	}
	return nil
}

// ShutdownGlobal detaches and closes the global logger.
func ShutdownGlobal() error {
	global.Lock()
	defer global.Unlock()
	if global.logger == nil {
		return nil
	}
	colors.SetLogger(nil)
	err := global.logger.Shutdown()
	global.logger = nil
	return err
}
