package colors

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// StructuredLogLevel represents log level for structured logs.
type StructuredLogLevel string

const (
	LevelDebug StructuredLogLevel = "debug"
	LevelInfo  StructuredLogLevel = "info"
	LevelWarn  StructuredLogLevel = "warn"
	LevelError StructuredLogLevel = "error"
)

// Field names shared by console JSON lines and the file logger.
const (
	FieldStore  = "store"
	FieldOp     = "op"
	FieldStatus = "status"
	FieldKey    = "key"
	FieldError  = "error"
)

// Event describes one operation on a store or subsystem.
// Key is the storage key or record id the operation touched, if any.
type Event struct {
	Store  string
	Op     string
	Status string
	Key    string
	Err    error
	Fields map[string]interface{}
}

// Args flattens the event into key-value pairs for a Logger.
// Extra fields follow the standard ones in name order.
func (e Event) Args() []any {
	args := []any{FieldStore, e.Store, FieldOp, e.Op, FieldStatus, e.Status}
	if e.Key != "" {
		args = append(args, FieldKey, e.Key)
	}
	if e.Err != nil {
		args = append(args, FieldError, e.Err.Error())
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, name, e.Fields[name])
	}
	return args
}

// consoleLine is the JSON shape written to stderr in debug mode.
type consoleLine struct {
	Time   string                 `json:"time"`
	Level  StructuredLogLevel     `json:"level"`
	Store  string                 `json:"store"`
	Op     string                 `json:"op"`
	Status string                 `json:"status"`
	Key    string                 `json:"key,omitempty"`
	Error  string                 `json:"error,omitempty"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

var (
	consoleMu      sync.Mutex
	consoleEnabled atomic.Bool
)

func init() {
	consoleEnabled.Store(true)
}

// DisableStructuredLogging stops the stderr JSON lines. The file logger still
// receives events. The terminal dashboard calls this to keep the screen clean.
func DisableStructuredLogging() {
	consoleEnabled.Store(false)
}

// EnableStructuredLogging turns the stderr JSON lines back on.
func EnableStructuredLogging() {
	consoleEnabled.Store(true)
}

// Emit sends e to the file logger and, in debug mode, prints it to stderr as JSON.
func Emit(level StructuredLogLevel, e Event) {
	if l := currentLogger(); l != nil {
		msg := e.Op
		args := e.Args()
		switch level {
		case LevelDebug:
			l.Debug(msg, args...)
		case LevelWarn:
			l.Warn(msg, args...)
		case LevelError:
			l.Error(msg, args...)
		default:
			l.Info(msg, args...)
		}
	}

	if !debugEnabled || !consoleEnabled.Load() {
		return
	}
	line := consoleLine{
		Time:   time.Now().UTC().Format(time.RFC3339),
		Level:  level,
		Store:  e.Store,
		Op:     e.Op,
		Status: e.Status,
		Key:    e.Key,
		Fields: e.Fields,
	}
	if e.Err != nil {
		line.Error = e.Err.Error()
	}
	data, err := json.Marshal(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal structured log: %v\n", err)
		return
	}

	consoleMu.Lock()
	defer consoleMu.Unlock()
	_, errOut := writers()
	write(errOut, "structured log", string(data))
}

// StructuredLog emits an event built from its parts.
func StructuredLog(level StructuredLogLevel, store, op, status string, err error, key string, fields map[string]interface{}) {
	Emit(level, Event{Store: store, Op: op, Status: status, Key: key, Err: err, Fields: fields})
}

// StructuredDebug logs a debug event.
func StructuredDebug(store, op, status string, err error, key string, fields map[string]interface{}) {
	StructuredLog(LevelDebug, store, op, status, err, key, fields)
}

// StructuredInfo logs an info event.
func StructuredInfo(store, op, status string, err error, key string, fields map[string]interface{}) {
	StructuredLog(LevelInfo, store, op, status, err, key, fields)
}

// StructuredWarn logs a warning event.
func StructuredWarn(store, op, status string, err error, key string, fields map[string]interface{}) {
	StructuredLog(LevelWarn, store, op, status, err, key, fields)
}

// StructuredError logs an error event.
func StructuredError(store, op, status string, err error, key string, fields map[string]interface{}) {
	StructuredLog(LevelError, store, op, status, err, key, fields)
}
