// Package hooks runs user scripts when daybook stores change.
// Scripts live in <hooks_dir>/<event>/ and run in name order.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/daybook-app/daybook/internal/colors"
	"github.com/daybook-app/daybook/internal/config"
)

// Event names a hook point.
type Event string

const (
	EventTodoAdd        Event = "todo-add"
	EventTodoRemove     Event = "todo-remove"
	EventTodoClear      Event = "todo-clear"
	EventSettingsChange Event = "settings-change"
	EventCitySaved      Event = "city-saved"
)

// Failure modes.
const (
	FailureIgnore = "ignore"
	FailureWarn   = "warn"
	FailureAbort  = "abort"
)

// ErrHookFailed wraps a script failure in abort mode.
var ErrHookFailed = errors.New("hook failed")

// Config configures a Runner.
type Config struct {
	Dir         string
	Enabled     bool
	FailureMode string
	Timeout     time.Duration
	// Output receives script output. Nil means stderr.
	Output io.Writer
}

// ConfigFromGlobal reads hooks_* keys from the loaded configuration.
func ConfigFromGlobal() Config {
	return Config{
		Dir:         config.Get("hooks_dir", ""),
		Enabled:     config.GetBool("hooks_enabled", true),
		FailureMode: config.Get("hooks_failure_mode", FailureWarn),
		Timeout:     config.GetDuration("hooks_timeout", 10*time.Second),
	}
}

// Runner executes hook scripts synchronously.
type Runner struct {
	cfg Config
}

// NewRunner creates a runner. Unknown failure modes behave like warn.
func NewRunner(cfg Config) *Runner {
	switch cfg.FailureMode {
	case FailureIgnore, FailureWarn, FailureAbort:
	default:
		cfg.FailureMode = FailureWarn
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Runner{cfg: cfg}
}

// Init creates the hooks directory.
func (r *Runner) Init() error {
	if r.cfg.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(r.cfg.Dir, config.FileModeDir); err != nil {
		return fmt.Errorf("failed to create hooks directory %s: %w", r.cfg.Dir, err)
	}
	return nil
}

// Scripts lists the executable scripts for event in execution order.
func (r *Runner) Scripts(event Event) ([]string, error) {
	if r.cfg.Dir == "" {
		return nil, nil
	}
	hookDir := filepath.Join(r.cfg.Dir, string(event))
	files, err := os.ReadDir(hookDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read hooks directory %s: %w", hookDir, err)
	}
	var scripts []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		scriptPath := filepath.Join(hookDir, f.Name())
		info, err := os.Stat(scriptPath)
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, scriptPath)
	}
	sort.Strings(scripts)
	return scripts, nil
}

// Run executes every script for event with env added to the process environment.
// Only abort mode returns script failures; stores are already persisted by then.
func (r *Runner) Run(ctx context.Context, event Event, env map[string]string) error {
	if !r.cfg.Enabled {
		return nil
	}
	scripts, err := r.Scripts(event)
	if err != nil {
		colors.Warning(err.Error())
		return nil
	}
	if len(scripts) == 0 {
		return nil
	}

	colors.Debug(fmt.Sprintf("Running %s hooks (%d script(s))", event, len(scripts)))
	environ := r.environ(event, env)
	for _, script := range scripts {
		if err := r.runScript(ctx, script, environ); err != nil {
			name := filepath.Base(script)
			switch r.cfg.FailureMode {
			case FailureAbort:
				return fmt.Errorf("%w: %s: %v", ErrHookFailed, name, err)
			case FailureWarn:
				colors.Warning(fmt.Sprintf("hook %s failed: %v", name, err))
			}
		}
	}
	return nil
}

func (r *Runner) environ(event Event, env map[string]string) []string {
	vars := map[string]string{
		config.EnvPrefix + "HOOK_POINT":         string(event),
		config.EnvPrefix + "HOOK_TIMESTAMP":     time.Now().UTC().Format(time.RFC3339),
		config.EnvPrefix + "HOOKS_FAILURE_MODE": r.cfg.FailureMode,
	}
	if exe, err := os.Executable(); err == nil {
		vars[config.EnvPrefix+"BINARY"] = exe
	}
	for k, v := range env {
		key := strings.ToUpper(k)
		if !strings.HasPrefix(key, config.EnvPrefix) {
			key = config.EnvPrefix + key
		}
		vars[key] = v
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	environ := os.Environ()
	for _, k := range keys {
		environ = append(environ, k+"="+vars[k])
	}
	return environ
}

func (r *Runner) runScript(ctx context.Context, script string, environ []string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = environ
	cmd.Stdout = r.cfg.Output
	cmd.Stderr = r.cfg.Output
	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("timed out after %s", r.cfg.Timeout)
	}
	if err != nil {
		return err
	}
	colors.Debug(fmt.Sprintf("hook %s completed in %.2fs", filepath.Base(script), time.Since(start).Seconds()))
	return nil
}
