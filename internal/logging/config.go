package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/daybook-app/daybook/internal/config"
)

// logFilePrefix names every log file so rotation never touches foreign files.
const logFilePrefix = "daybook_"

// Config controls the daybook log file.
type Config struct {
	Enabled  bool
	Level    clog.Level
	MaxFiles int
	// Dir holds the log files. Empty means the temp dir fallback only.
	Dir string
	// Command is the subcommand being run, recorded on every line.
	Command string
}

// FromGlobalConfig reads the logging_* keys. debug forces the debug level and
// quiet raises it to error; debug wins when both are set.
func FromGlobalConfig() Config {
	cfg := Config{
		Enabled:  config.GetBool("logging_enabled", false),
		Level:    ParseLevel(config.Get("logging_level", "info")),
		MaxFiles: config.GetInt("logging_max_files", 10),
		Command:  commandName(os.Args),
	}
	if config.GetBool("debug", false) {
		cfg.Level = clog.DebugLevel
	} else if config.GetBool("quiet", false) {
		cfg.Level = clog.ErrorLevel
	}
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		cfg.Dir = filepath.Join(stateDir, "logs")
	}
	return cfg
}

// ParseLevel maps a level name to a clog.Level. Unknown names mean info.
func ParseLevel(name string) clog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

// commandName returns the first non-flag argument, e.g. "todo" for "daybook todo add".
func commandName(args []string) string {
	for i, arg := range args {
		if i == 0 || strings.HasPrefix(arg, "-") {
			continue
		}
		return arg
	}
	return "daybook"
}

// directory returns the first writable log directory: Dir, then the temp dir.
func (c Config) directory() (string, error) {
	candidates := []string{filepath.Join(os.TempDir(), "daybook", "logs")}
	if c.Dir != "" {
		candidates = append([]string{c.Dir}, candidates...)
	}
	var lastErr error
	for _, dir := range candidates {
		if lastErr = writable(dir); lastErr == nil {
			return dir, nil
		}
	}
	return "", fmt.Errorf("no writable log directory: %w", lastErr)
}

func writable(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".write-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// fileName is daybook_<timestamp>_<command>_<pid>.log.
func (c Config) fileName(now time.Time) string {
	return fmt.Sprintf("%s%s_%s_%d.log", logFilePrefix, now.Format("20060102_150405"),
		strings.ReplaceAll(c.Command, " ", "_"), os.Getpid())
}
