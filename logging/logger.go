package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/familiar/util/pathutil"
)

const (
	// EnvLogLevel overrides the configured level.
	EnvLogLevel = "FAMILIAR_LOG_LEVEL"
	// EnvLogCaller enables caller reporting when set to "true".
	EnvLogCaller = "FAMILIAR_LOG_CALLER"

	defaultLevel = logrus.WarnLevel
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	current  Config
	fileSink *os.File
)

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component; Configure updates existing loggers.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	logger.SetOutput(GetGlobalOutput())
	apply(logger, current, ResolveLevel(current), colorEnabled(current))

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure applies cfg to every logger, existing and future, and points the
// shared output at the sinks cfg selects. Stdout is never a sink. A file
// sink that cannot be opened is skipped and its error returned.
func Configure(cfg Config) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	current = cfg
	level := ResolveLevel(cfg)

	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
	}

	var writers []io.Writer
	var sinkErr error
	if cfg.File.Enabled && cfg.File.Path != "" {
		file, err := openFileSink(cfg.File.Path)
		if err != nil {
			sinkErr = err
		} else {
			fileSink = file
			writers = append(writers, file)
		}
	}
	if shouldLogToStderr(cfg.Format.StructuredToStderr, level, stderrIsTerminal()) {
		writers = append(writers, os.Stderr)
	}

	switch len(writers) {
	case 0:
		SetGlobalOutput(io.Discard)
	case 1:
		SetGlobalOutput(writers[0])
	default:
		SetGlobalOutput(io.MultiWriter(writers...))
	}

	colors := colorEnabled(cfg)
	for _, entry := range loggers {
		apply(entry.Logger, cfg, level, colors)
	}

	return sinkErr
}

// ResolveLevel returns the effective level: --verbose, then
// FAMILIAR_LOG_LEVEL, then the configured level, then warn. Unparseable
// values fall through to the next source.
func ResolveLevel(cfg Config) logrus.Level {
	if cfg.Verbose {
		return logrus.DebugLevel
	}
	for _, candidate := range []string{os.Getenv(EnvLogLevel), cfg.Level} {
		if candidate == "" {
			continue
		}
		if level, err := logrus.ParseLevel(candidate); err == nil {
			return level
		}
	}
	return defaultLevel
}

func apply(logger *logrus.Logger, cfg Config, level logrus.Level, colors bool) {
	logger.SetLevel(level)
	logger.SetReportCaller(os.Getenv(EnvLogCaller) == "true" || cfg.ReportCaller)

	switch cfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: cfg.Format, Colors: colors})
	}
}

// shouldLogToStderr decides the stderr sink. In "auto" mode logs are shown
// only when debugging or when stderr is not an interactive terminal, so
// normal prompt rendering stays silent.
func shouldLogToStderr(mode string, level logrus.Level, interactive bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return level >= logrus.DebugLevel || !interactive
	}
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// colorEnabled reports whether the text formatter may emit escapes: only
// when stderr is the sole sink and is a terminal.
func colorEnabled(cfg Config) bool {
	if cfg.File.Enabled || strings.ToLower(cfg.Format.StructuredToStderr) == "never" {
		return false
	}
	return os.Getenv("NO_COLOR") == "" && stderrIsTerminal()
}

func openFileSink(path string) (*os.File, error) {
	expanded, err := pathutil.Expand(path, nil)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
