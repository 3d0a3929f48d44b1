package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper over a zerolog.Logger that adds a package name
// field and exposes printf-style severity methods, matching the call shape
// used throughout this module's components.
type Logger struct {
	name string
	zl   zerolog.Logger
}

var (
	mu            sync.Mutex
	loggers       = make(map[string]*Logger)
	defaultLevel  = INFO
	packageLevels = make(map[string]LogLevel)
	writer        io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
)

// New returns the logger registered for name, creating it on first use. The
// same name always returns the same *Logger, so callers may call New in a
// package-level var initializer.
func New(name string) *Logger {
	mu.Lock()
	defer mu.Unlock()

	if l, ok := loggers[name]; ok {
		return l
	}
	l := &Logger{name: name}
	l.rebuild()
	loggers[name] = l
	return l
}

func (l *Logger) rebuild() {
	level := defaultLevel
	if lvl, ok := packageLevels[l.name]; ok {
		level = lvl
	}
	l.zl = zerolog.New(writer).
		Level(toZeroLevel(level)).
		With().
		Timestamp().
		Str("component", l.name).
		Logger()
}

// Config controls the global logging setup: the default severity, optional
// per-component overrides, and where output goes.
type Config struct {
	DefaultLevel  string
	PackageLevels map[string]string
	OutputPath    string
	ConsoleFormat bool
}

// Configure applies cfg globally and rebuilds every logger created so far so
// the change takes effect immediately, even for loggers already held by
// long-lived callers.
func Configure(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	defaultLevel = LevelFromString(cfg.DefaultLevel)
	packageLevels = make(map[string]LogLevel, len(cfg.PackageLevels))
	for k, v := range cfg.PackageLevels {
		packageLevels[k] = LevelFromString(v)
	}

	var out io.Writer = os.Stderr
	if cfg.OutputPath != "" {
		f, err := os.OpenFile(cfg.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		out = f
	}
	if cfg.ConsoleFormat {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}
	}
	writer = out

	for _, l := range loggers {
		l.rebuild()
	}
	return nil
}

func (l *Logger) Trace(format string, args ...interface{}) { l.logMessage(l.zl.Trace(), format, args) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logMessage(l.zl.Debug(), format, args) }
func (l *Logger) Info(format string, args ...interface{})  { l.logMessage(l.zl.Info(), format, args) }
func (l *Logger) Warning(format string, args ...interface{}) {
	l.logMessage(l.zl.Warn(), format, args)
}
func (l *Logger) Error(format string, args ...interface{}) { l.logMessage(l.zl.Error(), format, args) }

func (l *Logger) logMessage(event *zerolog.Event, format string, args []interface{}) {
	if len(args) == 0 {
		event.Msg(format)
	} else {
		event.Msgf(format, args...)
	}
}
