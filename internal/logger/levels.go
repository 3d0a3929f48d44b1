package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// LogLevel is the severity threshold a Logger or the global default filters
// messages by.
type LogLevel int

const (
	NONE LogLevel = iota
	TRACE
	DEBUG
	INFO
	WARNING
	ERROR
)

// LevelFromString parses a level name case-insensitively, defaulting to INFO
// for anything unrecognized.
func LevelFromString(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return NONE
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "WARNING", "WARN":
		return WARNING
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

func (l LogLevel) String() string {
	switch l {
	case NONE:
		return "NONE"
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	default:
		return fmt.Sprintf("LogLevel(%d)", l)
	}
}

func toZeroLevel(l LogLevel) zerolog.Level {
	switch l {
	case NONE:
		return zerolog.Disabled
	case TRACE:
		return zerolog.TraceLevel
	case DEBUG:
		return zerolog.DebugLevel
	case INFO:
		return zerolog.InfoLevel
	case WARNING:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
