// FILE: arsenic/src/internal/core/level.go
package core

import (
	"fmt"
	"strings"
)

// Level is a log severity.
type Level int

const (
	LevelLog Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelException
)

var levelNames = [...]string{
	LevelLog:       "log",
	LevelDebug:     "debug",
	LevelInfo:      "info",
	LevelWarn:      "warn",
	LevelError:     "error",
	LevelFatal:     "fatal",
	LevelException: "exception",
}

// Rank returns the threshold ordering of the level. Exception ranks with fatal.
func (l Level) Rank() int {
	if l == LevelException {
		return int(LevelFatal)
	}
	return int(l)
}

func (l Level) String() string {
	if l < LevelLog || l > LevelException {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "log":
		return LevelLog, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "exception":
		return LevelException, nil
	default:
		return LevelLog, fmt.Errorf("unknown log level: %s", s)
	}
}
