package logtap

import (
	"errors"
	"strings"
)

// Level identifies which output method of a Console was called.
type Level string

const (
	LevelLog   Level = "log"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
)

var levelSet = map[Level]struct{}{
	LevelLog:   {},
	LevelWarn:  {},
	LevelError: {},
	LevelDebug: {},
	LevelInfo:  {},
}

// Levels returns every known level in a fixed order.
func Levels() []Level {
	return []Level{LevelLog, LevelWarn, LevelError, LevelDebug, LevelInfo}
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	_, ok := levelSet[l]

	return ok
}

func (l Level) String() string {
	return string(l)
}

// ParseLevel parses a string into a Level.
// It is case-insensitive. It returns an error if the input string is not a valid level.
func ParseLevel(levelStr string) (Level, error) {
	level := Level(strings.ToLower(strings.TrimSpace(levelStr)))
	if level.Valid() {
		return level, nil
	}

	return "", errors.New("invalid level: " + levelStr)
}
