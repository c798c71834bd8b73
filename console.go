package logtap

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// LogFunc is a variadic output method.
type LogFunc func(args ...any)

// Console is a logger modelled as a set of replaceable method slots.
// Log, Warn and Error are required; Debug and Info may be nil when the
// underlying logger has no such method.
//
// Call sites use the slots like methods:
//
//	c.Warn("disk almost full", usage)
//
// An Interceptor swaps the slots in place, so code holding the same *Console
// keeps working unchanged while being observed.
type Console struct {
	Log   LogFunc
	Warn  LogFunc
	Error LogFunc
	Debug LogFunc
	Info  LogFunc
}

// slot returns a pointer to the slot for level, or nil for an unknown level.
func (c *Console) slot(level Level) *LogFunc {
	switch level {
	case LevelLog:
		return &c.Log
	case LevelWarn:
		return &c.Warn
	case LevelError:
		return &c.Error
	case LevelDebug:
		return &c.Debug
	case LevelInfo:
		return &c.Info
	}

	return nil
}

// MethodLogger is the minimal method set FromLogger can adapt.
type MethodLogger interface {
	Log(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

// DebugLogger is implemented by loggers that have a Debug method.
type DebugLogger interface {
	Debug(args ...any)
}

// InfoLogger is implemented by loggers that have an Info method.
type InfoLogger interface {
	Info(args ...any)
}

// FromLogger builds a Console whose slots call l's methods.
// Debug and Info are filled only when l implements DebugLogger or InfoLogger.
func FromLogger(l MethodLogger) *Console {
	c := &Console{
		Log:   l.Log,
		Warn:  l.Warn,
		Error: l.Error,
	}

	if d, ok := l.(DebugLogger); ok {
		c.Debug = d.Debug
	}

	if i, ok := l.(InfoLogger); ok {
		c.Info = i.Info
	}

	return c
}

// consoleConfig holds the settings NewConsole applies.
type consoleConfig struct {
	stdout    io.Writer
	stderr    io.Writer
	colorMode ColorMode
}

// ConsoleOption configures a Console built by NewConsole.
type ConsoleOption func(*consoleConfig)

// WithStdout sets where Log, Info and Debug write. Defaults to os.Stdout.
func WithStdout(w io.Writer) ConsoleOption {
	return func(cfg *consoleConfig) {
		cfg.stdout = w
	}
}

// WithStderr sets where Warn and Error write. Defaults to os.Stderr.
func WithStderr(w io.Writer) ConsoleOption {
	return func(cfg *consoleConfig) {
		cfg.stderr = w
	}
}

// WithConsoleColor overrides the color mode taken from LOGTAP_COLOR.
func WithConsoleColor(mode ColorMode) ConsoleOption {
	return func(cfg *consoleConfig) {
		cfg.colorMode = mode
	}
}

// NewConsole creates a Console with all five slots, writing space-joined
// arguments line by line. Log, Info and Debug go to stdout, Warn and Error to
// stderr. Info, Warn, Error and Debug lines are colorized when color is enabled.
func NewConsole(opts ...ConsoleOption) *Console {
	cfg := &consoleConfig{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		colorMode: defaultColorMode,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Console{
		Log:   newPrinter(cfg.stdout, nil),
		Info:  newPrinter(cfg.stdout, levelColor(LevelInfo, colorEnabled(cfg.colorMode, cfg.stdout))),
		Debug: newPrinter(cfg.stdout, levelColor(LevelDebug, colorEnabled(cfg.colorMode, cfg.stdout))),
		Warn:  newPrinter(cfg.stderr, levelColor(LevelWarn, colorEnabled(cfg.colorMode, cfg.stderr))),
		Error: newPrinter(cfg.stderr, levelColor(LevelError, colorEnabled(cfg.colorMode, cfg.stderr))),
	}
}

// newPrinter returns a LogFunc writing one line to w, optionally painted with c.
func newPrinter(w io.Writer, c *color.Color) LogFunc {
	return func(args ...any) {
		line := sprintMessages(args...)
		if c != nil {
			line = c.Sprint(line)
		}

		fmt.Fprintln(w, line)
	}
}

// levelColor returns the color for level with coloring forced on or off.
func levelColor(level Level, enabled bool) *color.Color {
	var c *color.Color

	switch level {
	case LevelError:
		c = color.New(color.FgRed, color.Bold)
	case LevelWarn:
		c = color.New(color.FgYellow)
	case LevelDebug:
		c = color.New(color.FgHiBlack)
	case LevelInfo:
		c = color.New(color.FgCyan)
	default:
		c = color.New(color.FgWhite)
	}

	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c
}
