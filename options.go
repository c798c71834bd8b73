package logtap

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/trickstertwo/xclock"
)

// DefaultTimestampLayout renders Event.Timestamp the way en-US toLocaleString does.
const DefaultTimestampLayout = "1/2/2006, 3:04:05 PM"

// ColorMode controls whether console and text output is colorized.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var (
	defaultTimestampLayout = DefaultTimestampLayout
	defaultColorMode       = ColorAuto
)

var namedLayouts = map[string]string{
	"ANSIC":       time.ANSIC,
	"UNIXDATE":    time.UnixDate,
	"RFC822":      time.RFC822,
	"RFC1123":     time.RFC1123,
	"RFC3339":     time.RFC3339,
	"RFC3339NANO": time.RFC3339Nano,
	"KITCHEN":     time.Kitchen,
	"DATETIME":    time.DateTime,
}

func init() {
	setupTimestampLayoutFromEnv()
	setupColorModeFromEnv()
}

// setupTimestampLayoutFromEnv reads LOGTAP_TIMESTAMP_LAYOUT. The value is either
// a named layout (RFC3339, Kitchen, DateTime, ...) or a raw Go time layout.
func setupTimestampLayoutFromEnv() {
	v := os.Getenv("LOGTAP_TIMESTAMP_LAYOUT")

	if v == "" {
		return
	}

	if named, ok := namedLayouts[strings.ToUpper(v)]; ok {
		defaultTimestampLayout = named

		return
	}

	defaultTimestampLayout = v
}

// setupColorModeFromEnv reads LOGTAP_COLOR.
func setupColorModeFromEnv() {
	v := os.Getenv("LOGTAP_COLOR")

	if v == "" {
		return
	}

	mode, err := ParseColorMode(v)
	if err != nil {
		log.Printf("logtap: invalid LOGTAP_COLOR value %q, using %q", v, defaultColorMode)

		return
	}

	defaultColorMode = mode
}

// ParseColorMode parses auto, always or never, case-insensitively.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ColorAuto, ColorAlways, ColorNever:
		return mode, nil
	}

	return "", errors.New("invalid color mode: " + s)
}

// colorEnabled resolves mode against the destination writer.
// Auto mode colors only terminals and honours NO_COLOR.
func colorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithClock sets the clock used to stamp events.
// By default the process-wide xclock default clock is used.
func WithClock(c xclock.Clock) Option {
	return func(i *Interceptor) {
		i.clock = c
	}
}

// WithTimestampLayout sets the Go time layout used for Event.Timestamp.
func WithTimestampLayout(layout string) Option {
	return func(i *Interceptor) {
		if layout != "" {
			i.layout = layout
		}
	}
}

// WithLocation sets the time zone Event.Timestamp is rendered in. The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(i *Interceptor) {
		if loc != nil {
			i.location = loc
		}
	}
}

// WithInfoAsLog makes LevelLog and LevelInfo share the log listener set
// instead of giving Info a dedicated set. Listeners registered for either
// level receive both Log and Info calls. Events still carry LevelInfo as
// their type for Info calls.
func WithInfoAsLog() Option {
	return func(i *Interceptor) {
		i.infoAsLog = true
	}
}
