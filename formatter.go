package logtap

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Formatter is an interface for converting an Event into a byte slice.
type Formatter interface {
	Format(e Event) ([]byte, error)
}

// formatterConfig collects FormatterOption settings.
type formatterConfig struct {
	color       *bool
	sensitive   []string
	insensitive []string
}

// FormatterOption configures a formatter.
type FormatterOption func(*formatterConfig)

// WithColor forces colored output of the text formatter on or off.
// By default it follows LOGTAP_COLOR and whether stdout is a terminal.
func WithColor(enabled bool) FormatterOption {
	return func(cfg *formatterConfig) {
		cfg.color = &enabled
	}
}

// WithMaskingKeys masks the values under the given keys (case-sensitive)
// in messages that are maps.
func WithMaskingKeys(keys ...string) FormatterOption {
	return func(cfg *formatterConfig) {
		cfg.sensitive = append(cfg.sensitive, keys...)
	}
}

// WithMaskingKeysIgnoreCase is WithMaskingKeys with case-insensitive matching.
func WithMaskingKeysIgnoreCase(keys ...string) FormatterOption {
	return func(cfg *formatterConfig) {
		cfg.insensitive = append(cfg.insensitive, keys...)
	}
}

func newFormatterConfig(opts []FormatterOption) *formatterConfig {
	cfg := &formatterConfig{}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

func (cfg *formatterConfig) masking() maskingCore {
	var mc maskingCore

	if len(cfg.sensitive) > 0 {
		mc.addSensitive(cfg.sensitive...)
	}

	if len(cfg.insensitive) > 0 {
		mc.addInsensitive(cfg.insensitive...)
	}

	return mc
}

// jsonFormatter formats events as JSON objects.
type jsonFormatter struct {
	maskingCore
}

// NewJSONFormatter creates a formatter producing
// {"type":...,"date":...,"timestamp":...,"messages":[...]}.
func NewJSONFormatter(opts ...FormatterOption) *jsonFormatter {
	cfg := newFormatterConfig(opts)

	return &jsonFormatter{maskingCore: cfg.masking()}
}

// Format converts an Event to JSON format.
func (f *jsonFormatter) Format(e Event) ([]byte, error) {
	return json.Marshal(newEventPayload(e, jsonMessages(e.Messages, &f.maskingCore)))
}

// textFormatter formats events as human-readable text.
type textFormatter struct {
	maskingCore
	color bool
}

// NewTextFormatter creates a formatter producing
// "<timestamp> [<TYPE>] <messages...>".
func NewTextFormatter(opts ...FormatterOption) *textFormatter {
	cfg := newFormatterConfig(opts)

	f := &textFormatter{
		maskingCore: cfg.masking(),
		color:       colorEnabled(defaultColorMode, os.Stdout),
	}

	if cfg.color != nil {
		f.color = *cfg.color
	}

	return f
}

// Format converts an Event to a single-line text format.
func (f *textFormatter) Format(e Event) ([]byte, error) {
	var b bytes.Buffer

	// Timestamp
	b.WriteString(e.Timestamp)
	b.WriteString(" ")

	// Type
	tag := "[" + strings.ToUpper(string(e.Type)) + "]"
	if f.color {
		tag = levelColor(e.Type, true).Sprint(tag)
	}

	b.WriteString(tag)

	// Messages
	for _, m := range e.Messages {
		b.WriteString(" ")

		switch v := m.(type) {
		case map[string]any:
			writeMap(&b, f.maskMap(v))
		case map[string]string:
			writeMap(&b, f.maskStringMap(v))
		default:
			b.WriteString(strings.TrimRight(fmt.Sprint(m), "\n"))
		}
	}

	return b.Bytes(), nil
}

// writeMap writes m as {k=v, ...} with sorted keys and quoted string values.
func writeMap[V any](b *bytes.Buffer, m map[string]V) {
	keys := make([]string, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	b.WriteString("{")

	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(k)
		b.WriteString("=")

		// Handle strings and other types differently for quoting.
		var val any = m[k]

		if s, ok := val.(string); ok {
			b.WriteString(fmt.Sprintf("%q", s))
		} else {
			b.WriteString(fmt.Sprint(val))
		}
	}

	b.WriteString("}")
}
