package logtap

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func testEvent(level Level, messages ...any) Event {
	return Event{
		Type:      level,
		Date:      time.Date(2025, 9, 25, 12, 0, 0, 0, time.UTC),
		Timestamp: "9/25/2025, 12:00:00 PM",
		Messages:  messages,
	}
}

// TestJSONFormatter_Format directly tests the output of the jsonFormatter.
func TestJSONFormatter_Format(t *testing.T) {
	f := NewJSONFormatter()

	b, err := f.Format(testEvent(LevelWarn, "disk", 93, errors.New("nearly full")))
	if err != nil {
		t.Fatalf("Format() returned an error: %v", err)
	}

	s := string(b)
	if !strings.Contains(s, `"type":"warn"`) {
		t.Errorf("output missing type: %s", s)
	}
	if !strings.Contains(s, `"date":"2025-09-25T12:00:00Z"`) {
		t.Errorf("output missing or incorrect date: %s", s)
	}
	if !strings.Contains(s, `"timestamp":"9/25/2025, 12:00:00 PM"`) {
		t.Errorf("output missing timestamp: %s", s)
	}
	if !strings.Contains(s, `"messages":["disk",93,"nearly full"]`) {
		t.Errorf("output missing or incorrect messages: %s", s)
	}
	if strings.Contains(s, "logger") {
		t.Errorf("output should not contain the logger snapshot: %s", s)
	}
}

// TestJSONFormatter_EmptyMessages verifies that a call without arguments encodes an empty array.
func TestJSONFormatter_EmptyMessages(t *testing.T) {
	b, err := NewJSONFormatter().Format(testEvent(LevelLog))
	if err != nil {
		t.Fatalf("Format() returned an error: %v", err)
	}

	if !strings.Contains(string(b), `"messages":[]`) {
		t.Errorf("expected empty messages array, got %s", b)
	}
}

// TestEvent_MarshalJSON verifies that an Event can be passed to json.Marshal directly.
func TestEvent_MarshalJSON(t *testing.T) {
	e := testEvent(LevelError, "failed")
	e.Logger = Console{Log: func(...any) {}}

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() returned an error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("failed to unmarshal JSON: %v", err)
	}

	if decoded["type"] != "error" {
		t.Errorf("expected type error, got %v", decoded["type"])
	}
	if _, ok := decoded["Logger"]; ok {
		t.Error("logger snapshot should not be serialised")
	}
}

// TestTextFormatter_Format verifies the behavior of the textFormatter, including colorization.
func TestTextFormatter_Format(t *testing.T) {
	t.Run("Basic structure and map formatting is correct", func(t *testing.T) {
		f := NewTextFormatter(WithColor(false))

		e := testEvent(LevelError, "request failed", map[string]interface{}{
			"status": 500,
			"path":   "/api/v1/users",
		})

		b, err := f.Format(e)
		if err != nil {
			t.Fatalf("Format() returned an error: %v", err)
		}

		want := `9/25/2025, 12:00:00 PM [ERROR] request failed {path="/api/v1/users", status=500}`
		if string(b) != want {
			t.Errorf("unexpected output:\n got: %s\nwant: %s", b, want)
		}
	})

	t.Run("Trailing newlines are trimmed", func(t *testing.T) {
		f := NewTextFormatter(WithColor(false))

		b, _ := f.Format(testEvent(LevelLog, "line\n"))

		if strings.HasSuffix(string(b), "\n") {
			t.Errorf("expected trailing newline to be trimmed, got %q", b)
		}
	})

	t.Run("Color is applied when enabled", func(t *testing.T) {
		f := NewTextFormatter(WithColor(true))

		b, _ := f.Format(testEvent(LevelWarn, "careful"))

		if !strings.Contains(string(b), "\x1b[") {
			t.Errorf("expected ANSI escape codes in output, got %q", b)
		}
		if !strings.Contains(string(b), "[WARN]") {
			t.Errorf("expected level tag in output, got %q", b)
		}
	})

	t.Run("Color is not applied when disabled", func(t *testing.T) {
		f := NewTextFormatter(WithColor(false))

		b, _ := f.Format(testEvent(LevelWarn, "careful"))

		if strings.Contains(string(b), "\x1b[") {
			t.Errorf("expected no ANSI escape codes, got %q", b)
		}
	})
}

// TestFormatter_Masking verifies key masking in both formatters.
func TestFormatter_Masking(t *testing.T) {
	payload := map[string]interface{}{
		"user":     "gopher",
		"password": "secret",
		"Token":    "abc",
	}

	tests := []struct {
		name      string
		formatter Formatter
		hidden    []string
		visible   []string
	}{
		{
			name:      "JSON case-sensitive",
			formatter: NewJSONFormatter(WithMaskingKeys("password")),
			hidden:    []string{"secret"},
			visible:   []string{"gopher", "abc", maskedValue},
		},
		{
			name:      "JSON case-insensitive",
			formatter: NewJSONFormatter(WithMaskingKeysIgnoreCase("TOKEN")),
			hidden:    []string{"abc"},
			visible:   []string{"gopher", "secret", maskedValue},
		},
		{
			name:      "Text both modes",
			formatter: NewTextFormatter(WithColor(false), WithMaskingKeys("password"), WithMaskingKeysIgnoreCase("token")),
			hidden:    []string{"secret", "abc"},
			visible:   []string{"gopher", maskedValue},
		},
		{
			name:      "No keys registered",
			formatter: NewJSONFormatter(),
			visible:   []string{"gopher", "secret", "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.formatter.Format(testEvent(LevelLog, "login", payload))
			if err != nil {
				t.Fatalf("Format() returned an error: %v", err)
			}

			s := string(b)
			for _, h := range tt.hidden {
				if strings.Contains(s, h) {
					t.Errorf("expected %q to be masked in %s", h, s)
				}
			}
			for _, v := range tt.visible {
				if !strings.Contains(s, v) {
					t.Errorf("expected %q in %s", v, s)
				}
			}
		})
	}

	if payload["password"] != "secret" {
		t.Error("masking must not modify the caller's map")
	}
}

// TestFormatter_MaskingStringMap verifies masking of map[string]string messages.
func TestFormatter_MaskingStringMap(t *testing.T) {
	f := NewJSONFormatter(WithMaskingKeys("authorization"))

	b, err := f.Format(testEvent(LevelLog, map[string]string{"authorization": "Bearer x", "accept": "json"}))
	if err != nil {
		t.Fatalf("Format() returned an error: %v", err)
	}

	s := string(b)
	if strings.Contains(s, "Bearer x") {
		t.Errorf("expected header to be masked: %s", s)
	}
	if !strings.Contains(s, `"accept":"json"`) {
		t.Errorf("expected unmasked header to remain: %s", s)
	}
}
