package log

import (
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat(" JSON "); got != FormatJSON {
		t.Errorf("got %v", got)
	}

	if got := ParseFormat("yaml"); got != DefaultFormat {
		t.Errorf("got %v", got)
	}
}

func TestLevelFiltering(t *testing.T) {
	var sb strings.Builder

	l := Make(&sb, WithLevel(LevelWarn), WithPretty(false))

	l.Debug("too quiet")
	l.Info("still too quiet")
	l.Warn("heard")
	l.Error("also heard")

	out := sb.String()

	if strings.Contains(out, "quiet") {
		t.Fatalf("filtered message leaked:\n%s", out)
	}

	for _, want := range []string{"heard", "also heard"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	var sb strings.Builder

	l := Make(&sb, WithFormat(FormatJSON), WithTimeLayout(""))
	l.Info("structured", slog.String("key", "value"))

	var entry map[string]any
	if err := json.Unmarshal([]byte(sb.String()), &entry); err != nil {
		t.Fatalf("not JSON: %v\n%s", err, sb.String())
	}

	if entry["msg"] != "structured" || entry["key"] != "value" {
		t.Fatalf("entry = %v", entry)
	}

	// The empty layout suppresses the timestamp.
	if _, ok := entry["time"]; ok {
		t.Fatalf("timestamp present: %v", entry)
	}
}

func TestPrettyOutput(t *testing.T) {
	var sb strings.Builder

	l := Make(&sb, WithPretty(true), WithTimeLayout(""))
	l.Warn("watch out", slog.Int("n", 3))

	out := sb.String()

	// The key and value straddle color escapes, so match them separately.
	for _, want := range []string{"WARN", "watch out", "n", "=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q:\n%s", want, out)
		}
	}
}

func TestWrapOverrides(t *testing.T) {
	var first, second strings.Builder

	l := Make(&first, WithLevel(LevelError))
	w := l.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	if l.Level() != LevelError || w.Level() != LevelDebug {
		t.Fatalf("levels = %v, %v", l.Level(), w.Level())
	}

	w.Debug("derived")

	if first.Len() != 0 {
		t.Fatalf("original writer received output: %q", first.String())
	}

	if !strings.Contains(second.String(), "derived") {
		t.Fatalf("derived writer missing output: %q", second.String())
	}
}

func TestZeroLoggerDiscards(t *testing.T) {
	var l Logger

	// Must not panic.
	l.Info("nowhere")

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Fatalf("zero logger reports %v, %v", l.Level(), l.Format())
	}
}

func TestWithAttrs(t *testing.T) {
	var sb strings.Builder

	l := Make(&sb, WithPretty(false)).With(slog.String("pkg", "vars"))
	l.Info("tagged")

	if !strings.Contains(sb.String(), "pkg=vars") {
		t.Fatalf("attr missing: %q", sb.String())
	}
}
