package internal

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	level, ok := ParseLogLevel("debug")
	if !ok || level != LogLevelDebug {
		t.Errorf("ParseLogLevel(debug) = %v, %v", level, ok)
	}

	level, ok = ParseLogLevel("chatty")
	if ok || level != LogLevelInfo {
		t.Errorf("ParseLogLevel(chatty) = %v, %v; want info, false", level, ok)
	}
}

func TestLogger_FiltersByLevelAndTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelWarn, &buf).Named("methods").Named("weibull")

	logger.Info("hidden %d", 1)
	logger.Warn("fell back after %d iterations", 100)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info line should be filtered at WARN level: %q", out)
	}
	if !strings.Contains(out, "[WARN] methods.weibull: fell back after 100 iterations") {
		t.Errorf("Missing tagged warning in %q", out)
	}
}

// TestNilLoggerIsSilent tests that a nil logger and its children drop output
func TestNilLoggerIsSilent(t *testing.T) {
	var l *Logger
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("nil logger panicked: %v", r)
		}
	}()
	l.Error("nothing")
	l.Named("x").Warn("dropped %d", 1)
}
