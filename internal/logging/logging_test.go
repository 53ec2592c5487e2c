package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", "text", &buf)

	logger.Info("job fired", "job_id", "scan-1")

	output := buf.String()
	if !strings.Contains(output, "job fired") {
		t.Errorf("expected 'job fired' in output, got: %s", output)
	}
	if !strings.Contains(output, "job_id=scan-1") {
		t.Errorf("expected 'job_id=scan-1' in output, got: %s", output)
	}
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", "json", &buf)

	logger.Info("job fired", "job_id", "scan-1")

	output := buf.String()
	if !strings.Contains(output, `"msg":"job fired"`) {
		t.Errorf("expected JSON msg field in output, got: %s", output)
	}
	if !strings.Contains(output, `"job_id":"scan-1"`) {
		t.Errorf("expected JSON job_id field in output, got: %s", output)
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("warn", "text", &buf)

	logger.Info("should not appear")
	logger.Warn("should appear")

	output := buf.String()
	if strings.Contains(output, "should not appear") {
		t.Errorf("INFO message should be filtered at WARN level, got: %s", output)
	}
	if !strings.Contains(output, "should appear") {
		t.Errorf("WARN message should appear at WARN level, got: %s", output)
	}
}

func TestNewWithWriter_ComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("debug", "text", &buf)
	child := logger.With("component", "engine")

	child.Debug("firing", "job_id", "agent-sync")

	output := buf.String()
	if !strings.Contains(output, "component=engine") {
		t.Errorf("expected component in output, got: %s", output)
	}
	if !strings.Contains(output, "job_id=agent-sync") {
		t.Errorf("expected job_id in output, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
