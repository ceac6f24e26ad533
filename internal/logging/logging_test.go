package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", DefaultLevel},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("ParseLevel(\"verbose\") succeeded, want error")
	}
}

func TestNewDefaultsToWarnOnStderr(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Stderr: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()

	logger.Debug("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at default level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNewDebugOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Debug: true, Level: "error", Stderr: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closeFn()

	logger.Debug("detail", slog.String("directory", "./doc/adr"))
	if !strings.Contains(buf.String(), "directory=./doc/adr") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestNewWritesJSONToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dotadr.log")
	logger, closeFn, err := New(Options{Debug: true, File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("record added", slog.String("file", "002-next.md"))
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &line); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, data)
	}
	if line["msg"] != "record added" || line["file"] != "002-next.md" {
		t.Fatalf("unexpected log line: %v", line)
	}
}
