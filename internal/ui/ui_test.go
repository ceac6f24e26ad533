package ui

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/aidanlsb/dotadr/internal/record"
)

func TestStatusLines(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{Success("done"), "✓ done"},
		{Successf("%d written", 2), "✓ 2 written"},
		{Error("failed"), "✗ failed"},
		{Warning("careful"), "⚠ careful"},
		{Skippedf("kept %s", "x"), "• kept x"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestRenderMarkdownKeepsRecordText(t *testing.T) {
	content := "# 001 Use ADRs\n\n* Status: Draft\n* Date: 2025-03-14 \n\n## Context\n\nWe need a log.\n"

	out, err := RenderMarkdown(content, 80)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	plain := ansiEscape.ReplaceAllString(out, "")
	for _, want := range []string{"001 Use ADRs", "Status: Draft", "Context", "We need a log."} {
		if !strings.Contains(plain, want) {
			t.Errorf("rendered output missing %q:\n%s", want, plain)
		}
	}
	if strings.HasSuffix(out, "\n\n") {
		t.Errorf("rendered output should end with a single newline: %q", out)
	}
}

func TestRenderMarkdownDefaultsWidth(t *testing.T) {
	if _, err := RenderMarkdown("plain", 0); err != nil {
		t.Fatalf("RenderMarkdown with zero width: %v", err)
	}
}

func TestWriteRecordTable(t *testing.T) {
	var buf bytes.Buffer
	WriteRecordTable(&buf, []record.Summary{
		{ID: "001", Title: "Use ADRs", Status: "Accepted", Date: "2025-01-01", FileName: "001-use-adrs.md"},
		{ID: "002", Title: "Use PostgreSQL", Status: "Draft", Date: "2025-03-14", FileName: "002-use-postgresql.md"},
	}, 120)

	out := buf.String()
	for _, want := range []string{"ID", "TITLE", "STATUS", "001", "Use PostgreSQL", "002-use-postgresql.md"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if i, j := strings.Index(out, "001"), strings.Index(out, "002"); i > j {
		t.Errorf("rows out of order:\n%s", out)
	}
}

func TestIsTerminalNil(t *testing.T) {
	if IsTerminal(nil) {
		t.Fatal("IsTerminal(nil) = true")
	}
}
