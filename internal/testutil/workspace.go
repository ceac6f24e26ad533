// Package testutil provides reusable helpers for dotadr integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Workspace is a temporary project directory that holds a dotadr.json and
// an ADR directory.
type Workspace struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewWorkspace creates a new workspace builder.
// Call Build() to create the actual directory.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return &Workspace{
		t:     t,
		files: make(map[string]string),
	}
}

// WithConfig writes a dotadr.json pointing at dir.
func (w *Workspace) WithConfig(dir string) *Workspace {
	w.files["dotadr.json"] = "{\n  \"directory\": \"" + dir + "\"\n}\n"
	return w
}

// WithFile adds a file relative to the workspace root.
func (w *Workspace) WithFile(path, content string) *Workspace {
	w.files[path] = content
	return w
}

// Build creates the workspace directory and all configured files.
func (w *Workspace) Build() *Workspace {
	w.t.Helper()
	w.Path = w.t.TempDir()
	for path, content := range w.files {
		w.writeFile(path, content)
	}
	return w
}

func (w *Workspace) writeFile(relPath, content string) {
	w.t.Helper()
	fullPath := filepath.Join(w.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		w.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		w.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ConfigPath is the workspace's dotadr.json.
func (w *Workspace) ConfigPath() string {
	return filepath.Join(w.Path, "dotadr.json")
}

// SettingsPath is a per-workspace settings file so tests never read the
// user's own settings.
func (w *Workspace) SettingsPath() string {
	return filepath.Join(w.Path, ".settings", "config.toml")
}

// ReadFile reads a file from the workspace.
func (w *Workspace) ReadFile(relPath string) string {
	w.t.Helper()
	fullPath := filepath.Join(w.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		w.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the workspace.
func (w *Workspace) FileExists(relPath string) bool {
	w.t.Helper()
	_, err := os.Stat(filepath.Join(w.Path, relPath))
	return err == nil
}

// RecordContent returns a minimal record in the default template's layout.
func RecordContent(id, title, status string) string {
	return "# " + id + " " + title + "\n\n* Status: " + status + "\n* Date: 2025-01-01 \n\n## Context\n\n## Decision\n\n## Consequences\n"
}
