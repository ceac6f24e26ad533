package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/dotadr/internal/dates"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

// resetFlags restores every flag in the command tree to its default so
// invocations within one test binary do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

type project struct {
	root     string
	config   string
	settings string
}

func newProject(t *testing.T) *project {
	t.Helper()
	root := t.TempDir()

	prevClock := clock
	clock = dates.Fixed(time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local))
	t.Cleanup(func() {
		clock = prevClock
		resetFlags(rootCmd)
	})

	return &project{
		root:     root,
		config:   filepath.Join(root, "dotadr.json"),
		settings: filepath.Join(root, "settings.toml"),
	}
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *ErrorInfo      `json:"error"`
	Meta  *Meta           `json:"meta"`
}

// run executes dotadr in-process with --json against the project.
func (p *project) run(t *testing.T, args ...string) (envelope, int) {
	t.Helper()
	resetFlags(rootCmd)

	full := append([]string{"--json", "--config", p.config, "--settings", p.settings}, args...)
	var code int
	out := captureStdout(t, func() {
		code = run(full)
	})

	var resp envelope
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, out)
	}
	return resp, code
}

func (p *project) mustRun(t *testing.T, args ...string) envelope {
	t.Helper()
	resp, code := p.run(t, args...)
	if !resp.OK || code != 0 {
		t.Fatalf("%v: ok=%v code=%d error=%+v", args, resp.OK, code, resp.Error)
	}
	return resp
}

func (p *project) mustFail(t *testing.T, wantCode string, args ...string) envelope {
	t.Helper()
	resp, code := p.run(t, args...)
	if resp.OK {
		t.Fatalf("%v: expected failure with %s, got ok", args, wantCode)
	}
	if code != 1 {
		t.Fatalf("%v: exit code = %d, want 1", args, code)
	}
	if resp.Error == nil || resp.Error.Code != wantCode {
		t.Fatalf("%v: error = %+v, want code %s", args, resp.Error, wantCode)
	}
	return resp
}

func (p *project) path(parts ...string) string {
	return filepath.Join(append([]string{p.root}, parts...)...)
}

func (p *project) read(t *testing.T, parts ...string) string {
	t.Helper()
	data, err := os.ReadFile(p.path(parts...))
	if err != nil {
		t.Fatalf("read %s: %v", filepath.Join(parts...), err)
	}
	return string(data)
}

func (p *project) write(t *testing.T, content string, parts ...string) {
	t.Helper()
	path := p.path(parts...)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode data: %v; data=%s", err, raw)
	}
	return v
}
