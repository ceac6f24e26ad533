package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	buildOnce  sync.Once
	binaryPath string
	buildErr   error
)

// CLIResult represents the result of running a CLI command.
type CLIResult struct {
	OK       bool
	Data     interface{}
	Error    *CLIError
	Meta     *CLIMeta
	RawJSON  string
	Stderr   string
	ExitCode int
}

// CLIError is the error part of the JSON envelope.
type CLIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CLIMeta is the meta part of the JSON envelope.
type CLIMeta struct {
	Count int `json:"count"`
}

// BuildCLI compiles ./cmd/dotadr once per test process and returns the
// binary path.
func BuildCLI(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		binaryPath, buildErr = buildBinary()
	})
	if buildErr != nil {
		t.Fatalf("failed to build CLI: %v", buildErr)
	}
	return binaryPath
}

func buildBinary() (string, error) {
	root, err := moduleRoot()
	if err != nil {
		return "", err
	}
	tmpDir, err := os.MkdirTemp("", "dotadr-cli-bin-*")
	if err != nil {
		return "", err
	}

	name := "dotadr"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	bin := filepath.Join(tmpDir, name)

	cmd := exec.Command("go", "build", "-o", bin, "./cmd/dotadr")
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %w\n%s", err, out)
	}
	return bin, nil
}

// moduleRoot walks up from the working directory to the go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// RunCLI runs dotadr in the workspace with --json and the workspace's
// config and settings files, and parses the envelope.
func (w *Workspace) RunCLI(args ...string) *CLIResult {
	w.t.Helper()
	binary := BuildCLI(w.t)

	cmdArgs := []string{"--json", "--config", w.ConfigPath(), "--settings", w.SettingsPath()}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.Command(binary, cmdArgs...)
	cmd.Dir = w.Path
	cmd.Env = cleanEnv()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	result := &CLIResult{
		RawJSON: stdout.String(),
		Stderr:  stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	result.parse(stdout.Bytes())
	return result
}

func (r *CLIResult) parse(out []byte) {
	var resp struct {
		OK    bool        `json:"ok"`
		Data  interface{} `json:"data"`
		Error *CLIError   `json:"error"`
		Meta  *CLIMeta    `json:"meta"`
	}
	if err := json.Unmarshal(out, &resp); err != nil {
		r.OK = false
		r.Error = &CLIError{Code: "PARSE_ERROR", Message: "invalid JSON output: " + err.Error()}
		return
	}
	r.OK, r.Data, r.Error, r.Meta = resp.OK, resp.Data, resp.Error, resp.Meta
}

// cleanEnv drops DOTADR_* variables so the caller's environment cannot leak
// into a test run.
func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "DOTADR_") || strings.HasPrefix(kv, "EDITOR=") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

// MustSucceed fails the test if the CLI command did not succeed.
func (r *CLIResult) MustSucceed(t *testing.T) *CLIResult {
	t.Helper()
	if !r.OK {
		errMsg := "unknown error"
		if r.Error != nil {
			errMsg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("expected command to succeed, got error: %s\nRaw output: %s\nStderr: %s", errMsg, r.RawJSON, r.Stderr)
	}
	if r.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", r.ExitCode)
	}
	return r
}

// MustFail fails the test if the CLI command did not fail with the expected
// code and exit status 1.
func (r *CLIResult) MustFail(t *testing.T, expectedCode string) *CLIResult {
	t.Helper()
	if r.OK {
		t.Fatalf("expected command to fail with code %s, but it succeeded\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error == nil {
		t.Fatalf("expected error with code %s, but error is nil\nRaw output: %s", expectedCode, r.RawJSON)
	}
	if r.Error.Code != expectedCode {
		t.Fatalf("expected error code %s, got %s: %s\nRaw output: %s", expectedCode, r.Error.Code, r.Error.Message, r.RawJSON)
	}
	if r.ExitCode != 1 {
		t.Fatalf("exit code = %d, want 1", r.ExitCode)
	}
	return r
}

// DataList returns Data as a list.
func (r *CLIResult) DataList() []interface{} {
	list, _ := r.Data.([]interface{})
	return list
}

// DataString extracts a string field from an object Data.
func (r *CLIResult) DataString(key string) string {
	m, ok := r.Data.(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// DataBool extracts a bool field from an object Data.
func (r *CLIResult) DataBool(key string) bool {
	m, ok := r.Data.(map[string]interface{})
	if !ok {
		return false
	}
	b, _ := m[key].(bool)
	return b
}
