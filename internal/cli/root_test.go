package cli

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/aidanlsb/dotadr/internal/adrerr"
)

func TestUnknownCommandIsUnsupported(t *testing.T) {
	p := newProject(t)
	p.mustFail(t, "UNSUPPORTED_COMMAND", "frobnicate")
}

func TestUnknownFlagIsInvalidInput(t *testing.T) {
	p := newProject(t)
	p.mustFail(t, "INVALID_INPUT", "add", "Title", "--nope")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{errors.New(`unknown command "x" for "dotadr"`), adrerr.CodeUnsupportedCommand},
		{errors.New("unknown flag: --nope"), adrerr.CodeInvalidInput},
		{errors.New("accepts 1 arg(s), received 0"), adrerr.CodeInvalidInput},
		{errors.New("disk on fire"), adrerr.CodeInternal},
		{adrerr.NotFound(adrerr.CodeRecordNotFound, "gone"), adrerr.CodeRecordNotFound},
	}
	for _, tt := range tests {
		if got := adrerr.CodeOf(classify(tt.err)); got != tt.code {
			t.Errorf("classify(%q) code = %q, want %q", tt.err, got, tt.code)
		}
	}
}

func TestDebugLogFile(t *testing.T) {
	p := newProject(t)
	logPath := filepath.Join(p.root, "logs", "dotadr.log")

	p.mustRun(t, "--debug", "--logfile", logPath, "init")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"level":"DEBUG"`) || !strings.Contains(string(data), "save configuration") {
		t.Fatalf("log file lacks debug entries:\n%s", data)
	}
}

func TestErrorsAreLoggedToLogFile(t *testing.T) {
	p := newProject(t)
	logPath := filepath.Join(p.root, "dotadr.log")

	p.mustFail(t, "CONFIG_MISSING", "--logfile", logPath, "list")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"code":"CONFIG_MISSING"`) {
		t.Fatalf("log file lacks the failure:\n%s", data)
	}
}

func TestEditorCommand(t *testing.T) {
	cmd := editorCommand("vim", "/tmp/001-x.md")
	if got := strings.Join(cmd.Args, " "); got != "vim /tmp/001-x.md" {
		t.Fatalf("Args = %q", got)
	}

	if runtime.GOOS == "windows" {
		return
	}
	cmd = editorCommand("code --wait", "/tmp/it's.md")
	want := []string{"sh", "-c", `code --wait '/tmp/it'\''s.md'`}
	if strings.Join(cmd.Args, "|") != strings.Join(want, "|") {
		t.Fatalf("Args = %q, want %q", cmd.Args, want)
	}
}

func TestOpenInEditorSkipsWithoutTerminal(t *testing.T) {
	out := captureStdout(t, func() {
		if openInEditor("vim", "/tmp/x.md") {
			t.Error("editor launched while stdout is a pipe")
		}
	})
	if out != "" {
		t.Fatalf("unexpected output %q", out)
	}
}
