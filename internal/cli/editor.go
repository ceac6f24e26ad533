package cli

import (
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aidanlsb/dotadr/internal/shellquote"
	"github.com/aidanlsb/dotadr/internal/ui"
)

// openInEditor launches editor on path without waiting for it. It reports
// whether the editor was started; nothing is launched when stdout is not
// a terminal.
func openInEditor(editor, path string) bool {
	editor = strings.TrimSpace(editor)
	if editor == "" || !ui.IsTerminal(os.Stdout) {
		return false
	}

	cmd := editorCommand(editor, path)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Start(); err != nil {
		logger.Warn("failed to open editor", slog.String("editor", editor), slog.Any("error", err))
		return false
	}
	logger.Debug("editor started", slog.String("editor", editor), slog.String("path", path))
	return true
}

// editorCommand builds the command for editor. Editors with arguments, such
// as "code --wait", run through the shell.
func editorCommand(editor, path string) *exec.Cmd {
	if !strings.Contains(editor, " ") {
		return exec.Command(editor, path)
	}
	if runtime.GOOS == "windows" {
		return exec.Command("cmd", "/C", editor+` "`+path+`"`)
	}
	return exec.Command("sh", "-c", editor+" "+shellquote.Quote(path))
}
