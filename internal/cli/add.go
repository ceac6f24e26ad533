package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/dotadr/internal/adrerr"
	"github.com/aidanlsb/dotadr/internal/record"
	"github.com/aidanlsb/dotadr/internal/ui"
)

var (
	addSupersedes string
	addOpen       bool
)

type addResult struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	File       string          `json:"file"`
	Path       string          `json:"path"`
	Directory  string          `json:"directory"`
	Superseded *supersededInfo `json:"superseded,omitempty"`
	Opened     bool            `json:"opened"`
}

type supersededInfo struct {
	ID   string `json:"id"`
	File string `json:"file"`
}

var addCmd = &cobra.Command{
	Use:     "add <title>",
	Aliases: []string{"new"},
	Short:   "Add a new decision record",
	Long: `Creates the next numbered decision record from the directory's template.md.

With --supersedes, the first record whose file name starts with the given id
is linked from the new record, and its Status line is marked as superseded.

Examples:
  dotadr add "Use PostgreSQL for persistence"
  dotadr add Use SQLite instead --supersedes 002
  dotadr new "Adopt gRPC" --open`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			return adrerr.New(adrerr.KindInvalidState, adrerr.CodeInvalidInput, "a title is required")
		}

		configured, dir, err := loadDirectory()
		if err != nil {
			return err
		}

		res, err := addRecord(dir, title, addSupersedes)
		if err != nil {
			return err
		}
		res.Directory = configured

		if addOpen && !isJSONOutput() {
			res.Opened = openInEditor(settings.GetEditor(), res.Path)
		}

		if isJSONOutput() {
			outputSuccess(res, nil)
			return nil
		}

		fmt.Println(ui.Successf("%s added to the %s directory", ui.FilePath(res.File), ui.FilePath(configured)))
		if res.Superseded != nil {
			fmt.Println(ui.Successf("%s marked as superseded", ui.FilePath(res.Superseded.File)))
		}
		if addOpen && !res.Opened {
			fmt.Println(ui.Hint("Set 'editor' in the settings file or $EDITOR to open records automatically"))
		}
		return nil
	},
}

// addRecord runs the add lifecycle under the directory lock.
func addRecord(dir, title, supersedes string) (*addResult, error) {
	repo := newRepository()
	factory := newFactory()

	unlock, err := repo.Lock(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.Warn("failed to release directory lock", slog.Any("error", err))
		}
	}()

	template, err := repo.Template(dir)
	if err != nil {
		return nil, err
	}
	id, err := repo.NextID(dir)
	if err != nil {
		return nil, err
	}

	var superseded *record.SupersededDecisionRecord
	if strings.TrimSpace(supersedes) != "" {
		superseded, err = repo.FindSuperseded(supersedes, dir)
		if err != nil {
			return nil, err
		}
	}

	rec := factory.CreateRecord(template, id, title, superseded)
	name, err := repo.AddRecord(dir, rec)
	if err != nil {
		return nil, err
	}
	logger.Info("record added", slog.String("id", id), slog.String("file", name))

	res := &addResult{
		ID:    rec.ID,
		Title: rec.Title,
		File:  name,
		Path:  filepath.Join(dir, name),
	}
	if superseded == nil {
		return res, nil
	}

	patched := factory.PatchSupersededContent(superseded, rec, name)
	if err := repo.SaveSuperseded(dir, superseded, patched); err != nil {
		return nil, err
	}
	logger.Info("record superseded", slog.String("file", superseded.FileName), slog.String("by", name))
	res.Superseded = &supersededInfo{ID: superseded.ID, File: superseded.FileName}
	return res, nil
}

func init() {
	addCmd.Flags().StringVarP(&addSupersedes, "supersedes", "s", "", "Id (or id prefix) of the record this decision supersedes")
	addCmd.Flags().BoolVar(&addOpen, "open", false, "Open the new record in your editor")
	rootCmd.AddCommand(addCmd)
}
