package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/dotadr/internal/record"
	"github.com/aidanlsb/dotadr/internal/ui"
)

var (
	initDirectory string
	initOverwrite bool
)

type initResult struct {
	Config            string `json:"config"`
	ConfigWritten     bool   `json:"config_written"`
	Directory         string `json:"directory"`
	DirectoryCreated  bool   `json:"directory_created"`
	TemplateWritten   bool   `json:"template_written"`
	InitialRecordFile string `json:"initial_record_file"`
	RecordWritten     bool   `json:"record_written"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ADR directory and the dotadr.json configuration",
	Long: `Creates dotadr.json pointing at the ADR directory, then creates the
directory with a template.md and a first record titled
"Use Architectural Decision Records".

Existing files are kept unless --overwrite is given, so running init
twice is harmless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		directory := strings.TrimSpace(initDirectory)
		if directory == "" {
			directory = settings.Directory()
		}

		store := newStore()
		written, err := store.Save(directory, initOverwrite)
		if err != nil {
			return err
		}

		// A kept configuration still decides where the records live.
		cfg, err := store.Load()
		if err != nil {
			return err
		}
		dir := store.ResolveDirectory(cfg)
		logger.Debug("initializing ADR directory",
			slog.String("configured", cfg.Directory),
			slog.String("path", dir))

		factory := newFactory()
		template := factory.Template()
		initial := factory.CreateRecord(template, record.FirstID, record.InitialTitle, nil)

		res, err := newRepository().InitializeDirectory(dir, template, initial, initOverwrite)
		if err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(initResult{
				Config:            store.Path(),
				ConfigWritten:     written,
				Directory:         cfg.Directory,
				DirectoryCreated:  res.DirectoryCreated,
				TemplateWritten:   res.TemplateWritten,
				InitialRecordFile: res.InitialRecordFile,
				RecordWritten:     res.RecordWritten,
			}, nil)
			return nil
		}

		if written {
			fmt.Println(ui.Successf("Wrote %s", ui.FilePath(store.Path())))
		} else {
			fmt.Println(ui.Skippedf("Kept existing %s", ui.FilePath(store.Path())))
		}
		if res.TemplateWritten {
			fmt.Println(ui.Successf("Wrote %s", ui.FilePath(filepath.Join(dir, record.TemplateFileName))))
		}
		if res.RecordWritten {
			fmt.Println(ui.Successf("Wrote %s", ui.FilePath(filepath.Join(dir, res.InitialRecordFile))))
		}
		fmt.Println(ui.Successf("ADR directory %s initialized", ui.FilePath(cfg.Directory)))
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initDirectory, "directory", "d", "", "ADR directory (default from settings, else ./doc/adr)")
	initCmd.Flags().BoolVarP(&initOverwrite, "overwrite", "o", false, "Overwrite existing configuration, template and first record")
	rootCmd.AddCommand(initCmd)
}
