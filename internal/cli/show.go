package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/dotadr/internal/ui"
)

var showRaw bool

type showResult struct {
	ID      string `json:"id"`
	File    string `json:"file"`
	Path    string `json:"path"`
	Content string `json:"content"`
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a decision record",
	Long: `Prints the first record whose file name starts with <id>.

On a terminal the markdown is rendered; piped output and --raw print the
file as stored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, dir, err := loadDirectory()
		if err != nil {
			return err
		}

		rec, err := newRepository().Find(args[0], dir)
		if err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(showResult{
				ID:      rec.ID,
				File:    rec.FileName,
				Path:    rec.Path,
				Content: rec.Content,
			}, nil)
			return nil
		}

		display := ui.NewDisplayContext()
		if showRaw || !display.IsTTY {
			fmt.Print(rec.Content)
			return nil
		}

		rendered, err := ui.RenderMarkdown(rec.Content, display.TermWidth)
		if err != nil {
			logger.Warn("markdown rendering failed, printing raw", slog.Any("error", err))
			fmt.Print(rec.Content)
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the file without rendering")
	rootCmd.AddCommand(showCmd)
}
