package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/dotadr/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List decision records",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configured, dir, err := loadDirectory()
		if err != nil {
			return err
		}

		summaries, err := newRepository().List(dir)
		if err != nil {
			return err
		}

		if isJSONOutput() {
			outputSuccess(summaries, &Meta{Count: len(summaries)})
			return nil
		}

		if len(summaries) == 0 {
			fmt.Println(ui.Hint(fmt.Sprintf("No decision records in %s", configured)))
			return nil
		}
		ui.WriteRecordTable(os.Stdout, summaries, ui.NewDisplayContext().TermWidth)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
