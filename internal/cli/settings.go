package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/dotadr/internal/adrerr"
	"github.com/aidanlsb/dotadr/internal/config"
	"github.com/aidanlsb/dotadr/internal/ui"
)

var (
	settingsSetDirectory string
	settingsSetSlugStyle string
	settingsSetEditor    string
	settingsSetLogLevel  string
)

type settingsView struct {
	Path             string `json:"path"`
	DefaultDirectory string `json:"default_directory"`
	SlugStyle        string `json:"slug_style"`
	Editor           string `json:"editor"`
	LogLevel         string `json:"log_level"`
}

func currentSettingsView() settingsView {
	level := settings.LogLevel
	if level == "" {
		level = "warn"
	}
	return settingsView{
		Path:             resolvedSettingsPath(),
		DefaultDirectory: settings.Directory(),
		SlugStyle:        string(settings.Slugs()),
		Editor:           settings.GetEditor(),
		LogLevel:         level,
	}
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage user settings (config.toml)",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		view := currentSettingsView()
		if isJSONOutput() {
			outputSuccess(view, nil)
			return nil
		}
		fmt.Printf("%s %s\n", ui.Bold.Render("settings:"), ui.FilePath(view.Path))
		fmt.Printf("  default_directory = %s\n", view.DefaultDirectory)
		fmt.Printf("  slug_style        = %s\n", view.SlugStyle)
		fmt.Printf("  editor            = %s\n", orNone(view.Editor))
		fmt.Printf("  log_level         = %s\n", view.LogLevel)
		return nil
	},
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented settings file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolvedSettingsPath()
		created, err := config.CreateDefaultSettings(path)
		if err != nil {
			return err
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "created": created}, nil)
			return nil
		}
		if created {
			fmt.Println(ui.Successf("Created %s", ui.FilePath(path)))
		} else {
			fmt.Println(ui.Skippedf("Kept existing %s", ui.FilePath(path)))
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update settings values",
	Long: `Updates one or more settings. Pass an empty value to clear one.

Examples:
  dotadr settings set --slug-style ascii
  dotadr settings set --editor "code --wait" --log-level info`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		updated := *settings
		changed := 0
		apply := func(flag string, dst *string, value string) {
			if cmd.Flags().Changed(flag) {
				*dst = strings.TrimSpace(value)
				changed++
			}
		}
		apply("default-directory", &updated.DefaultDirectory, settingsSetDirectory)
		apply("slug-style", &updated.SlugStyle, strings.ToLower(settingsSetSlugStyle))
		apply("editor", &updated.Editor, settingsSetEditor)
		apply("log-level", &updated.LogLevel, strings.ToLower(settingsSetLogLevel))
		if changed == 0 {
			return adrerr.New(adrerr.KindInvalidState, adrerr.CodeInvalidInput, "no settings given; see 'dotadr settings set --help'")
		}

		if err := config.SaveSettings(resolvedSettingsPath(), &updated); err != nil {
			return err
		}
		settings = &updated

		view := currentSettingsView()
		if isJSONOutput() {
			outputSuccess(view, nil)
			return nil
		}
		fmt.Println(ui.Successf("Updated %s", ui.FilePath(view.Path)))
		return nil
	},
}

func orNone(s string) string {
	if s == "" {
		return ui.Hint("(none)")
	}
	return s
}

func init() {
	settingsSetCmd.Flags().StringVar(&settingsSetDirectory, "default-directory", "", "Directory used by 'dotadr init'")
	settingsSetCmd.Flags().StringVar(&settingsSetSlugStyle, "slug-style", "", "File name slugs: conservative or ascii")
	settingsSetCmd.Flags().StringVar(&settingsSetEditor, "editor", "", "Editor for 'dotadr add --open'")
	settingsSetCmd.Flags().StringVar(&settingsSetLogLevel, "log-level", "", "Log level without --debug: debug, info, warn, error")

	settingsCmd.AddCommand(settingsShowCmd, settingsInitCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
