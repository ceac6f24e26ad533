// Package cli implements the dotadr command-line interface.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aidanlsb/dotadr/internal/adrerr"
	"github.com/aidanlsb/dotadr/internal/config"
	"github.com/aidanlsb/dotadr/internal/dates"
	"github.com/aidanlsb/dotadr/internal/logging"
	"github.com/aidanlsb/dotadr/internal/record"
	"github.com/aidanlsb/dotadr/internal/ui"
)

const envPrefix = "DOTADR"

var (
	// Global flags
	configPathFlag   string
	settingsPathFlag string
	debugFlag        bool
	logFileFlag      string

	// Resolved per invocation
	settings    *config.Settings
	logger      = logging.Discard()
	closeLogger = func() error { return nil }

	// clock stamps new records; tests pin it.
	clock dates.Clock = dates.SystemClock

	env = viper.New()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dotadr",
	Short: "dotadr - manage Architectural Decision Records",
	Long: `dotadr keeps Architectural Decision Records as numbered markdown files
next to your code.

Run 'dotadr init' once to create the ADR directory, then 'dotadr add <title>'
for every decision. Use --supersedes to mark an older decision as replaced.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	// Validated here rather than by cobra so flags such as --json are parsed
	// before the error is reported.
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return adrerr.New(adrerr.KindUnsupported, adrerr.CodeUnsupportedCommand,
				"unsupported command %q", args[0])
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "dotadr", "completion", "help", "version":
			return nil
		}
		return setup()
	},
}

// setup resolves settings and the logger for the current invocation.
func setup() error {
	var err error
	settings, err = config.LoadSettings(resolvedSettingsPath())
	if err != nil {
		return err
	}

	level := settings.LogLevel
	if l := env.GetString("log_level"); l != "" {
		level = l
	}
	l, closer, err := logging.New(logging.Options{
		Debug: env.GetBool("debug"),
		Level: level,
		File:  env.GetString("logfile"),
	})
	if err != nil {
		return adrerr.Wrap(err, adrerr.KindInvalidState, adrerr.CodeInvalidInput, "cannot set up logging")
	}
	logger, closeLogger = l, closer
	logger.Debug("settings loaded", slog.String("path", resolvedSettingsPath()))
	return nil
}

// Execute runs the CLI with the process arguments and returns the exit code.
func Execute() int {
	return run(os.Args[1:])
}

func run(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	if closeErr := closeLogger(); closeErr != nil {
		fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("failed to close log file: %v", closeErr)))
	}
	logger, closeLogger = logging.Discard(), func() error { return nil }
	return adrerr.ExitCode(err)
}

// reportError is the single place a failed command is printed.
func reportError(err error) {
	err = classify(err)
	code := adrerr.CodeOf(err)
	logger.Error("command failed",
		slog.String("code", code),
		slog.String("kind", adrerr.KindOf(err).String()),
		slog.Any("error", err))

	if isJSONOutput() {
		outputError(code, err.Error(), nil, suggestionFor(code))
		return
	}
	fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	if s := suggestionFor(code); s != "" {
		fmt.Fprintln(os.Stderr, ui.Hint(s))
	}
}

// classify turns cobra's plain errors into domain errors.
func classify(err error) error {
	if _, ok := adrerr.As(err); ok {
		return err
	}
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown command"):
		return adrerr.Wrap(errors.New(msg), adrerr.KindUnsupported, adrerr.CodeUnsupportedCommand,
			"unsupported command")
	case strings.HasPrefix(msg, "unknown flag"),
		strings.HasPrefix(msg, "unknown shorthand flag"),
		strings.HasPrefix(msg, "flag needs an argument"),
		strings.HasPrefix(msg, "invalid argument"),
		strings.Contains(msg, "arg(s)"):
		return adrerr.New(adrerr.KindInvalidState, adrerr.CodeInvalidInput, "%s", msg)
	}
	return err
}

func suggestionFor(code string) string {
	switch code {
	case adrerr.CodeConfigMissing:
		return "Run 'dotadr init' to create it"
	case adrerr.CodeDirectoryNotFound, adrerr.CodeTemplateNotFound:
		return "Run 'dotadr init' to initialize the ADR directory"
	case adrerr.CodeSupersededNotFound, adrerr.CodeRecordNotFound:
		return "Run 'dotadr list' to see existing records"
	case adrerr.CodeDirectoryLocked:
		return "Another dotadr command is writing to this directory"
	case adrerr.CodeUnsupportedCommand:
		return "Run 'dotadr --help' for the list of commands"
	}
	return ""
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPathFlag, "config", config.DefaultPath, "Path to the dotadr.json configuration file")
	flags.StringVar(&settingsPathFlag, "settings", "", "Path to the user settings file (default ~/.config/dotadr/config.toml)")
	flags.BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	flags.StringVar(&logFileFlag, "logfile", "", "Write logs to this file instead of stderr")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripts)")

	for _, name := range []string{"config", "settings", "debug", "logfile", "json"} {
		_ = env.BindPFlag(name, flags.Lookup(name))
	}
	env.SetEnvPrefix(envPrefix)
	env.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	env.AutomaticEnv()
}

func resolvedConfigPath() string {
	if p := strings.TrimSpace(env.GetString("config")); p != "" {
		return p
	}
	return config.DefaultPath
}

func resolvedSettingsPath() string {
	if p := strings.TrimSpace(env.GetString("settings")); p != "" {
		return p
	}
	return config.DefaultSettingsPath()
}

func newStore() *config.Store {
	return config.NewStore(resolvedConfigPath(), logger)
}

func newRepository() *record.Repository {
	return record.NewRepository(
		record.WithLogger(logger),
		record.WithSlugStyle(settings.Slugs()),
	)
}

func newFactory() *record.Factory {
	return record.NewFactory(clock)
}

// loadDirectory reads the configuration and returns the ADR directory both as
// configured and as a usable path.
func loadDirectory() (configured, resolved string, err error) {
	store := newStore()
	cfg, err := store.Load()
	if err != nil {
		return "", "", err
	}
	return cfg.Directory, store.ResolveDirectory(cfg), nil
}
