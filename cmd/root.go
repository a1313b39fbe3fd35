/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/vidlist/internal/generator"
	"github.com/fulmenhq/vidlist/pkg/buildinfo"
	"github.com/fulmenhq/vidlist/pkg/catalog"
	"github.com/fulmenhq/vidlist/pkg/config"
	"github.com/fulmenhq/vidlist/pkg/exitcode"
	"github.com/fulmenhq/vidlist/pkg/logger"
	"github.com/fulmenhq/vidlist/pkg/splice"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vidlist",
		Short: "Generate the demo page video list from a directory of model outputs",
		Long: `Vidlist scans a demo root laid out as <root>/<model>/<video>, matches prompt
assets by file name, and rewrites the auto-generated block of a JavaScript file
between two marker comments.

Examples:
   vidlist generate                       # Scan demo_all/ and update script.js
   vidlist generate --id-file ids.csv     # Use the first column of ids.csv as video IDs
   vidlist list --format json             # Show the entries without writing
   vidlist verify                         # Fail when script.js is out of date
   vidlist version --extended             # Show build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().Bool("no-op", false, "Compute everything without writing files")
	cmd.PersistentFlags().String("config", "", "Config file (default .vidlist.yaml in the working directory)")

	// Wire Cobra's built-in --version using the binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("vidlist {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newVerifyCommand())
	cmd.AddCommand(newVersionCommand())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		code := exitCodeFor(err)
		logger.Error("Command execution failed", logger.Err(err), logger.String("reason", exitcode.String(code)))
		os.Exit(code)
	}
}

func init() {
	// Register all subcommands with the production rootCmd
	registerSubcommands(rootCmd)
}

// exitCodeFor classifies an error returned by a command.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, generator.ErrStale):
		return exitcode.ValidationError
	case errors.Is(err, config.ErrInvalid),
		errors.Is(err, splice.ErrMarkersNotFound),
		errors.Is(err, splice.ErrNotText):
		return exitcode.ConfigError
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return exitcode.FileSystemError
	default:
		return exitcode.GeneralError
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")
	noOp, _ := cmd.Flags().GetBool("no-op")

	cfg := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "vidlist",
		NoOp:      noOp,
	}

	if err := logger.Initialize(cfg); err != nil {
		// Fallback to stderr
		_, _ = os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(exitcode.ConfigError)
	}
}

// loadConfig resolves configuration for a command, binding its explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{ConfigFile: path, Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		logger.Debug("Using config file", logger.String("file", cfg.File))
	}
	return cfg, nil
}

// addPipelineFlags registers the flags shared by generate, list and verify.
// Defaults are shown for help only; unset flags never override configuration.
func addPipelineFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("id-file", "", "Text file whose first comma-separated column lists video IDs")
	f.String("root", config.DefaultRoot, "Demo root laid out as <root>/<model>/<video>")
	f.String("script", config.DefaultScript, "JavaScript file holding the video list markers")
	f.StringSlice("models", nil, "Model directories to include (default: every subdirectory of root)")
	f.String("public-prefix", "", "Prefix for src paths (default: root with forward slashes)")
	f.String("asset-root", config.DefaultAssetRoot, "Directory searched for prompt images and text")
	f.String("ext", config.DefaultExtension, "Video file extension used when scanning")
	f.StringSlice("exclude", nil, "Gitignore-style patterns excluded from scanning")
}
