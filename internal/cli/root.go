package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that can stand in for flags,
// e.g. SEARCHQ_DIRECTORY or SEARCHQ_DB.
const EnvPrefix = "SEARCHQ"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "json" | "text"
	Directory string // directory snapshot file (.yaml, .yml, .json, .cue)
	DB        string // saved-search registry database
	Config    string // optional config file

	logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// configKeys are the persistent flags that viper may fill from the
// environment or a config file.
var configKeys = []string{"verbose", "format", "directory", "db", "config"}

// NewRootCommand creates the root command for the searchq CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "searchq",
		Short: "searchq - search query converter",
		Long: `Convert expense search queries between their string, tree, filter and
form representations, compute their stable hash, and keep a registry
of saved searches.

Flags may also be set through SEARCHQ_* environment variables or a
config file passed with --config.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, opts); err != nil {
				return err
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Directory, "directory", "d", "", "directory snapshot used to resolve names and ids")
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "", "saved-search registry database")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "config file (yaml, json or toml)")

	// Add subcommands
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewNormalizeCommand(opts))
	cmd.AddCommand(NewHashCommand(opts))
	cmd.AddCommand(NewDisplayCommand(opts))
	cmd.AddCommand(NewStandardizeCommand(opts))
	cmd.AddCommand(NewCannedCommand(opts))
	cmd.AddCommand(NewFormCommand(opts))
	cmd.AddCommand(NewSavedCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// loadConfig resolves the global options. An explicitly set flag wins over
// a SEARCHQ_* environment variable, which wins over the config file.
func loadConfig(cmd *cobra.Command, opts *RootOptions) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range configKeys {
		if flag := cmd.Flags().Lookup(key); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", key, err)
			}
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return WrapExitError(ExitCommandError, "failed to read config file", err)
		}
	}

	opts.Verbose = v.GetBool("verbose")
	opts.Format = v.GetString("format")
	opts.Directory = v.GetString("directory")
	opts.DB = v.GetString("db")
	opts.Config = v.GetString("config")
	return nil
}

// newLogger returns a text logger on w. Without verbose output, pipeline
// logs are dropped; failures reach the user through the OutputFormatter.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
