package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/sqlb/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is loaded before any subcommand runs. ConfigFile is the file
	// it was read from, empty when only defaults and env applied.
	Config     *config.Config
	ConfigFile string

	// TraceID identifies one invocation in logs and JSON output.
	TraceID string

	// NewTraceID allows overriding the trace id generator (for testing).
	// If nil, a UUIDv7 is used.
	NewTraceID func() string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sqlb CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command around opts.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sqlb",
		Short: "sqlb - immutable SQL statement builder",
		Long: `Render and run SELECT, INSERT, UPDATE and DELETE statements described
in YAML or CUE files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to sqlb.yaml (default: discovered from the working directory)")

	// Add subcommands
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// prepare loads configuration, settles the output format and installs the
// default logger.
func (o *RootOptions) prepare(cmd *cobra.Command) error {
	cfg, path, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, ErrCodeConfig+": failed to load config", err)
	}
	o.Config = cfg
	o.ConfigFile = path

	// The flag wins over the config file only when given explicitly.
	if f := cmd.Flags().Lookup("format"); (f != nil && !f.Changed) || o.Format == "" {
		o.Format = cfg.Output.Format
	}
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	newID := o.NewTraceID
	if newID == nil {
		newID = func() string { return uuid.Must(uuid.NewV7()).String() }
	}
	o.TraceID = newID()

	configureLogging(cmd.ErrOrStderr(), o.Verbose)
	slog.Debug("configuration loaded", "config_file", path, "driver", cfg.Database.Driver, "trace_id", o.TraceID)
	return nil
}

// ensurePrepared runs prepare when the command was executed without the
// root command's pre-run hook.
func (o *RootOptions) ensurePrepared(cmd *cobra.Command) error {
	if o.Config != nil {
		return nil
	}
	return o.prepare(cmd)
}

// formatter builds the OutputFormatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		TraceID:   o.TraceID,
	}
}

// configureLogging installs a text handler on w: debug level when verbose,
// warnings only otherwise.
func configureLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
