package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	cmd.AddCommand(newConfigShowCommand(rootOpts))
	return cmd
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long: `Show the effective configuration after merging defaults, config file,
and environment variables. Passwords and DSNs are masked.`,
		Example: `  # Show effective configuration
  sqlb config show

  # Show configuration with source file path
  sqlb config show --source`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.ensurePrepared(cmd); err != nil {
				return err
			}
			formatter := rootOpts.formatter(cmd)
			shown := rootOpts.Config.Redacted()

			if formatter.Format == "json" {
				return formatter.Success(map[string]any{
					"config_file": rootOpts.ConfigFile,
					"config":      shown,
				})
			}

			if showSource {
				if rootOpts.ConfigFile != "" {
					fmt.Fprintf(formatter.Writer, "Config file: %s\n\n", rootOpts.ConfigFile)
				} else {
					fmt.Fprint(formatter.Writer, "Config file: (none, using defaults)\n\n")
				}
			}

			out, err := yaml.Marshal(shown)
			if err != nil {
				return err
			}
			fmt.Fprint(formatter.Writer, string(out))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "show config file source")
	return cmd
}
