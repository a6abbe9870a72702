package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlb/internal/script"
)

// RenderedStatement is one statement in render and validate output.
type RenderedStatement struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Table string `json:"table"`
	SQL   string `json:"sql"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Print the SQL for every statement in a description file",
		Long: `Render the statements described in a YAML or CUE file as SQL text.

Nothing is sent to a database.

Example:
  sqlb render ./queries/ranking.yaml
  sqlb render --format json ./queries/ranking.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.ensurePrepared(cmd); err != nil {
				return err
			}
			return runRender(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRender(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	compiled, err := loadStatements(formatter, path)
	if err != nil {
		return err
	}

	rendered := make([]RenderedStatement, 0, len(compiled))
	for _, c := range compiled {
		r, err := renderStatement(c)
		if err != nil {
			msg := fmt.Sprintf("%s: %v", c.Name, err)
			_ = formatter.Error(ErrCodeRenderFailed, msg, map[string]string{"statement": c.Name})
			return WrapExitError(ExitFailure, ErrCodeRenderFailed+": render failed", err)
		}
		rendered = append(rendered, r)
	}

	if formatter.Format == "json" {
		return formatter.Success(rendered)
	}
	fmt.Fprint(formatter.Writer, formatRendered(rendered))
	return nil
}

// loadStatements reads and builds a description file, reporting failures
// through formatter as command errors.
func loadStatements(formatter *OutputFormatter, path string) ([]script.Compiled, error) {
	f, err := script.LoadFile(path)
	if err != nil {
		return nil, outputCommandError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d statement(s) from %s", len(f.Statements), path)

	compiled, err := f.Build()
	if err != nil {
		return nil, outputCommandError(formatter, err)
	}
	return compiled, nil
}

// outputCommandError reports a load or build failure (exit code 2).
func outputCommandError(formatter *OutputFormatter, err error) error {
	code := loadErrorCode(err)
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, code, err)
}

func renderStatement(c script.Compiled) (RenderedStatement, error) {
	sql, err := c.Statement.ToSQL()
	if err != nil {
		return RenderedStatement{}, err
	}
	return RenderedStatement{
		Name:  c.Name,
		Kind:  string(c.Statement.Kind()),
		Table: c.Statement.Table(),
		SQL:   sql,
	}, nil
}

// formatRendered lays statements out as an SQL script with a comment
// naming each one.
func formatRendered(rs []RenderedStatement) string {
	var b strings.Builder
	for i, r := range rs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "-- %s\n%s\n", r.Name, r.SQL)
	}
	return b.String()
}
