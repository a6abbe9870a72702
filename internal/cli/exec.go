package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/sqlb/internal/builder"
	"github.com/roach88/sqlb/internal/exec"
	"github.com/roach88/sqlb/internal/store"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	Driver   string
	DSN      string
	Database string
}

// ExecResult is the outcome of one executed statement.
type ExecResult struct {
	Name    string           `json:"name"`
	Kind    string           `json:"kind"`
	SQL     string           `json:"sql"`
	Rows    []map[string]any `json:"rows,omitempty"`
	Summary *exec.Summary    `json:"summary,omitempty"`
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec <file>",
		Short: "Run every statement in a description file against a database",
		Long: `Run the statements described in a YAML or CUE file, in order.

Connection settings come from sqlb.yaml and SQLB_* environment variables;
the flags below override them. Execution stops at the first statement the
database rejects. No transaction is opened.

String values are written as double-quoted literals. On SQLite a
double-quoted value that equals a column name of the table is read as
that column, not as text, so such a comparison can match unexpected rows.

Example:
  sqlb exec --driver sqlite3 --db ./game.db ./queries/ranking.yaml
  SQLB_DATABASE_DSN='user:pass@tcp(localhost:3306)/game' sqlb exec ./queries/ranking.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.ensurePrepared(cmd); err != nil {
				return err
			}
			return runExec(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Driver, "driver", "", "database driver (mysql|sqlite3)")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "driver-specific data source name")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")

	return cmd
}

// storeOptions merges the command flags over the loaded configuration.
func (o *ExecOptions) storeOptions() store.Options {
	so := o.Config.StoreOptions()
	if o.Driver != "" {
		so.Driver = o.Driver
	}
	if o.DSN != "" {
		so.DSN = o.DSN
	}
	if o.Database != "" {
		so.Path = o.Database
		if o.Driver == "" {
			so.Driver = store.DriverSQLite
		}
	}
	return so
}

func runExec(opts *ExecOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	compiled, err := loadStatements(formatter, path)
	if err != nil {
		return err
	}

	so := opts.storeOptions()
	slog.Info("opening database", "driver", so.Driver, "trace_id", opts.TraceID)
	st, err := store.Open(so)
	if err != nil {
		_ = formatter.Error(ErrCodeConnectFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeConnectFailed+": failed to open database", err)
	}
	defer st.Close()

	if st.Driver() == store.DriverSQLite {
		slog.Warn("sqlite3 reads a double-quoted value that equals a column name as that column",
			"trace_id", opts.TraceID)
	}

	ex := st.Executor().WithLogger(slog.Default().With("trace_id", opts.TraceID))
	ctx := cmd.Context()

	results := make([]ExecResult, 0, len(compiled))
	for _, c := range compiled {
		formatter.VerboseLog("Executing statement: %s", c.Name)

		res, err := builder.Run(ctx, ex, c.Statement)
		if err != nil {
			code := ErrCodeExecFailed
			if res.SQL == "" {
				code = ErrCodeRenderFailed
			}
			_ = formatter.Error(code, fmt.Sprintf("%s: %v", c.Name, err), map[string]string{
				"statement": c.Name,
				"sql":       res.SQL,
			})
			return WrapExitError(ExitFailure, code+": statement "+c.Name+" failed", err)
		}
		results = append(results, toExecResult(c.Name, res))
	}

	slog.Info("statements executed", "count", len(results), "trace_id", opts.TraceID)

	if formatter.Format == "json" {
		return formatter.Success(results)
	}
	return writeExecText(formatter, results)
}

func toExecResult(name string, res builder.Result) ExecResult {
	out := ExecResult{
		Name:    name,
		Kind:    string(res.Kind),
		SQL:     res.SQL,
		Summary: res.Summary,
	}
	if res.Kind == builder.KindSelect {
		out.Rows = make([]map[string]any, len(res.Rows))
		for i, r := range res.Rows {
			out.Rows[i] = r.Map()
		}
	}
	return out
}

// writeExecText prints each statement, then its rows as JSON lines or its
// summary.
func writeExecText(formatter *OutputFormatter, results []ExecResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		fmt.Fprintf(formatter.Writer, "-- %s\n%s\n", r.Name, r.SQL)

		if r.Summary != nil {
			fmt.Fprintf(formatter.Writer, "affected_rows=%d insert_id=%d\n", r.Summary.AffectedRows, r.Summary.InsertID)
			continue
		}
		for _, row := range r.Rows {
			line, err := json.Marshal(row)
			if err != nil {
				return err
			}
			fmt.Fprintln(formatter.Writer, string(line))
		}
		fmt.Fprintf(formatter.Writer, "(%d row(s))\n", len(r.Rows))
	}
	return nil
}
