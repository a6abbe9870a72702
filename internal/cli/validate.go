package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationError describes one statement that failed to render.
type ValidationError struct {
	Statement string `json:"statement"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Statements int               `json:"statements"`
	Errors     []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a description file without printing SQL",
		Long: `Validate a YAML or CUE description file.

Every statement is built and rendered; all rendering failures are
reported, not just the first. Nothing is sent to a database.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.ensurePrepared(cmd); err != nil {
				return err
			}
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	compiled, err := loadStatements(formatter, path)
	if err != nil {
		return err
	}

	var errs []ValidationError
	for _, c := range compiled {
		formatter.VerboseLog("Validating statement: %s", c.Name)
		if _, err := renderStatement(c); err != nil {
			errs = append(errs, ValidationError{
				Statement: c.Name,
				Code:      ErrCodeRenderFailed,
				Message:   err.Error(),
			})
		}
	}

	result := ValidationResult{
		Valid:      len(errs) == 0,
		Statements: len(compiled),
		Errors:     errs,
	}
	if len(errs) > 0 {
		return outputValidationErrors(formatter, result)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ All %d statement(s) valid\n", len(compiled))
	return nil
}

// outputValidationErrors outputs every validation error.
func outputValidationErrors(formatter *OutputFormatter, result ValidationResult) error {
	first := result.Errors[0]
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))

	if formatter.Format == "json" {
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    first.Code,
				Message: first.Message,
			},
			TraceID: formatter.TraceID,
		}); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range result.Errors {
		fmt.Fprintf(formatter.Writer, "%s\n  %s: %s\n\n", e.Statement, e.Code, e.Message)
	}
	return exitErr
}
