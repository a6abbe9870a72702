package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testTraceID = "0190f3a4-7b1c-7000-8000-000000000001"

// runCLI executes the root command with args and an isolated config file.
// It returns stdout, stderr and the command error.
func runCLI(t *testing.T, configYAML string, args ...string) (string, string, error) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfgPath := filepath.Join(t.TempDir(), "sqlb.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0o644))

	opts := &RootOptions{NewTraceID: func() string { return testTraceID }}
	cmd := NewRootCommandWithOptions(opts)

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeDescription writes a description file into a temp dir.
func writeDescription(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
