package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitsift/internal/config"
	"gitsift/internal/ui"
)

// resetFlags restores every flag of cmd and its children to its default
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// executeCommand runs the root command with args in a clean environment and
// returns what it wrote to stdout
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvConfigFile, "")
	resetFlags(rootCmd)
	settings = config.Default()

	original := ui.ColorEnabled()
	ui.SetColor(false)
	t.Cleanup(func() { ui.SetColor(original) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestRootCommand(t *testing.T) {
	output, err := executeCommand(t)
	require.NoError(t, err)
	assert.Contains(t, output, "gitsift")
	assert.Contains(t, output, "reads a local git repository")
}

func TestRootCommandHelp(t *testing.T) {
	output, err := executeCommand(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "Available Commands:")
	for _, sub := range []string{"links", "diff", "ownership", "log", "status", "config", "version"} {
		assert.Contains(t, output, sub)
	}
	assert.Contains(t, output, "--repo")
	assert.Contains(t, output, "--verbose")
}

func TestInvalidCommand(t *testing.T) {
	_, err := executeCommand(t, "invalid-command")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "gitsift version dev")
	assert.Contains(t, output, "Built at: unknown")
}
