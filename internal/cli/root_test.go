package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ngaudit/internal/cli/commands"
	"github.com/leapstack-labs/ngaudit/internal/report"
	"github.com/leapstack-labs/ngaudit/internal/testutil"
)

// run executes the root command with a config file that keeps history in a
// temp dir, and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "ngaudit.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("history:\n  path: history.db\n"), 0o600))

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"analyze", "deps", "components", "rules", "doctor", "history", "serve", "init", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_Version(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ngaudit v"+Version)
}

func TestRootCmd_ProfileFlag(t *testing.T) {
	out, err := run(t, "rules", "--profile", "strict", "--format", "json")
	require.NoError(t, err)

	var got commands.RulesJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "strict", got.Profile)
}

func TestRootCmd_RootAndSeverityFlags(t *testing.T) {
	root := testutil.WriteProject(t, testutil.SampleProject)

	_, err := run(t, "analyze", "--root", root, "-f", "json")
	require.ErrorIs(t, err, commands.ErrFindings, "NA01 is an error by default")

	out, err := run(t, "analyze", "--root", root, "-f", "json", "--fail-on", "hint", "--disable", "NA01,NA05,NC03,NP07,NS02,NS03", "--severity", "error")
	require.NoError(t, err)
	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, root, rep.Root)
	assert.Empty(t, rep.Diagnostics)

	_, err = run(t, "analyze", "--root", root, "-f", "json", "--fail-on", "info", "--disable", "NA01")
	require.ErrorIs(t, err, commands.ErrFindings, "NC03 infos reach --fail-on info")
}

func TestRootCmd_InvalidFlagValue(t *testing.T) {
	root := testutil.WriteProject(t, testutil.SampleProject)

	_, err := run(t, "deps", "--root", root, "--resolution", "guess")
	assert.Error(t, err)

	_, err = run(t, "analyze", "--root", root, "--fail-on", "fatal")
	assert.Error(t, err)
}

func TestRootCmd_Completion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "ngaudit")
}
