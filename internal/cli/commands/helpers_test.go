package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/ngaudit/internal/cli/config"
	clitest "github.com/leapstack-labs/ngaudit/internal/cli/testutil"
	"github.com/leapstack-labs/ngaudit/internal/testutil"
)

// testConfig returns the default configuration rooted at the sample
// project, with history in a temp dir.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Root = clitest.SetupTestProject(t)
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	cfg.Report.Dir = filepath.Join(t.TempDir(), "reports")
	return cfg
}

// execute runs cmd with cfg in its context and returns stdout. Usage and
// error printing are silenced as the root command does.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = context.WithValue(ctx, config.LoggerKey(), testutil.NewTestLogger(t))
	cmd.SetContext(ctx)

	err := cmd.Execute()
	return out.String(), err
}
