package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clitest "github.com/leapstack-labs/ngaudit/internal/cli/testutil"
	"github.com/leapstack-labs/ngaudit/internal/report"
	"github.com/leapstack-labs/ngaudit/internal/state"
	"github.com/leapstack-labs/ngaudit/internal/testutil"
	"github.com/leapstack-labs/ngaudit/pkg/core"
)

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()

	assert.Equal(t, "analyze [path]", cmd.Use)
	assert.Equal(t, []string{"audit"}, cmd.Aliases)
	assert.NotEmpty(t, cmd.Example)
	for _, flag := range []string{"format", "severity", "fail-on", "disable", "group", "report-dir", "no-history"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestAnalyze_MarkdownFailsOnErrors(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, NewAnalyzeCommand(), cfg)
	require.ErrorIs(t, err, ErrFindings)
	assert.Contains(t, out, "# ngaudit report")
	assert.Contains(t, out, "NA01")
	assert.Contains(t, out, "src/lib/a.ts -> src/lib/b.ts -> src/lib/a.ts")
}

func TestAnalyze_JSON(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, NewAnalyzeCommand(), cfg, "--format", "json", "--disable", "na01")
	require.NoError(t, err, "NA01 is the only error")

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 6, rep.Metrics.Files)
	assert.Equal(t, 4, rep.Metrics.Entities)
	for _, d := range rep.Diagnostics {
		assert.NotEqual(t, "NA01", d.RuleID)
	}
	assert.Len(t, rep.Errors, 1)
}

func TestAnalyze_MinSeverityHidesButStillFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.MinSeverity = core.SeverityWarning

	out, err := execute(t, NewAnalyzeCommand(), cfg, "--format", "json")
	require.ErrorIs(t, err, ErrFindings)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.NotEmpty(t, rep.Diagnostics)
	for _, d := range rep.Diagnostics {
		assert.True(t, d.Severity.AtLeast(core.SeverityWarning), d.RuleID)
	}
	assert.Positive(t, rep.Metrics.Infos, "metrics count every diagnostic")
}

func TestAnalyze_GroupFilter(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, NewAnalyzeCommand(), cfg, "--format", "json", "--group", "component,state")
	require.NoError(t, err, "the NA01 error belongs to the architecture group")

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.NotEmpty(t, rep.Diagnostics)
	for _, d := range rep.Diagnostics {
		assert.True(t, strings.HasPrefix(d.RuleID, "NC") || strings.HasPrefix(d.RuleID, "NS"), d.RuleID)
	}

	_, err = execute(t, NewAnalyzeCommand(), testConfig(t), "--group", "styling")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown rule group "styling"`)
}

func TestAnalyze_Text(t *testing.T) {
	cfg := testConfig(t)
	cfg.FailOn = core.SeverityError

	out, err := execute(t, NewAnalyzeCommand(), cfg, "--format", "text")
	require.Error(t, err)
	clitest.AssertNoANSI(t, out)
	assert.Contains(t, out, "Analysis")
	assert.Contains(t, out, "Skipped files")
	assert.Contains(t, out, "src/broken.ts")
	assert.Contains(t, out, "(project)")
	assert.Contains(t, out, "Summary: ")
}

func TestAnalyze_ReportFormats(t *testing.T) {
	cfg := testConfig(t)
	cfg.FailOn = core.SeverityError

	out, _ := execute(t, NewAnalyzeCommand(), cfg, "--format", "dot")
	assert.True(t, strings.HasPrefix(out, "digraph dependencies {"))

	out, _ = execute(t, NewAnalyzeCommand(), cfg, "--format", "mermaid")
	assert.True(t, strings.HasPrefix(out, "flowchart LR"))
}

func TestAnalyze_ReportDirAndHistory(t *testing.T) {
	cfg := testConfig(t)
	dir := filepath.Join(t.TempDir(), "out")

	_, err := execute(t, NewAnalyzeCommand(), cfg, "--format", "json", "--report-dir", dir)
	require.ErrorIs(t, err, ErrFindings)
	assert.FileExists(t, filepath.Join(dir, "ngaudit-report.html"))
	assert.FileExists(t, filepath.Join(dir, "ngaudit-report.json"))

	_, err = execute(t, NewAnalyzeCommand(), cfg, "--format", "json", "--no-history")
	require.ErrorIs(t, err, ErrFindings)

	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(context.Background(), cfg.History.Path))
	defer func() { _ = store.Close() }()
	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, runs, 1, "the --no-history run is not recorded")
}

func TestAnalyze_PathArgument(t *testing.T) {
	cfg := testConfig(t)
	clean := testutil.WriteProject(t, map[string]string{
		"src/util.ts": "export const x = 1;\n",
	})

	out, err := execute(t, NewAnalyzeCommand(), cfg, clean, "--format", "json", "--no-history")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, clean, rep.Root)
	assert.Equal(t, 1, rep.Metrics.Files)
}

func TestAnalyze_MissingRoot(t *testing.T) {
	cfg := testConfig(t)
	cfg.Root = filepath.Join(t.TempDir(), "absent")

	_, err := execute(t, NewAnalyzeCommand(), cfg, "--no-history")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalizeIDs(t *testing.T) {
	assert.Equal(t, []string{"NC01", "NA02", "NP03"}, normalizeIDs([]string{"nc01, NA02", " np03 ", ""}))
	assert.Nil(t, normalizeIDs(nil))
}

func TestSeveritySummary(t *testing.T) {
	got := severitySummary(map[core.Severity]int{core.SeverityError: 1, core.SeverityInfo: 3})
	assert.Equal(t, "4 issues, 1 error, 3 info", got)
}
