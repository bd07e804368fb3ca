package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "ngaudit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("root", "", "")
	fs.String("profile", "", "")
	fs.StringP("output", "o", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.Int("workers", 0, "")
	fs.String("resolution", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.ConfigFile)
	assert.Equal(t, dir, cfg.Root)
	assert.Equal(t, "recommended", cfg.Profile)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultIgnore, cfg.Ignore)
	assert.Equal(t, core.SeverityError, cfg.FailOn)
	assert.Equal(t, core.SeverityHint, cfg.MinSeverity)
	assert.Equal(t, "filename", cfg.Graph.Resolution)
	assert.Equal(t, DefaultTopN, cfg.Graph.TopN)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(dir, DefaultHistoryFile), cfg.History.Path)
	assert.Equal(t, filepath.Join(dir, DefaultHistoryFile), cfg.StatePath())
}

func TestLoad_ConfigFileSearchedUpward(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
root: src
profile: strict
fail_on: warning
graph:
  resolution: path
  top_n: 3
history:
  enabled: false
rules:
  NC01:
    severity: error
    options:
      max_complexity: 12
  NC03:
    enabled: false
`)
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ngaudit.yaml"), cfg.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "src"), cfg.Root, "root resolves against the config file's directory")
	assert.Equal(t, "strict", cfg.Profile)
	assert.Equal(t, core.SeverityWarning, cfg.FailOn)
	assert.Equal(t, "path", cfg.Graph.Resolution)
	assert.Equal(t, 3, cfg.Graph.TopN)
	assert.Empty(t, cfg.StatePath())

	require.Contains(t, cfg.Rules, "NC01")
	assert.Equal(t, "error", cfg.Rules["NC01"].Severity)
	assert.Equal(t, 12, cfg.Rules["NC01"].Options.Int("max_complexity", 0))
	require.Contains(t, cfg.Rules, "NC03")
	assert.False(t, cfg.Rules["NC03"].IsEnabled())
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "profile: strict\noutput: text\nworkers: 2\n")

	t.Setenv("NGAUDIT_PROFILE", "relaxed")
	t.Setenv("NGAUDIT_WORKERS", "4")
	t.Setenv("NGAUDIT_GRAPH__TOP_N", "7")
	t.Setenv("NGAUDIT_RULES__NC04__SEVERITY", "info")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--workers", "8", "--resolution", "path"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "relaxed", cfg.Profile, "env beats file")
	assert.Equal(t, "text", cfg.OutputFormat, "file beats defaults")
	assert.Equal(t, 8, cfg.Workers, "flag beats env")
	assert.Equal(t, 7, cfg.Graph.TopN)
	assert.Equal(t, "path", cfg.Graph.Resolution)
	require.Contains(t, cfg.Rules, "NC04", "rule ids are upper-cased")
	assert.Equal(t, "info", cfg.Rules["NC04"].Severity)
}

func TestLoad_RootFlagRelativeToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "root: ignored\n")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o750))
	t.Chdir(sub)

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--root", "app"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "app"), cfg.Root)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("profile: relaxed\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "relaxed", cfg.Profile)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad yaml", content: "profile: [", wantErr: "error reading config file"},
		{name: "bad severity", content: "fail_on: fatal\n", wantErr: "unable to decode config"},
		{name: "unknown profile", content: "profile: paranoid\n", wantErr: "profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			writeConfig(t, dir, tt.content)

			_, err := Load("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		t.Chdir(t.TempDir())
		_, err := Load("nope.yaml", nil)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr []string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad output", mutate: func(c *Config) { c.OutputFormat = "xml" }, wantErr: []string{"output"}},
		{name: "bad resolution", mutate: func(c *Config) { c.Graph.Resolution = "magic" }, wantErr: []string{"graph.resolution"}},
		{name: "bad report format", mutate: func(c *Config) { c.Report.Formats = []string{"pdf"} }, wantErr: []string{"report.formats"}},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -1 }, wantErr: []string{"workers"}},
		{
			name: "collects every problem",
			mutate: func(c *Config) {
				c.Profile = "x"
				c.Rules = map[string]RuleConfig{"NC01": {Severity: "fatal"}}
			},
			wantErr: []string{"profile", "rules.NC01.severity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	assert.NotNil(t, GetLogger(ctx), "falls back to a discard logger")
	assert.Equal(t, Default(), GetConfig(ctx))

	logger := slog.New(slog.DiscardHandler)
	ctx = context.WithValue(ctx, LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))

	cfg := &Config{Profile: "strict"}
	ctx = WithConfig(ctx, cfg)
	assert.Same(t, cfg, GetConfig(ctx))
}
