package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/ngaudit/internal/cli/config"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

func TestNewInitCommand(t *testing.T) {
	cmd := NewInitCommand()

	assert.Equal(t, "init [directory]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("force"))
}

func TestInit_WritesProfile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	cfg := config.Default()
	cfg.Profile = lint.ProfileStrict

	out, err := execute(t, NewInitCommand(), cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "profile strict")

	data, err := os.ReadFile(filepath.Join(dir, config.ConfigFileNames[0]))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# ngaudit configuration.")

	var got initFile
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, lint.ProfileStrict, got.Profile)
	assert.Equal(t, "error", got.Rules["NC01"].Severity)
	assert.Equal(t, 8, got.Rules["NC01"].Options.Int("max_complexity", 0))
	assert.Equal(t, config.Default().Graph.Resolution, got.Graph.Resolution)
	assert.Equal(t, config.DefaultReportDir, got.Report.Dir)
}

func TestInit_Force(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()

	_, err := execute(t, NewInitCommand(), cfg, dir)
	require.NoError(t, err)

	_, err = execute(t, NewInitCommand(), cfg, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, NewInitCommand(), cfg, dir, "--force")
	require.NoError(t, err)
}

func TestInitConfig_LoadsBack(t *testing.T) {
	dir := t.TempDir()
	path, err := runInit(dir, lint.ProfileRelaxed, false)
	require.NoError(t, err)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, lint.ProfileRelaxed, cfg.Profile)
	assert.False(t, cfg.Rules["NC03"].IsEnabled())
	assert.Equal(t, filepath.Join(dir, config.DefaultReportDir), cfg.Report.Dir)
}

func TestInitConfig_UnknownProfile(t *testing.T) {
	_, err := initConfig("paranoid")
	assert.Error(t, err)
}
