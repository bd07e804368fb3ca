package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/ngaudit/internal/cli/config"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// initFile is the layout of a generated ngaudit.yaml.
type initFile struct {
	Profile    string                     `yaml:"profile"`
	Ignore     []string                   `yaml:"ignore"`
	Extensions []string                   `yaml:"extensions"`
	Graph      initGraph                  `yaml:"graph"`
	Rules      map[string]core.RuleConfig `yaml:"rules"`
	Report     initReport                 `yaml:"report"`
	History    initHistory                `yaml:"history"`
}

type initGraph struct {
	Resolution string `yaml:"resolution"`
	TopN       int    `yaml:"top_n"`
}

type initReport struct {
	Formats []string `yaml:"formats"`
	Dir     string   `yaml:"dir"`
}

type initHistory struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

const initHeader = `# ngaudit configuration.
# Rules below are the %s profile's settings; edit them or add any rule id.
# Run 'ngaudit rules' to see every rule and its options.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create an ngaudit.yaml configuration",
		Long: `Create an ngaudit.yaml configuration file.

The rules section is filled with the settings of the selected profile
(--profile, default recommended) so they can be tuned in place.`,
		Example: `  # Initialize in current directory
  ngaudit init

  # Start from the strict profile
  ngaudit init --profile strict

  # Initialize another project
  ngaudit init ./apps/shop

  # Force overwrite existing config
  ngaudit init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cmdCtx := NewCommandContextWithoutEngine(cmd)

			path, err := runInit(dir, cmdCtx.Cfg.Profile, force)
			if err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("Created %s (profile %s)", path, cmdCtx.Cfg.Profile))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(dir, profile string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.ConfigFileNames[0])
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	content, err := initConfig(profile)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// initConfig renders the configuration file for a profile.
func initConfig(profile string) ([]byte, error) {
	rules, err := lint.ProfileRules(profile)
	if err != nil {
		return nil, err
	}
	if profile == "" {
		profile = lint.DefaultProfile
	}

	def := config.Default()
	file := initFile{
		Profile:    profile,
		Ignore:     def.Ignore,
		Extensions: def.Extensions,
		Graph:      initGraph{Resolution: def.Graph.Resolution, TopN: def.Graph.TopN},
		Rules:      rules,
		Report:     initReport{Formats: def.Report.Formats, Dir: config.DefaultReportDir},
		History:    initHistory{Enabled: def.History.Enabled, Path: config.DefaultHistoryFile},
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, initHeader, profile)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
