// Package config loads ngaudit configuration.
//
// Values are layered with koanf, lowest precedence first: built-in defaults,
// ngaudit.yaml (searched upward from the working directory), NGAUDIT_*
// environment variables, then explicitly set command-line flags.
package config

import (
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// RuleConfig is an alias for the shared rule configuration.
type RuleConfig = core.RuleConfig

// Default configuration values.
const (
	DefaultHistoryFile = ".ngaudit/history.db"
	DefaultReportDir   = "ngaudit-report"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultResolution  = "filename"
	DefaultTopN        = 10
)

// ConfigFileNames are the names searched for, in order.
var ConfigFileNames = []string{"ngaudit.yaml", "ngaudit.yml"}

// DefaultIgnore lists the globs skipped when no ignore list is configured.
var DefaultIgnore = []string{"**/*.spec.ts", "**/*.test.ts", "node_modules/", "dist/", ".git/"}

// DefaultExtensions lists the file extensions analyzed by default.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// Config holds all CLI configuration options.
type Config struct {
	Root          string   `koanf:"root"`
	Profile       string   `koanf:"profile"`
	Ignore        []string `koanf:"ignore"`
	Extensions    []string `koanf:"extensions"`
	IncludeHidden bool     `koanf:"include_hidden"`
	Workers       int      `koanf:"workers"`
	Verbose       bool     `koanf:"verbose"`
	OutputFormat  string   `koanf:"output"`

	// MinSeverity hides diagnostics below it.
	MinSeverity core.Severity `koanf:"min_severity"`
	// FailOn makes analyze exit non-zero when a diagnostic reaches it.
	FailOn core.Severity `koanf:"fail_on"`

	Graph   GraphConfig           `koanf:"graph"`
	Rules   map[string]RuleConfig `koanf:"rules"`
	Report  ReportConfig          `koanf:"report"`
	History HistoryConfig         `koanf:"history"`

	// ConfigFile is the file that was loaded, empty when none was found.
	ConfigFile string `koanf:"-"`
}

// GraphConfig configures dependency-graph construction.
type GraphConfig struct {
	Resolution string `koanf:"resolution"`
	TopN       int    `koanf:"top_n"`
}

// ReportConfig configures report files written by analyze.
type ReportConfig struct {
	Formats []string `koanf:"formats"`
	Dir     string   `koanf:"dir"`
}

// HistoryConfig configures the run-history database.
type HistoryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

// StatePath returns the history database path, or "" when history is off.
func (c *Config) StatePath() string {
	if !c.History.Enabled {
		return ""
	}
	return c.History.Path
}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Root:         ".",
		Profile:      lint.DefaultProfile,
		Ignore:       append([]string(nil), DefaultIgnore...),
		Extensions:   append([]string(nil), DefaultExtensions...),
		OutputFormat: DefaultOutput,
		MinSeverity:  core.SeverityHint,
		FailOn:       core.SeverityError,
		Graph:        GraphConfig{Resolution: DefaultResolution, TopN: DefaultTopN},
		Report:       ReportConfig{Formats: []string{"html", "json"}, Dir: DefaultReportDir},
		History:      HistoryConfig{Enabled: true, Path: DefaultHistoryFile},
	}
}
