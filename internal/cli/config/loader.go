package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable read by Load. A double
// underscore separates nested keys: NGAUDIT_GRAPH__RESOLUTION.
const EnvPrefix = "NGAUDIT_"

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps persistent flag names onto config keys where they differ.
var flagKeys = map[string]string{
	"resolution": "graph.resolution",
	"top":        "graph.top_n",
	"fail-on":    "fail_on",
	"severity":   "min_severity",
}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// findConfigFile returns the first config file found in startDir or one of
// its parents.
func findConfigFile(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Load loads configuration from defaults, file, environment and flags.
// cfgFile may be empty to search upward from the working directory; flags
// may be nil. Relative paths from the config file resolve against its
// directory, relative paths given as flags against the working directory.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	// 1. Defaults
	def := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"root":             def.Root,
		"profile":          def.Profile,
		"ignore":           def.Ignore,
		"extensions":       def.Extensions,
		"include_hidden":   def.IncludeHidden,
		"workers":          def.Workers,
		"verbose":          def.Verbose,
		"output":           def.OutputFormat,
		"min_severity":     def.MinSeverity.String(),
		"fail_on":          def.FailOn.String(),
		"graph.resolution": def.Graph.Resolution,
		"graph.top_n":      def.Graph.TopN,
		"report.formats":   def.Report.Formats,
		"report.dir":       def.Report.Dir,
		"history.enabled":  def.History.Enabled,
		"history.path":     def.History.Path,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if cfgFile == "" {
		cfgFile = findConfigFile(cwd)
	}
	baseDir := cwd
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
		if abs, err := filepath.Abs(cfgFile); err == nil {
			cfgFile = abs
			baseDir = filepath.Dir(abs)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Decode
	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = cfgFile
	cfg.Rules = normalizeRuleIDs(cfg.Rules)

	// 6. Resolve paths
	rootBase := baseDir
	if flags != nil && flags.Changed("root") {
		rootBase = cwd
	}
	cfg.Root = resolvePathRelativeTo(cfg.Root, rootBase)
	cfg.History.Path = resolvePathRelativeTo(cfg.History.Path, baseDir)
	cfg.Report.Dir = resolvePathRelativeTo(cfg.Report.Dir, baseDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals k into a Config. Severities decode through
// encoding.TextUnmarshaler; comma-separated strings become slices.
func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// normalizeRuleIDs upper-cases rule ids; environment variables arrive
// lower-cased.
func normalizeRuleIDs(rules map[string]RuleConfig) map[string]RuleConfig {
	if len(rules) == 0 {
		return rules
	}
	out := make(map[string]RuleConfig, len(rules))
	for id, rc := range rules {
		out[strings.ToUpper(id)] = rc
	}
	return out
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}

// WithConfig returns a context carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// GetConfig retrieves the config from the command context, or the defaults
// when none was loaded.
func GetConfig(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return Default()
}
