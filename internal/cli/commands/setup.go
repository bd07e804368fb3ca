package commands

import (
	"log/slog"

	"github.com/leapstack-labs/ngaudit/internal/cli/config"
	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/internal/engine"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// EngineOption adjusts the engine configuration derived from the CLI
// configuration before the engine is created.
type EngineOption func(*engine.Config)

// withoutHistory disables the run-history store.
func withoutHistory() EngineOption {
	return func(c *engine.Config) { c.StatePath = "" }
}

// withDisabledRules switches off rules by id.
func withDisabledRules(ids []string) EngineOption {
	return func(c *engine.Config) { c.DisabledRules = append(c.DisabledRules, ids...) }
}

// withGroups limits the run to rules of the given groups.
func withGroups(groups []string) EngineOption {
	return func(c *engine.Config) { c.Groups = append(c.Groups, groups...) }
}

// NewCommandContext creates a CommandContext with engine and renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command, opts ...EngineOption) (*CommandContext, func(), error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger, opts...)
	if err != nil {
		return nil, nil, err
	}
	cmdCtx.Engine = eng

	cleanup := func() {
		if err := eng.Close(); err != nil {
			cmdCtx.Logger.Warn("closing engine", "error", err)
		}
	}
	return cmdCtx, cleanup, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that only read configuration or rule metadata.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// rendererFor returns the context renderer, or a new one when a command
// level --format flag overrides the global output mode.
func (c *CommandContext) rendererFor(cmd *cobra.Command, format string) *output.Renderer {
	if format == "" {
		return c.Renderer
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
}

// EngineConfig maps CLI configuration onto an engine configuration.
func EngineConfig(cfg *config.Config, logger *slog.Logger) engine.Config {
	return engine.Config{
		Root:          cfg.Root,
		Extensions:    cfg.Extensions,
		Ignore:        cfg.Ignore,
		IncludeHidden: cfg.IncludeHidden,
		Workers:       cfg.Workers,
		Resolution:    cfg.Graph.Resolution,
		TopN:          cfg.Graph.TopN,
		Profile:       cfg.Profile,
		Rules:         cfg.Rules,
		StatePath:     cfg.StatePath(),
		Logger:        logger,
	}
}

func createEngine(cfg *config.Config, logger *slog.Logger, opts ...EngineOption) (*engine.Engine, error) {
	engCfg := EngineConfig(cfg, logger)
	for _, opt := range opts {
		opt(&engCfg)
	}
	return engine.New(engCfg)
}
