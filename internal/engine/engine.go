// Package engine runs an analysis: it builds the project model, the file
// dependency graph and its analysis, then applies the lint rules.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/leapstack-labs/ngaudit/internal/dag"
	"github.com/leapstack-labs/ngaudit/internal/state"
	"github.com/leapstack-labs/ngaudit/internal/walker"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/leapstack-labs/ngaudit/pkg/lint/rules"
)

// Engine analyzes one project root.
type Engine struct {
	root     string
	cfg      Config
	logger   *slog.Logger
	resolver dag.Resolver
	analyzer *lint.Analyzer

	store state.Store // nil when history is disabled
}

// Config holds engine configuration.
type Config struct {
	// Root is the project directory to analyze
	Root string
	// Extensions limits the walk to these file extensions (default ts, tsx, js, jsx)
	Extensions []string
	// Ignore holds extra gitignore-style globs
	Ignore []string
	// IncludeHidden walks dot files and directories
	IncludeHidden bool
	// Workers bounds parallel extraction (default GOMAXPROCS)
	Workers int

	// Resolution selects the import resolver: "filename" (default) or "path"
	Resolution string
	// TopN bounds the rankings
	TopN int

	// Profile names the rule profile; Rules refines it
	Profile string
	Rules   map[string]core.RuleConfig
	// DisabledRules are switched off after the profile and rules are applied
	DisabledRules []string
	// Groups limits the run to rules of these groups (empty runs every group)
	Groups []string
	// Registry overrides the built-in rule set (optional)
	Registry *lint.Registry

	// StatePath is the run-history database. Empty disables history.
	StatePath string

	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine. The state store is opened when StatePath is set.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Profile == "" {
		cfg.Profile = lint.DefaultProfile
	}

	resolver, err := dag.ResolverFor(cfg.Resolution)
	if err != nil {
		return nil, err
	}

	analyzer, err := newAnalyzer(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug("initializing engine", "root", root, "profile", cfg.Profile, "workers", cfg.Workers)

	e := &Engine{
		root:     root,
		cfg:      cfg,
		logger:   logger,
		resolver: resolver,
		analyzer: analyzer,
	}

	if cfg.StatePath != "" {
		store := state.NewSQLiteStore(logger)
		if err := store.Open(context.Background(), cfg.StatePath); err != nil {
			return nil, fmt.Errorf("failed to open state store: %w", err)
		}
		e.store = store
	}

	return e, nil
}

func newAnalyzer(cfg Config) (*lint.Analyzer, error) {
	base, err := lint.ProfileRules(cfg.Profile)
	if err != nil {
		return nil, err
	}
	lcfg, err := lint.ConfigFromRules(lint.MergeRules(base, cfg.Rules))
	if err != nil {
		return nil, err
	}
	for _, id := range cfg.DisabledRules {
		lcfg.Disable(id)
	}

	reg := cfg.Registry
	if reg == nil {
		reg = rules.Default()
	}
	if err := restrictGroups(reg, lcfg, cfg.Groups); err != nil {
		return nil, err
	}
	return lint.NewAnalyzer(reg, lcfg), nil
}

// restrictGroups disables every rule outside groups. Unknown group names
// are an error.
func restrictGroups(reg *lint.Registry, lcfg *lint.Config, groups []string) error {
	if len(groups) == 0 {
		return nil
	}
	known := reg.Groups()
	keep := make(map[string]bool, len(groups))
	for _, g := range groups {
		g = strings.ToLower(strings.TrimSpace(g))
		if !slices.Contains(known, g) {
			return fmt.Errorf("unknown rule group %q (available: %v)", g, known)
		}
		keep[g] = true
	}
	for _, rule := range reg.All() {
		if !keep[rule.Group] {
			lcfg.Disable(rule.ID)
		}
	}
	return nil
}

// Root returns the absolute project root.
func (e *Engine) Root() string {
	return e.root
}

// Profile returns the active rule profile.
func (e *Engine) Profile() string {
	return e.cfg.Profile
}

// Analyzer returns the configured rule analyzer.
func (e *Engine) Analyzer() *lint.Analyzer {
	return e.analyzer
}

// Store returns the run-history store, or nil when history is disabled.
func (e *Engine) Store() state.Store {
	return e.store
}

// Close releases the state store.
func (e *Engine) Close() error {
	e.logger.Debug("closing engine")

	if e.store == nil {
		return nil
	}
	err := e.store.Close()
	e.store = nil
	if err != nil {
		return fmt.Errorf("closing state store: %w", err)
	}
	return nil
}

func (e *Engine) walkOptions() walker.Options {
	return walker.Options{
		Extensions:    e.cfg.Extensions,
		Ignore:        e.cfg.Ignore,
		IncludeHidden: e.cfg.IncludeHidden,
	}
}
