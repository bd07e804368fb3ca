package lint

import (
	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless; all context comes via the Check function parameter.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "NC01"
	Name        string        // Human-readable name, e.g., "component-complexity"
	Group       string        // Category: "component", "performance", "state", "architecture"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Check       Check         // The check function
	ConfigKeys  []string      // Option keys this rule accepts
	Scope       string        // "entity" or "project"

	// GradedSeverity marks rules whose diagnostics set their own severity.
	// A configured severity then caps it instead of replacing it.
	GradedSeverity bool

	// Documentation fields
	Rationale string // Why this rule exists
	Fix       string // How to fix violations
}

// Rule scopes.
const (
	ScopeEntity  = "entity"
	ScopeProject = "project"
)

// Check analyzes the project and returns diagnostics.
type Check func(ctx *Context) []Diagnostic

// Info returns the rule's metadata.
func (r RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		ConfigKeys:      r.ConfigKeys,
		Scope:           r.Scope,
		Rationale:       r.Rationale,
		Fix:             r.Fix,
	}
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string        `json:"rule_id"`
	RuleName string        `json:"rule"`
	Severity core.Severity `json:"severity"`
	Message  string        `json:"message"`
	Entity   string        `json:"entity,omitempty"`    // Entity name that triggered this diagnostic
	FilePath string        `json:"file_path,omitempty"` // Root-relative; empty for project-wide findings
}

// =============================================================================
// Project Context
// =============================================================================

// CycleFact is an import cycle as seen by rules, by relative path.
type CycleFact struct {
	Files    []string
	Severity core.Severity
}

// GraphFacts is the slice of dependency-graph analysis the rules consume.
// Paths are root-relative.
type GraphFacts struct {
	Cycles  []CycleFact
	Orphans []string
	Depths  map[string]int
}

// Context provides all data needed for analysis.
type Context struct {
	Model *core.ProjectModel
	Graph GraphFacts

	opts core.RuleOptions
}

// NewContext creates a new analysis context.
func NewContext(model *core.ProjectModel, graph GraphFacts) *Context {
	if model == nil {
		model = &core.ProjectModel{}
	}
	return &Context{Model: model, Graph: graph}
}

// withOptions returns a shallow copy carrying one rule's options.
func (c *Context) withOptions(opts core.RuleOptions) *Context {
	cp := *c
	cp.opts = opts
	return &cp
}
