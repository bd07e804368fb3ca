package lint

import (
	"sort"
)

// Analyzer runs lint rules against a project context.
type Analyzer struct {
	registry *Registry
	config   *Config
}

// NewAnalyzer creates a new analyzer over registry with optional configuration.
func NewAnalyzer(registry *Registry, config *Config) *Analyzer {
	if registry == nil {
		registry = NewRegistry()
	}
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{registry: registry, config: config}
}

// Registry returns the analyzer's rule registry.
func (a *Analyzer) Registry() *Registry {
	return a.registry
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() *Config {
	return a.config
}

// EnabledRules returns the rules that Analyze will run.
func (a *Analyzer) EnabledRules() []RuleDef {
	var out []RuleDef
	for _, rule := range a.registry.All() {
		if !a.config.IsDisabled(rule.ID) {
			out = append(out, rule)
		}
	}
	return out
}

// Analyze runs every enabled rule and returns the diagnostics ordered by
// file path, then rule ID.
func (a *Analyzer) Analyze(ctx *Context) []Diagnostic {
	if ctx == nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, rule := range a.EnabledRules() {
		// Run the rule with its options
		diags := rule.Check(ctx.withOptions(a.config.GetRuleOptions(rule.ID)))

		for i := range diags {
			diags[i].RuleID = rule.ID
			diags[i].RuleName = rule.Name
			if rule.GradedSeverity {
				diags[i].Severity = a.config.CapSeverity(rule.ID, diags[i].Severity)
			} else {
				diags[i].Severity = a.config.GetSeverity(rule.ID, diags[i].Severity)
			}
		}
		diagnostics = append(diagnostics, diags...)
	}

	SortDiagnostics(diagnostics)
	return diagnostics
}

// Disable disables a rule by ID.
func (a *Analyzer) Disable(ruleID string) {
	a.config.Disable(ruleID)
}

// Enable enables a previously disabled rule.
func (a *Analyzer) Enable(ruleID string) {
	a.config.Enable(ruleID)
}

// SortDiagnostics orders diagnostics by file path, rule ID, then message.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].FilePath != diags[j].FilePath {
			return diags[i].FilePath < diags[j].FilePath
		}
		if diags[i].RuleID != diags[j].RuleID {
			return diags[i].RuleID < diags[j].RuleID
		}
		return diags[i].Message < diags[j].Message
	})
}
