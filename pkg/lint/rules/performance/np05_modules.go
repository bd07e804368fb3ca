package performance

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// ConsiderLazyLoading flags single-module projects with many components.
var ConsiderLazyLoading = lint.RuleDef{
	ID:          "NP05",
	Name:        "consider-lazy-loading",
	Group:       Group,
	Description: "Many components live in a single module",
	Severity:    core.SeverityInfo,
	ConfigKeys:  []string{"max_components"},
	Scope:       lint.ScopeProject,
	Fix:         "Split features into lazy-loaded routes or modules.",
}

// UnbalancedModules flags projects whose modules average many components.
var UnbalancedModules = lint.RuleDef{
	ID:          "NP06",
	Name:        "unbalanced-modules",
	Group:       Group,
	Description: "Modules hold many components on average",
	Severity:    core.SeverityInfo,
	ConfigKeys:  []string{"max_per_module"},
	Scope:       lint.ScopeProject,
}

func checkConsiderLazyLoading(ctx *lint.Context) []lint.Diagnostic {
	components := len(ctx.Model.Components)
	if len(ctx.Model.Modules) != 1 || components <= ctx.Int("max_components", 10) {
		return nil
	}
	return []lint.Diagnostic{projectDiagnostic(ConsiderLazyLoading, fmt.Sprintf(
		"Project has %d components in a single module; consider lazy-loaded feature modules", components))}
}

func checkUnbalancedModules(ctx *lint.Context) []lint.Diagnostic {
	modules := len(ctx.Model.Modules)
	if modules <= 1 {
		return nil
	}
	avg := float64(len(ctx.Model.Components)) / float64(modules)
	if avg <= ctx.Float("max_per_module", 8) {
		return nil
	}
	return []lint.Diagnostic{projectDiagnostic(UnbalancedModules, fmt.Sprintf(
		"Average of %.1f components per module; consider better module organization for lazy loading", avg))}
}
