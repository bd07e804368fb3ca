package performance

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// HighDefaultChangeDetection flags projects where most components use
// default change detection.
var HighDefaultChangeDetection = lint.RuleDef{
	ID:          "NP03",
	Name:        "high-default-change-detection",
	Group:       Group,
	Description: "Most components use default change detection",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_ratio", "min_components"},
	Scope:       lint.ScopeProject,
}

// ComplexDefaultCD flags complex components that still use default change
// detection.
var ComplexDefaultCD = lint.RuleDef{
	ID:          "NP04",
	Name:        "complex-component-default-cd",
	Group:       Group,
	Description: "Complex component uses default change detection",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_complexity"},
	Scope:       lint.ScopeEntity,
}

func checkHighDefaultCD(ctx *lint.Context) []lint.Diagnostic {
	total := len(ctx.Model.Components)
	if total <= ctx.Int("min_components", 5) {
		return nil
	}

	defaults := 0
	for _, c := range ctx.Model.Components {
		if c.ChangeDetection == core.ChangeDetectionDefault {
			defaults++
		}
	}

	ratio := float64(defaults) / float64(total)
	if ratio <= ctx.Float("max_ratio", 0.7) {
		return nil
	}
	return []lint.Diagnostic{projectDiagnostic(HighDefaultChangeDetection, fmt.Sprintf(
		"%.1f%% of components use default change detection; consider OnPush for better performance", ratio*100))}
}

func checkComplexDefaultCD(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_complexity", 8)

	for _, c := range ctx.Model.Components {
		if c.ChangeDetection == core.ChangeDetectionDefault && c.Complexity > limit {
			diagnostics = append(diagnostics, componentDiagnostic(ComplexDefaultCD, c, fmt.Sprintf(
				"Complex component '%s' (score: %d) uses default change detection; consider OnPush",
				c.Name, c.Complexity)))
		}
	}

	return diagnostics
}
