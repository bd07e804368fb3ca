package performance

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// ExcessiveBindings flags components with many inputs and outputs.
var ExcessiveBindings = lint.RuleDef{
	ID:          "NP08",
	Name:        "excessive-bindings",
	Group:       Group,
	Description: "Component declares many inputs and outputs",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_bindings"},
	Scope:       lint.ScopeEntity,
}

// HeavyTemplate flags templates with many bindings. Only components whose
// template was inspected are checked.
var HeavyTemplate = lint.RuleDef{
	ID:          "NP09",
	Name:        "heavy-template",
	Group:       Group,
	Description: "Template contains many bindings",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_bindings"},
	Scope:       lint.ScopeEntity,
}

func checkExcessiveBindings(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_bindings", 15)

	for _, c := range ctx.Model.Components {
		if n := len(c.Inputs) + len(c.Outputs); n > limit {
			diagnostics = append(diagnostics, componentDiagnostic(ExcessiveBindings, c, fmt.Sprintf(
				"Component '%s' has %d bindings; consider reducing them to improve change detection performance", c.Name, n)))
		}
	}

	return diagnostics
}

func checkHeavyTemplate(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_bindings", 25)

	for _, c := range ctx.Model.Components {
		if c.TemplateStats == nil {
			continue
		}
		if n := c.TemplateStats.Bindings(); n > limit {
			diagnostics = append(diagnostics, componentDiagnostic(HeavyTemplate, c, fmt.Sprintf(
				"Template of '%s' has %d bindings (threshold: %d)", c.Name, n, limit)))
		}
	}

	return diagnostics
}
