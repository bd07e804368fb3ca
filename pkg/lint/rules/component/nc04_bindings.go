package component

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// Binding limits.
const (
	DefaultMaxInputs  = 8
	DefaultMaxOutputs = 5
)

// TooManyInputs flags components with a wide input surface.
var TooManyInputs = lint.RuleDef{
	ID:          "NC04",
	Name:        "too-many-inputs",
	Group:       Group,
	Description: "Component declares too many inputs",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_inputs"},
	Scope:       lint.ScopeEntity,
	Fix:         "Group related inputs into a single object input.",
}

// TooManyOutputs flags components emitting many distinct events.
var TooManyOutputs = lint.RuleDef{
	ID:          "NC05",
	Name:        "too-many-outputs",
	Group:       Group,
	Description: "Component declares too many outputs",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_outputs"},
	Scope:       lint.ScopeEntity,
}

func checkTooManyInputs(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_inputs", DefaultMaxInputs)

	for _, c := range ctx.Model.Components {
		if len(c.Inputs) > limit {
			diagnostics = append(diagnostics, newDiagnostic(TooManyInputs, c, fmt.Sprintf(
				"Component '%s' has %d inputs, which exceeds the recommended maximum of %d",
				c.Name, len(c.Inputs), limit)))
		}
	}

	return diagnostics
}

func checkTooManyOutputs(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_outputs", DefaultMaxOutputs)

	for _, c := range ctx.Model.Components {
		if len(c.Outputs) > limit {
			diagnostics = append(diagnostics, newDiagnostic(TooManyOutputs, c, fmt.Sprintf(
				"Component '%s' has %d outputs, which exceeds the recommended maximum of %d",
				c.Name, len(c.Outputs), limit)))
		}
	}

	return diagnostics
}
