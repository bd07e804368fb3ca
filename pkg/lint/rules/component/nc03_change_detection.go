package component

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// ChangeDetectionStrategy flags components using default change detection.
var ChangeDetectionStrategy = lint.RuleDef{
	ID:          "NC03",
	Name:        "change-detection-strategy",
	Group:       Group,
	Description: "Component uses default change detection",
	Severity:    core.SeverityInfo,
	Scope:       lint.ScopeEntity,
	Fix:         "Set changeDetection: ChangeDetectionStrategy.OnPush.",
}

func checkChangeDetection(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, c := range ctx.Model.Components {
		if c.ChangeDetection == core.ChangeDetectionDefault {
			diagnostics = append(diagnostics, newDiagnostic(ChangeDetectionStrategy, c, fmt.Sprintf(
				"Component '%s' uses default change detection; consider OnPush for better performance", c.Name)))
		}
	}

	return diagnostics
}
