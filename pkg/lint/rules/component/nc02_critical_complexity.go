package component

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// CriticalComplexity flags components more than twice as complex as allowed.
var CriticalComplexity = lint.RuleDef{
	ID:          "NC02",
	Name:        "component-complexity-critical",
	Group:       Group,
	Description: "Component complexity is more than twice the threshold",
	Severity:    core.SeverityError,
	ConfigKeys:  []string{"max_complexity"},
	Scope:       lint.ScopeEntity,
	Fix:         "Refactor the component before adding more behavior to it.",
}

func checkCriticalComplexity(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := 2 * ctx.Int("max_complexity", DefaultMaxComplexity)

	for _, c := range ctx.Model.Components {
		if c.Complexity > limit {
			diagnostics = append(diagnostics, newDiagnostic(CriticalComplexity, c, fmt.Sprintf(
				"Component '%s' complexity (%d) is critically high (limit %d); immediate refactoring required",
				c.Name, c.Complexity, limit)))
		}
	}

	return diagnostics
}
