package component

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// DefaultMaxComplexity is the default max_complexity option of NC01 and NC02.
const DefaultMaxComplexity = 10

// ComponentComplexity flags components whose complexity exceeds the threshold.
var ComponentComplexity = lint.RuleDef{
	ID:          "NC01",
	Name:        "component-complexity",
	Group:       Group,
	Description: "Component complexity exceeds threshold",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_complexity"},
	Scope:       lint.ScopeEntity,
	Rationale:   "Components with many methods mix responsibilities and are hard to test.",
	Fix:         "Split the component into smaller presentational and container components.",
}

func checkComponentComplexity(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_complexity", DefaultMaxComplexity)

	for _, c := range ctx.Model.Components {
		if c.Complexity > limit {
			diagnostics = append(diagnostics, newDiagnostic(ComponentComplexity, c, fmt.Sprintf(
				"Component '%s' complexity (%d) exceeds threshold (%d); consider breaking it into smaller components",
				c.Name, c.Complexity, limit)))
		}
	}

	return diagnostics
}
