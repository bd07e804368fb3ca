package performance

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/leapstack-labs/ngaudit/pkg/lint/internal/naming"
)

// PotentialMemoryLeak flags components that depend on services or HTTP but
// never implement ngOnDestroy.
var PotentialMemoryLeak = lint.RuleDef{
	ID:          "NP07",
	Name:        "potential-memory-leak",
	Group:       Group,
	Description: "Component uses services but does not implement ngOnDestroy",
	Severity:    core.SeverityWarning,
	Scope:       lint.ScopeEntity,
}

func checkPotentialMemoryLeak(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, c := range ctx.Model.Components {
		if core.HasHook(c.LifecycleHooks, "ngOnDestroy") {
			continue
		}
		if naming.AnyContains(c.Dependencies, naming.SubscriptionHints...) {
			diagnostics = append(diagnostics, componentDiagnostic(PotentialMemoryLeak, c, fmt.Sprintf(
				"Component '%s' uses HTTP or services but does not implement ngOnDestroy; potential memory leak", c.Name)))
		}
	}

	return diagnostics
}
