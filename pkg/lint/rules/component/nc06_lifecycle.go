package component

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/lint/internal/naming"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// DefaultMaxHooks is the default max_hooks option of NC07.
const DefaultMaxHooks = 4

// MissingCleanupPattern flags components that pair ngOnInit with ngOnDestroy
// while subscribing to services, without injecting DestroyRef.
var MissingCleanupPattern = lint.RuleDef{
	ID:          "NC06",
	Name:        "missing-cleanup-pattern",
	Group:       Group,
	Description: "Component subscribes in ngOnInit without a cleanup helper",
	Severity:    core.SeverityWarning,
	Scope:       lint.ScopeEntity,
	Fix:         "Inject DestroyRef and use takeUntilDestroyed.",
}

// ManyLifecycleHooks flags components implementing many lifecycle hooks.
var ManyLifecycleHooks = lint.RuleDef{
	ID:          "NC07",
	Name:        "many-lifecycle-hooks",
	Group:       Group,
	Description: "Component implements many lifecycle hooks",
	Severity:    core.SeverityInfo,
	ConfigKeys:  []string{"max_hooks"},
	Scope:       lint.ScopeEntity,
}

func checkMissingCleanup(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, c := range ctx.Model.Components {
		if !core.HasHook(c.LifecycleHooks, "ngOnInit") || !core.HasHook(c.LifecycleHooks, "ngOnDestroy") {
			continue
		}
		if !naming.AnyContains(c.Dependencies, naming.SubscriptionHints...) {
			continue
		}
		if naming.AnyContains(c.Dependencies, "destroyref") {
			continue
		}
		diagnostics = append(diagnostics, newDiagnostic(MissingCleanupPattern, c, fmt.Sprintf(
			"Component '%s' implements ngOnInit and ngOnDestroy but may be missing a cleanup pattern (unsubscribe, takeUntilDestroyed)",
			c.Name)))
	}

	return diagnostics
}

func checkManyHooks(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_hooks", DefaultMaxHooks)

	for _, c := range ctx.Model.Components {
		if len(c.LifecycleHooks) > limit {
			diagnostics = append(diagnostics, newDiagnostic(ManyLifecycleHooks, c, fmt.Sprintf(
				"Component '%s' implements %d lifecycle hooks; consider whether all are necessary",
				c.Name, len(c.LifecycleHooks))))
		}
	}

	return diagnostics
}
