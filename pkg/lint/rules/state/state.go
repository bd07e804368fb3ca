package state

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/leapstack-labs/ngaudit/pkg/lint/internal/naming"
)

// Group is the rule group name.
const Group = "state"

var (
	stateMethodHints  = []string{"get", "set", "update", "state"}
	stateNameHints    = []string{"subject", "behaviorsubject", "replaysubject", "observable", "state", "store", "cache"}
	storePatternHints = []string{"store", "effect", "reducer"}
)

// Check functions read their own RuleDef, so they are attached in init.
func init() {
	ConsiderStateManagement.Check = checkConsiderStateManagement
	UnclearStateServiceNaming.Check = checkUnclearStateNaming
	MissingUnsubscribePattern.Check = checkMissingUnsubscribe
	StateChangeDetectionMismatch.Check = checkStateCDMismatch
}

// Rules returns every state rule.
func Rules() []lint.RuleDef {
	return []lint.RuleDef{
		ConsiderStateManagement,
		UnclearStateServiceNaming,
		MissingUnsubscribePattern,
		StateChangeDetectionMismatch,
	}
}

// ConsiderStateManagement flags projects spreading state over many ad hoc
// services with no store in sight.
var ConsiderStateManagement = lint.RuleDef{
	ID:          "NS01",
	Name:        "consider-state-management",
	Group:       Group,
	Description: "Several services manage state without a central store",
	Severity:    core.SeverityInfo,
	ConfigKeys:  []string{"max_state_services"},
	Scope:       lint.ScopeProject,
	Fix:         "Adopt a store library such as NgRx, or signals-based stores.",
}

// UnclearStateServiceNaming flags state services whose name hides that role.
var UnclearStateServiceNaming = lint.RuleDef{
	ID:          "NS02",
	Name:        "unclear-state-service-naming",
	Group:       Group,
	Description: "State service name does not mention State or Store",
	Severity:    core.SeverityWarning,
	Scope:       lint.ScopeEntity,
}

// MissingUnsubscribePattern flags components that depend on services but
// never implement ngOnDestroy.
var MissingUnsubscribePattern = lint.RuleDef{
	ID:          "NS03",
	Name:        "missing-unsubscribe-pattern",
	Group:       Group,
	Description: "Component uses services without ngOnDestroy",
	Severity:    core.SeverityWarning,
	Scope:       lint.ScopeEntity,
}

// StateChangeDetectionMismatch flags projects where several state-driven
// components still use default change detection.
var StateChangeDetectionMismatch = lint.RuleDef{
	ID:          "NS04",
	Name:        "state-change-detection-mismatch",
	Group:       Group,
	Description: "State-driven components use default change detection",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_components"},
	Scope:       lint.ScopeProject,
}

// StateServices returns the services that appear to hold state.
func StateServices(services []*core.Service) []*core.Service {
	var out []*core.Service
	for _, s := range services {
		if isStateService(s) {
			out = append(out, s)
		}
	}
	return out
}

func isStateService(s *core.Service) bool {
	if naming.ContainsAny(s.Name, stateNameHints...) {
		return true
	}
	for _, m := range s.Methods {
		if naming.ContainsAny(m.Name, stateMethodHints...) {
			return true
		}
	}
	return false
}

func hasStorePattern(services []*core.Service) bool {
	for _, s := range services {
		if naming.ContainsAny(s.Name, storePatternHints...) {
			return true
		}
	}
	return false
}

func checkConsiderStateManagement(ctx *lint.Context) []lint.Diagnostic {
	stateful := StateServices(ctx.Model.Services)
	if len(stateful) <= ctx.Int("max_state_services", 3) || hasStorePattern(ctx.Model.Services) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   ConsiderStateManagement.ID,
		RuleName: ConsiderStateManagement.Name,
		Severity: ConsiderStateManagement.Severity,
		Message: fmt.Sprintf(
			"Found %d services that appear to manage state; consider centralized state management", len(stateful)),
	}}
}

func checkUnclearStateNaming(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, s := range StateServices(ctx.Model.Services) {
		if naming.ContainsAny(s.Name, "state", "store") {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   UnclearStateServiceNaming.ID,
			RuleName: UnclearStateServiceNaming.Name,
			Severity: UnclearStateServiceNaming.Severity,
			Message: fmt.Sprintf(
				"Service '%s' appears to manage state but its name does not say so; consider including 'State' or 'Store'", s.Name),
			Entity:   s.Name,
			FilePath: s.FilePath,
		})
	}

	return diagnostics
}

func checkMissingUnsubscribe(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, c := range ctx.Model.Components {
		if core.HasHook(c.LifecycleHooks, "ngOnDestroy") {
			continue
		}
		if !naming.AnyContains(c.Dependencies, naming.SubscriptionHints...) {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   MissingUnsubscribePattern.ID,
			RuleName: MissingUnsubscribePattern.Name,
			Severity: MissingUnsubscribePattern.Severity,
			Message: fmt.Sprintf(
				"Component '%s' uses services but does not implement ngOnDestroy; unsubscribed observables may leak", c.Name),
			Entity:   c.Name,
			FilePath: c.FilePath,
		})
	}

	return diagnostics
}

func checkStateCDMismatch(ctx *lint.Context) []lint.Diagnostic {
	count := 0
	for _, c := range ctx.Model.Components {
		if c.ChangeDetection == core.ChangeDetectionDefault && naming.AnyContains(c.Dependencies, naming.StateHints...) {
			count++
		}
	}
	if count <= ctx.Int("max_components", 2) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   StateChangeDetectionMismatch.ID,
		RuleName: StateChangeDetectionMismatch.Name,
		Severity: StateChangeDetectionMismatch.Severity,
		Message: fmt.Sprintf(
			"%d components use state services but have default change detection; consider OnPush", count),
	}}
}
