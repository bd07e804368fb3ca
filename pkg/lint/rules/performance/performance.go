package performance

import (
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// Group is the rule group name.
const Group = "performance"

// Check functions read their own RuleDef, so they are attached in init.
func init() {
	TooManyStylesheets.Check = checkTooManyStylesheets
	LargeInlineTemplate.Check = checkLargeInlineTemplate
	HighDefaultChangeDetection.Check = checkHighDefaultCD
	ComplexDefaultCD.Check = checkComplexDefaultCD
	ConsiderLazyLoading.Check = checkConsiderLazyLoading
	UnbalancedModules.Check = checkUnbalancedModules
	PotentialMemoryLeak.Check = checkPotentialMemoryLeak
	ExcessiveBindings.Check = checkExcessiveBindings
	HeavyTemplate.Check = checkHeavyTemplate
}

// Rules returns every performance rule.
func Rules() []lint.RuleDef {
	return []lint.RuleDef{
		TooManyStylesheets,
		LargeInlineTemplate,
		HighDefaultChangeDetection,
		ComplexDefaultCD,
		ConsiderLazyLoading,
		UnbalancedModules,
		PotentialMemoryLeak,
		ExcessiveBindings,
		HeavyTemplate,
	}
}

func componentDiagnostic(rule lint.RuleDef, c *core.Component, msg string) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Severity: rule.Severity,
		Message:  msg,
		Entity:   c.Name,
		FilePath: c.FilePath,
	}
}

func projectDiagnostic(rule lint.RuleDef, msg string) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Severity: rule.Severity,
		Message:  msg,
	}
}
