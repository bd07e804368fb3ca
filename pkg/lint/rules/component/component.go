package component

import (
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// Group is the rule group name.
const Group = "component"

// Check functions read their own RuleDef, so they are attached in init.
func init() {
	ComponentComplexity.Check = checkComponentComplexity
	CriticalComplexity.Check = checkCriticalComplexity
	ChangeDetectionStrategy.Check = checkChangeDetection
	TooManyInputs.Check = checkTooManyInputs
	TooManyOutputs.Check = checkTooManyOutputs
	MissingCleanupPattern.Check = checkMissingCleanup
	ManyLifecycleHooks.Check = checkManyHooks
	TemplateConflict.Check = checkTemplateConflict
	MissingTemplate.Check = checkMissingTemplate
	InlineTemplateTooLarge.Check = checkInlineTemplateSize
}

// Rules returns every component rule.
func Rules() []lint.RuleDef {
	return []lint.RuleDef{
		ComponentComplexity,
		CriticalComplexity,
		ChangeDetectionStrategy,
		TooManyInputs,
		TooManyOutputs,
		MissingCleanupPattern,
		ManyLifecycleHooks,
		TemplateConflict,
		MissingTemplate,
		InlineTemplateTooLarge,
	}
}

func newDiagnostic(rule lint.RuleDef, c *core.Component, msg string) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Severity: rule.Severity,
		Message:  msg,
		Entity:   c.Name,
		FilePath: c.FilePath,
	}
}
