package component

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// DefaultMaxInlineLength is the default max_length option of NC10.
const DefaultMaxInlineLength = 500

// TemplateConflict flags components naming both template sources.
var TemplateConflict = lint.RuleDef{
	ID:          "NC08",
	Name:        "template-conflict",
	Group:       Group,
	Description: "Component has both an inline template and templateUrl",
	Severity:    core.SeverityError,
	Scope:       lint.ScopeEntity,
	Fix:         "Keep either template or templateUrl.",
}

// MissingTemplate flags components naming no template source.
var MissingTemplate = lint.RuleDef{
	ID:          "NC09",
	Name:        "missing-template",
	Group:       Group,
	Description: "Component has neither template nor templateUrl",
	Severity:    core.SeverityError,
	Scope:       lint.ScopeEntity,
}

// InlineTemplateTooLarge flags long inline templates.
var InlineTemplateTooLarge = lint.RuleDef{
	ID:          "NC10",
	Name:        "inline-template-too-large",
	Group:       Group,
	Description: "Inline template is large",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_length"},
	Scope:       lint.ScopeEntity,
	Fix:         "Move the markup into a templateUrl file.",
}

func checkTemplateConflict(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, c := range ctx.Model.Components {
		if c.Template.Issue == core.TemplateConflict {
			diagnostics = append(diagnostics, newDiagnostic(TemplateConflict, c, fmt.Sprintf(
				"Component '%s' has both an inline template and templateUrl; use only one", c.Name)))
		}
	}

	return diagnostics
}

func checkMissingTemplate(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, c := range ctx.Model.Components {
		if c.Template.Issue == core.TemplateMissing {
			diagnostics = append(diagnostics, newDiagnostic(MissingTemplate, c, fmt.Sprintf(
				"Component '%s' must have either a template or templateUrl", c.Name)))
		}
	}

	return diagnostics
}

func checkInlineTemplateSize(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_length", DefaultMaxInlineLength)

	for _, c := range ctx.Model.Components {
		if n := len(c.Template.Inline); n > limit {
			diagnostics = append(diagnostics, newDiagnostic(InlineTemplateTooLarge, c, fmt.Sprintf(
				"Component '%s' has an inline template of %d characters; consider using templateUrl", c.Name, n)))
		}
	}

	return diagnostics
}
