package performance

import (
	"fmt"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// TooManyStylesheets flags components pulling in many style files.
var TooManyStylesheets = lint.RuleDef{
	ID:          "NP01",
	Name:        "too-many-stylesheets",
	Group:       Group,
	Description: "Component references many stylesheets",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_stylesheets"},
	Scope:       lint.ScopeEntity,
}

// LargeInlineTemplate flags inline templates big enough to bloat the bundle.
var LargeInlineTemplate = lint.RuleDef{
	ID:          "NP02",
	Name:        "large-inline-template",
	Group:       Group,
	Description: "Inline template is large enough to affect bundle size",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_length"},
	Scope:       lint.ScopeEntity,
}

func checkTooManyStylesheets(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_stylesheets", 3)

	for _, c := range ctx.Model.Components {
		if len(c.StyleURLs) > limit {
			diagnostics = append(diagnostics, componentDiagnostic(TooManyStylesheets, c, fmt.Sprintf(
				"Component '%s' has %d stylesheets; consider consolidating styles", c.Name, len(c.StyleURLs))))
		}
	}

	return diagnostics
}

func checkLargeInlineTemplate(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_length", 2000)

	for _, c := range ctx.Model.Components {
		if n := len(c.Template.Inline); n > limit {
			diagnostics = append(diagnostics, componentDiagnostic(LargeInlineTemplate, c, fmt.Sprintf(
				"Component '%s' has a large inline template (%d characters); consider using templateUrl", c.Name, n)))
		}
	}

	return diagnostics
}
