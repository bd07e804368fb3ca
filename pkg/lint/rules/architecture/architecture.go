package architecture

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// Group is the rule group name.
const Group = "architecture"

// DefaultMaxDepth is the default max_depth option of NA03.
const DefaultMaxDepth = 5

// Check functions read their own RuleDef, so they are attached in init.
func init() {
	CircularDependency.Check = checkCircularDependency
	OrphanedFile.Check = checkOrphanedFile
	DeepDependencyChain.Check = checkDeepDependencyChain
	UnusedDependency.Check = checkUnusedDependency
	MissingTemplateFile.Check = checkMissingTemplateFile
}

// Rules returns every architecture rule.
func Rules() []lint.RuleDef {
	return []lint.RuleDef{
		CircularDependency,
		OrphanedFile,
		DeepDependencyChain,
		UnusedDependency,
		MissingTemplateFile,
	}
}

// CircularDependency reports import cycles found in the dependency graph.
// Each diagnostic carries the severity of its cycle; a configured severity
// only caps it.
var CircularDependency = lint.RuleDef{
	ID:             "NA01",
	Name:           "circular-dependency",
	Group:          Group,
	Description:    "Files import each other in a cycle",
	Severity:       core.SeverityError,
	GradedSeverity: true,
	Scope:          lint.ScopeProject,
	Rationale:      "Import cycles break tree shaking and make initialization order fragile.",
	Fix:            "Move the shared code into a file both sides can import.",
}

// OrphanedFile reports files nothing imports and that export nothing.
var OrphanedFile = lint.RuleDef{
	ID:          "NA02",
	Name:        "orphaned-file",
	Group:       Group,
	Description: "File is neither imported nor exports anything",
	Severity:    core.SeverityInfo,
	Scope:       lint.ScopeProject,
}

// DeepDependencyChain reports files with long transitive import chains.
var DeepDependencyChain = lint.RuleDef{
	ID:          "NA03",
	Name:        "deep-dependency-chain",
	Group:       Group,
	Description: "File sits on top of a deep import chain",
	Severity:    core.SeverityWarning,
	ConfigKeys:  []string{"max_depth"},
	Scope:       lint.ScopeProject,
}

// UnusedDependency reports component dependencies that are neither project
// components or services nor injected by any service.
var UnusedDependency = lint.RuleDef{
	ID:          "NA04",
	Name:        "unused-dependency",
	Group:       Group,
	Description: "Component dependency is not provided or used elsewhere in the project",
	Severity:    core.SeverityInfo,
	Scope:       lint.ScopeProject,
}

// MissingTemplateFile reports templateUrl references that do not exist.
var MissingTemplateFile = lint.RuleDef{
	ID:          "NA05",
	Name:        "missing-template-file",
	Group:       Group,
	Description: "Component templateUrl does not exist on disk",
	Severity:    core.SeverityWarning,
	Scope:       lint.ScopeEntity,
}

func checkCircularDependency(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, cycle := range ctx.Graph.Cycles {
		if len(cycle.Files) == 0 {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   CircularDependency.ID,
			RuleName: CircularDependency.Name,
			Severity: cycle.Severity,
			Message:  fmt.Sprintf("Circular dependency detected: %s", strings.Join(cycle.Files, " -> ")),
			FilePath: cycle.Files[0],
		})
	}

	return diagnostics
}

func checkOrphanedFile(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, path := range ctx.Graph.Orphans {
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   OrphanedFile.ID,
			RuleName: OrphanedFile.Name,
			Severity: OrphanedFile.Severity,
			Message:  fmt.Sprintf("File '%s' is not imported anywhere and exports nothing", path),
			FilePath: path,
		})
	}

	return diagnostics
}

func checkDeepDependencyChain(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	limit := ctx.Int("max_depth", DefaultMaxDepth)

	paths := make([]string, 0, len(ctx.Graph.Depths))
	for path := range ctx.Graph.Depths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		depth := ctx.Graph.Depths[path]
		if depth > limit {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   DeepDependencyChain.ID,
				RuleName: DeepDependencyChain.Name,
				Severity: DeepDependencyChain.Severity,
				Message: fmt.Sprintf("File '%s' has dependency depth of %d, which exceeds the recommended maximum of %d",
					path, depth, limit),
				FilePath: path,
			})
		}
	}

	return diagnostics
}

func checkUnusedDependency(ctx *lint.Context) []lint.Diagnostic {
	used := make(map[string]bool)
	for _, c := range ctx.Model.Components {
		used[c.Name] = true
	}
	for _, s := range ctx.Model.Services {
		used[s.Name] = true
		for _, dep := range s.Dependencies {
			used[dep] = true
		}
	}

	// First component to declare a dependency owns the diagnostic.
	owner := make(map[string]*core.Component)
	var unused []string
	for _, c := range ctx.Model.Components {
		for _, dep := range c.Dependencies {
			if dep == "" || dep == "unknown" || used[dep] {
				continue
			}
			if _, seen := owner[dep]; !seen {
				owner[dep] = c
				unused = append(unused, dep)
			}
		}
	}
	sort.Strings(unused)

	diagnostics := make([]lint.Diagnostic, 0, len(unused))
	for _, dep := range unused {
		c := owner[dep]
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   UnusedDependency.ID,
			RuleName: UnusedDependency.Name,
			Severity: UnusedDependency.Severity,
			Message:  fmt.Sprintf("Dependency '%s' of component '%s' appears to be unused elsewhere in the project", dep, c.Name),
			Entity:   c.Name,
			FilePath: c.FilePath,
		})
	}
	return diagnostics
}

func checkMissingTemplateFile(ctx *lint.Context) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	for _, c := range ctx.Model.Components {
		if c.TemplateStats == nil || !c.TemplateStats.Missing {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   MissingTemplateFile.ID,
			RuleName: MissingTemplateFile.Name,
			Severity: MissingTemplateFile.Severity,
			Message:  fmt.Sprintf("Component '%s' references templateUrl '%s', which does not exist", c.Name, c.Template.URL),
			Entity:   c.Name,
			FilePath: c.FilePath,
		})
	}

	return diagnostics
}
