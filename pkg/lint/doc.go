// Package lint provides the rule framework for project analysis.
//
// # Architecture
//
//  1. Root package (pkg/lint/): rule definitions, the registry, the analyzer,
//     configuration and profiles
//  2. Rule packages (pkg/lint/rules/...): one package per rule group
//
// # Rule Registration
//
// Registries are instances. Rule packages export their definitions and the
// caller decides which to load:
//
//	reg := rules.Default()
//	analyzer := lint.NewAnalyzer(reg, cfg)
//
// # Rule Categories
//
//   - NC (Component): size, change detection and template hygiene of components
//   - NP (Performance): project-wide performance heuristics
//   - NS (State): state-service and subscription patterns
//   - NA (Architecture): import cycles, orphans and dependency depth
//
// # Configuration
//
// Profiles supply a base configuration that explicit rule settings refine:
//
//	base, _ := lint.ProfileRules(lint.ProfileStrict)
//	merged := lint.MergeRules(base, userRules)
//	cfg, err := lint.ConfigFromRules(merged)
//	cfg.Disable("NC03")
//
// # Creating Custom Rules
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "my-custom-rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    core.SeverityWarning,
//		Check:       checkMyRule,
//	}
//
//	reg.Register(MyRule)
package lint
