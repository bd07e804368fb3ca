// Package rules bundles the built-in lint rule groups.
//
// Rules are organized by category:
//   - component: per-component size and template checks (NC01-NC10)
//   - performance: change detection and bundle heuristics (NP01-NP09)
//   - state: state services and subscriptions (NS01-NS04)
//   - architecture: dependency graph findings (NA01-NA05)
//
// Default returns a registry with every group loaded:
//
//	reg := rules.Default()
//
// Individual groups can be registered on their own:
//
//	reg := lint.NewRegistry(component.Rules()...)
package rules
