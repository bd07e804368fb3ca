package rules

import (
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/leapstack-labs/ngaudit/pkg/lint/rules/architecture"
	"github.com/leapstack-labs/ngaudit/pkg/lint/rules/component"
	"github.com/leapstack-labs/ngaudit/pkg/lint/rules/performance"
	"github.com/leapstack-labs/ngaudit/pkg/lint/rules/state"
)

// All returns every built-in rule, grouped by category.
func All() []lint.RuleDef {
	var all []lint.RuleDef
	all = append(all, component.Rules()...)
	all = append(all, performance.Rules()...)
	all = append(all, state.Rules()...)
	all = append(all, architecture.Rules()...)
	return all
}

// Default returns a registry loaded with every built-in rule.
func Default() *lint.Registry {
	return lint.NewRegistry(All()...)
}
