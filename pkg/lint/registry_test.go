package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := lint.NewRegistry()
	require.NoError(t, reg.Register(perComponent("T02", core.SeverityInfo)))
	require.NoError(t, reg.Register(perComponent("T01", core.SeverityInfo)))

	assert.Equal(t, 2, reg.Count())
	assert.Equal(t, "T01", reg.All()[0].ID)

	byName, ok := reg.Get("rule-T02")
	require.True(t, ok)
	assert.Equal(t, "T02", byName.ID)

	_, ok = reg.Get("nope")
	assert.False(t, ok)

	assert.Len(t, reg.ByGroup("test"), 2)
	assert.Equal(t, []string{"test"}, reg.Groups())
}

func TestRegistry_RejectsInvalidRules(t *testing.T) {
	reg := lint.NewRegistry(perComponent("T01", core.SeverityInfo))

	assert.Error(t, reg.Register(perComponent("T01", core.SeverityInfo)))
	assert.Error(t, reg.Register(lint.RuleDef{Name: "no-id", Check: func(*lint.Context) []lint.Diagnostic { return nil }}))
	assert.Error(t, reg.Register(lint.RuleDef{ID: "T09"}))

	assert.Panics(t, func() {
		lint.NewRegistry(perComponent("T01", core.SeverityInfo), perComponent("T01", core.SeverityInfo))
	})
}

func TestRuleDef_Info(t *testing.T) {
	info := lint.RuleDef{
		ID:         "T01",
		Name:       "thing",
		Group:      "test",
		Severity:   core.SeverityWarning,
		ConfigKeys: []string{"max"},
		Scope:      lint.ScopeEntity,
	}.Info()

	assert.Equal(t, "T01", info.ID)
	assert.Equal(t, core.SeverityWarning, info.DefaultSeverity)
	assert.Equal(t, "entity", info.Scope)
}
