package component

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

func contextFor(components ...*core.Component) *lint.Context {
	return lint.NewContext(&core.ProjectModel{Components: components}, lint.GraphFacts{})
}

func component(name string, mutate func(c *core.Component)) *core.Component {
	c := &core.Component{
		Name:            name,
		FilePath:        "src/app/" + strings.ToLower(name) + ".component.ts",
		Template:        core.NewExternalTemplate("./x.html"),
		Complexity:      1,
		ChangeDetection: core.ChangeDetectionOptimized,
	}
	if mutate != nil {
		mutate(c)
	}
	return c
}

func bindings(n int) []core.Binding {
	out := make([]core.Binding, n)
	for i := range out {
		out[i] = core.Binding{Name: "b" + string(rune('a'+i))}
	}
	return out
}

func TestNC01_ComponentComplexity(t *testing.T) {
	tests := []struct {
		name       string
		complexity int
		wantDiags  int
	}{
		{name: "at threshold", complexity: 10, wantDiags: 0},
		{name: "above threshold", complexity: 11, wantDiags: 1},
		{name: "simple", complexity: 1, wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := contextFor(component("Dashboard", func(c *core.Component) { c.Complexity = tt.complexity }))
			diags := checkComponentComplexity(ctx)

			assert.Len(t, diags, tt.wantDiags)
			if tt.wantDiags > 0 {
				assert.Equal(t, "NC01", diags[0].RuleID)
				assert.Equal(t, "Dashboard", diags[0].Entity)
				assert.Equal(t, "src/app/dashboard.component.ts", diags[0].FilePath)
				assert.Equal(t, core.SeverityWarning, diags[0].Severity)
			}
		})
	}
}

func TestNC02_CriticalComplexity(t *testing.T) {
	ctx := contextFor(
		component("Mid", func(c *core.Component) { c.Complexity = 20 }),
		component("Huge", func(c *core.Component) { c.Complexity = 21 }),
	)
	diags := checkCriticalComplexity(ctx)

	require.Len(t, diags, 1)
	assert.Equal(t, "Huge", diags[0].Entity)
	assert.Equal(t, core.SeverityError, diags[0].Severity)
}

func TestNC01_ThresholdOption(t *testing.T) {
	reg := lint.NewRegistry(ComponentComplexity, CriticalComplexity)
	cfg := lint.NewConfig().SetRuleOptions("NC01", core.RuleOptions{"max_complexity": 3})
	model := &core.ProjectModel{Components: []*core.Component{
		component("Form", func(c *core.Component) { c.Complexity = 5 }),
	}}

	diags := lint.NewAnalyzer(reg, cfg).Analyze(lint.NewContext(model, lint.GraphFacts{}))

	require.Len(t, diags, 1)
	assert.Equal(t, "NC01", diags[0].RuleID)
	assert.Contains(t, diags[0].Message, "threshold (3)")
}

func TestNC03_ChangeDetection(t *testing.T) {
	ctx := contextFor(
		component("Fast", nil),
		component("Slow", func(c *core.Component) { c.ChangeDetection = core.ChangeDetectionDefault }),
	)
	diags := checkChangeDetection(ctx)

	require.Len(t, diags, 1)
	assert.Equal(t, "Slow", diags[0].Entity)
	assert.Equal(t, core.SeverityInfo, diags[0].Severity)
}

func TestNC04_NC05_Bindings(t *testing.T) {
	tests := []struct {
		name        string
		inputs      int
		outputs     int
		wantInputs  int
		wantOutputs int
	}{
		{name: "within limits", inputs: 8, outputs: 5},
		{name: "too many inputs", inputs: 9, outputs: 0, wantInputs: 1},
		{name: "too many outputs", inputs: 0, outputs: 6, wantOutputs: 1},
		{name: "both", inputs: 12, outputs: 7, wantInputs: 1, wantOutputs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := contextFor(component("Card", func(c *core.Component) {
				c.Inputs = bindings(tt.inputs)
				c.Outputs = bindings(tt.outputs)
			}))

			assert.Len(t, checkTooManyInputs(ctx), tt.wantInputs)
			assert.Len(t, checkTooManyOutputs(ctx), tt.wantOutputs)
		})
	}
}

func TestNC06_MissingCleanupPattern(t *testing.T) {
	tests := []struct {
		name      string
		hooks     []string
		deps      []string
		wantDiags int
	}{
		{
			name:      "init and destroy with service subscription",
			hooks:     []string{"ngOnInit", "ngOnDestroy"},
			deps:      []string{"UserService"},
			wantDiags: 1,
		},
		{
			name:  "destroy ref injected",
			hooks: []string{"ngOnInit", "ngOnDestroy"},
			deps:  []string{"UserService", "DestroyRef"},
		},
		{
			name:  "no subscription source",
			hooks: []string{"ngOnInit", "ngOnDestroy"},
			deps:  []string{"ElementRef"},
		},
		{
			name:  "init only",
			hooks: []string{"ngOnInit"},
			deps:  []string{"HttpClient"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := contextFor(component("Feed", func(c *core.Component) {
				c.LifecycleHooks = tt.hooks
				c.Dependencies = tt.deps
			}))
			assert.Len(t, checkMissingCleanup(ctx), tt.wantDiags)
		})
	}
}

func TestNC07_ManyLifecycleHooks(t *testing.T) {
	ctx := contextFor(
		component("Few", func(c *core.Component) { c.LifecycleHooks = []string{"ngOnInit", "ngOnChanges"} }),
		component("Many", func(c *core.Component) {
			c.LifecycleHooks = []string{"ngOnInit", "ngOnChanges", "ngDoCheck", "ngAfterViewInit", "ngOnDestroy"}
		}),
	)
	diags := checkManyHooks(ctx)

	require.Len(t, diags, 1)
	assert.Equal(t, "Many", diags[0].Entity)
	assert.Contains(t, diags[0].Message, "5 lifecycle hooks")
}

func TestNC08_NC09_TemplateSource(t *testing.T) {
	conflict := component("Both", func(c *core.Component) {
		c.Template = core.TemplateSource{URL: "./both.html", Issue: core.TemplateConflict}
	})
	missing := component("None", func(c *core.Component) {
		c.Template = core.TemplateSource{Issue: core.TemplateMissing}
	})
	ok := component("Fine", nil)
	ctx := contextFor(conflict, missing, ok)

	conflicts := checkTemplateConflict(ctx)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "Both", conflicts[0].Entity)
	assert.Equal(t, core.SeverityError, conflicts[0].Severity)

	missings := checkMissingTemplate(ctx)
	require.Len(t, missings, 1)
	assert.Equal(t, "None", missings[0].Entity)
}

func TestNC10_InlineTemplateTooLarge(t *testing.T) {
	ctx := contextFor(
		component("Small", func(c *core.Component) { c.Template = core.NewInlineTemplate(strings.Repeat("a", 500)) }),
		component("Large", func(c *core.Component) { c.Template = core.NewInlineTemplate(strings.Repeat("a", 501)) }),
	)
	diags := checkInlineTemplateSize(ctx)

	require.Len(t, diags, 1)
	assert.Equal(t, "Large", diags[0].Entity)
	assert.Contains(t, diags[0].Message, "501 characters")
}

func TestRules(t *testing.T) {
	rules := Rules()
	require.Len(t, rules, 10)

	seen := map[string]bool{}
	for _, r := range rules {
		assert.Equal(t, Group, r.Group)
		assert.NotNil(t, r.Check, r.ID)
		assert.False(t, seen[r.ID], "duplicate %s", r.ID)
		seen[r.ID] = true
	}
}
