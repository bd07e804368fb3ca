package architecture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

func TestNA01_CircularDependency(t *testing.T) {
	graph := lint.GraphFacts{Cycles: []lint.CycleFact{
		{Files: []string{"a.ts", "b.ts", "a.ts"}, Severity: core.SeverityError},
		{Files: []string{"c.ts", "d.ts", "e.ts", "f.ts", "g.ts", "c.ts"}, Severity: core.SeverityInfo},
	}}

	diags := checkCircularDependency(lint.NewContext(nil, graph))

	require.Len(t, diags, 2)
	assert.Equal(t, "Circular dependency detected: a.ts -> b.ts -> a.ts", diags[0].Message)
	assert.Equal(t, "a.ts", diags[0].FilePath)
	assert.Equal(t, core.SeverityError, diags[0].Severity)
	assert.Equal(t, core.SeverityInfo, diags[1].Severity)
}

func TestNA01_KeepsCycleSeverityThroughAnalyzer(t *testing.T) {
	graph := lint.GraphFacts{Cycles: []lint.CycleFact{
		{Files: []string{"x.ts", "y.ts", "z.ts", "x.ts"}, Severity: core.SeverityWarning},
	}}

	diags := lint.NewAnalyzer(lint.NewRegistry(Rules()...), nil).Analyze(lint.NewContext(nil, graph))

	require.Len(t, diags, 1)
	assert.Equal(t, "NA01", diags[0].RuleID)
	assert.Equal(t, core.SeverityWarning, diags[0].Severity)
}

func TestNA02_OrphanedFile(t *testing.T) {
	diags := checkOrphanedFile(lint.NewContext(nil, lint.GraphFacts{Orphans: []string{"src/dead.ts", "src/main.ts"}}))

	require.Len(t, diags, 2)
	assert.Equal(t, "src/dead.ts", diags[0].FilePath)
	assert.Equal(t, core.SeverityInfo, diags[0].Severity)
}

func TestNA03_DeepDependencyChain(t *testing.T) {
	graph := lint.GraphFacts{Depths: map[string]int{
		"z.ts": 7,
		"a.ts": 6,
		"b.ts": 5,
		"c.ts": 1,
	}}

	diags := checkDeepDependencyChain(lint.NewContext(nil, graph))

	require.Len(t, diags, 2)
	assert.Equal(t, "a.ts", diags[0].FilePath)
	assert.Equal(t, "z.ts", diags[1].FilePath)
	assert.Contains(t, diags[1].Message, "depth of 7")
}

func TestNA04_UnusedDependency(t *testing.T) {
	model := &core.ProjectModel{
		Components: []*core.Component{
			{Name: "ListComponent", FilePath: "list.ts", Dependencies: []string{"ItemService", "ElementRef", "unknown"}},
			{Name: "DetailComponent", FilePath: "detail.ts", Dependencies: []string{"HttpClient", "ElementRef", "ListComponent"}},
		},
		Services: []*core.Service{
			{Name: "ItemService", Dependencies: []string{"HttpClient"}},
		},
	}

	diags := checkUnusedDependency(lint.NewContext(model, lint.GraphFacts{}))

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "'ElementRef'")
	assert.Equal(t, "ListComponent", diags[0].Entity)
	assert.Equal(t, "list.ts", diags[0].FilePath)
}

func TestNA05_MissingTemplateFile(t *testing.T) {
	model := &core.ProjectModel{Components: []*core.Component{
		{Name: "Gone", FilePath: "gone.ts", Template: core.NewExternalTemplate("./gone.html"), TemplateStats: &core.TemplateStats{Missing: true}},
		{Name: "Here", FilePath: "here.ts", Template: core.NewExternalTemplate("./here.html"), TemplateStats: &core.TemplateStats{Elements: 2}},
		{Name: "Inline", FilePath: "inline.ts", Template: core.NewInlineTemplate("<p></p>")},
	}}

	diags := checkMissingTemplateFile(lint.NewContext(model, lint.GraphFacts{}))

	require.Len(t, diags, 1)
	assert.Equal(t, "Gone", diags[0].Entity)
	assert.Contains(t, diags[0].Message, "./gone.html")
}
