package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

func TestClassifyFile(t *testing.T) {
	tests := map[string]core.FileKind{
		"src/app/app.component.ts": core.FileKindScript,
		"src/app/app.module.ts":    core.FileKindModuleScript,
		"typings/env.d.ts":         core.FileKindDeclaration,
		`src\main.TSX`:             core.FileKindScript,
		"legacy/util.mjs":          core.FileKindScript,
		"README.md":                core.FileKindUnknown,
	}
	for name, want := range tests {
		assert.Equal(t, want, core.ClassifyFile(name), name)
	}
}

func TestParseSeverity(t *testing.T) {
	sev, ok := core.ParseSeverity(" Warn ")
	assert.True(t, ok)
	assert.Equal(t, core.SeverityWarning, sev)

	_, ok = core.ParseSeverity("fatal")
	assert.False(t, ok)

	var s core.Severity
	assert.NoError(t, s.UnmarshalText([]byte("hint")))
	assert.Equal(t, core.SeverityHint, s)
	assert.Error(t, s.UnmarshalText([]byte("loud")))
}

func TestSeverity_AtLeast(t *testing.T) {
	assert.True(t, core.SeverityError.AtLeast(core.SeverityWarning))
	assert.True(t, core.SeverityWarning.AtLeast(core.SeverityWarning))
	assert.False(t, core.SeverityInfo.AtLeast(core.SeverityWarning))
}

func TestParseEntityKind(t *testing.T) {
	k, ok := core.ParseEntityKind("Services")
	assert.True(t, ok)
	assert.Equal(t, core.KindService, k)

	_, ok = core.ParseEntityKind("widget")
	assert.False(t, ok)
}

func TestTemplateSource(t *testing.T) {
	inline := core.NewInlineTemplate("<p></p>")
	assert.True(t, inline.IsInline())
	assert.NoError(t, inline.Validate())

	external := core.NewExternalTemplate("./x.html")
	assert.True(t, external.IsExternal())
	assert.False(t, external.IsInline())

	both := core.TemplateSource{Inline: "<p></p>", URL: "./x.html"}
	assert.ErrorIs(t, both.Validate(), core.ErrTemplateConflict)

	missing := core.TemplateSource{Issue: core.TemplateMissing}
	assert.False(t, missing.IsInline())
}

func TestProjectModel(t *testing.T) {
	m := &core.ProjectModel{}
	m.AddEntity(&core.Service{Name: "B", FilePath: "b.ts", Dependencies: []string{"HttpClient"}})
	m.AddEntity(&core.Component{Name: "Z", FilePath: "a.ts"})
	m.AddEntity(&core.Component{Name: "A", FilePath: "a.ts"})
	m.AddEntity(&core.Module{Name: "M", FilePath: "m.ts"})
	m.Sort()

	assert.Equal(t, 4, m.EntityCount())
	assert.Equal(t, "A", m.Components[0].Name)
	assert.Equal(t, 2, m.CountByKind()[core.KindComponent])
	assert.Len(t, m.EntitiesOf(core.KindService), 1)
	assert.Equal(t, []string{"HttpClient"}, core.Dependencies(m.Services[0]))
	assert.Nil(t, core.Dependencies(m.Modules[0]))
}

func TestRuleOptions_Int(t *testing.T) {
	opts := core.RuleOptions{"a": 3, "b": float64(4), "c": "five"}
	assert.Equal(t, 3, opts.Int("a", 0))
	assert.Equal(t, 4, opts.Int("b", 0))
	assert.Equal(t, 9, opts.Int("c", 9))
	assert.Equal(t, 7, opts.Int("missing", 7))
}

func TestIsRelativeSpecifier(t *testing.T) {
	assert.True(t, core.IsRelativeSpecifier("./a"))
	assert.True(t, core.IsRelativeSpecifier(".."))
	assert.False(t, core.IsRelativeSpecifier("@angular/core"))
	assert.False(t, core.IsRelativeSpecifier(".hidden"))
}
