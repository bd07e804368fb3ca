package parser

import (
	"context"
	"errors"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageFor(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"app.component.ts", LangTypeScript},
		{"types.d.ts", LangTypeScript},
		{"view.tsx", LangTSX},
		{"legacy.js", LangTSX},
		{"widget.jsx", LangTSX},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, LanguageFor(tt.path))
		})
	}
}

func TestParse_Valid(t *testing.T) {
	p := New()
	defer p.Close()

	src := []byte(`import { Component } from '@angular/core';

@Component({ selector: 'app-root', template: '<p>hi</p>' })
export class AppComponent {}
`)
	f, err := p.Parse(context.Background(), "app.component.ts", src)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "program", f.Root.Type())
	assert.NotZero(t, f.Root.NamedChildCount())

	var classes []string
	Walk(f.Root, func(n *sitter.Node) bool {
		if n.Type() == "class_declaration" {
			classes = append(classes, f.Text(n.ChildByFieldName("name")))
		}
		return true
	})
	assert.Equal(t, []string{"AppComponent"}, classes)
}

func TestParse_SyntaxError(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.Parse(context.Background(), "broken.ts", []byte("export class {{{ ;"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "broken.ts", perr.Path)
	assert.GreaterOrEqual(t, perr.Pos.Line, 1)
}

func TestParse_ReusesParserAcrossGrammars(t *testing.T) {
	p := New()
	defer p.Close()

	f1, err := p.Parse(context.Background(), "a.ts", []byte("export const a = 1;"))
	require.NoError(t, err)
	f1.Close()

	f2, err := p.Parse(context.Background(), "b.tsx", []byte("export const b = <div>{a}</div>;"))
	require.NoError(t, err)
	f2.Close()
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "./foo", Unquote(`'./foo'`))
	assert.Equal(t, "./foo", Unquote(`"./foo"`))
	assert.Equal(t, "<p></p>", Unquote("`<p></p>`"))
	assert.Equal(t, "bare", Unquote("bare"))
	assert.Equal(t, `'x"`, Unquote(`'x"`))
}
