// Package parser turns TypeScript and JavaScript source into concrete syntax
// trees using the tree-sitter grammars.
//
// # Usage
//
//	p := parser.New()
//	defer p.Close()
//
//	file, err := p.Parse(ctx, "app.component.ts", src)
//	if errors.Is(err, parser.ErrSyntax) {
//	    // skip the file
//	}
//	defer file.Close()
//
// A Parser is not safe for concurrent use; give each worker its own.
// Files with any ERROR or MISSING node are reported as ParseError, so a
// caller never sees a partially recovered tree.
package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language selects a grammar.
type Language int

// Supported grammars.
const (
	LangTypeScript Language = iota
	LangTSX
)

// LanguageFor picks the grammar for a file name. Plain .ts files use the
// TypeScript grammar; everything else may contain JSX.
func LanguageFor(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return LangTypeScript
	default:
		return LangTSX
	}
}

func (l Language) grammar() *sitter.Language {
	if l == LangTypeScript {
		return typescript.GetLanguage()
	}
	return tsx.GetLanguage()
}

// File is a parsed source file.
type File struct {
	Path   string
	Source []byte
	Root   *sitter.Node

	tree *sitter.Tree
}

// Text returns the source text covered by n.
func (f *File) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.Source)
}

// Close releases the syntax tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Parser parses source files.
type Parser struct {
	ts  *sitter.Parser
	tsx *sitter.Parser
}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

func (p *Parser) forLanguage(lang Language) *sitter.Parser {
	slot := &p.tsx
	if lang == LangTypeScript {
		slot = &p.ts
	}
	if *slot == nil {
		sp := sitter.NewParser()
		sp.SetLanguage(lang.grammar())
		*slot = sp
	}
	return *slot
}

// Parse parses src, choosing the grammar from path.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*File, error) {
	tree, err := p.forLanguage(LanguageFor(path)).ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		pos, msg := firstError(root)
		tree.Close()
		return nil, &ParseError{Path: path, Pos: pos, Message: msg}
	}

	return &File{Path: path, Source: src, Root: root, tree: tree}, nil
}

// Close releases the underlying tree-sitter parsers.
func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
		p.ts = nil
	}
	if p.tsx != nil {
		p.tsx.Close()
		p.tsx = nil
	}
}

// firstError locates the first ERROR or MISSING node in document order.
func firstError(root *sitter.Node) (Position, string) {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.IsMissing() {
			return pointToPos(n.StartPoint()), fmt.Sprintf("missing %s", n.Type())
		}
		if n.Type() == "ERROR" {
			return pointToPos(n.StartPoint()), "unexpected input"
		}

		// Push in reverse so the leftmost child is visited first.
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			if c := n.Child(i); c != nil && c.HasError() {
				stack = append(stack, c)
			}
		}
	}
	return pointToPos(root.StartPoint()), "unexpected input"
}

func pointToPos(p sitter.Point) Position {
	return Position{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
}
