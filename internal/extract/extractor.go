// Package extract decodes framework entities and import/export facts from
// parsed TypeScript files.
//
// One file yields at most one entity: the first top-level class carrying a
// recognized decorator. Import and export facts are always harvested, even
// when no entity is found.
package extract

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/parser"
)

// Decorator names that mark a class as an entity.
const (
	DecoratorComponent  = "Component"
	DecoratorInjectable = "Injectable"
	DecoratorNgModule   = "NgModule"
	DecoratorPipe       = "Pipe"
	DecoratorDirective  = "Directive"
)

var entityDecorators = map[string]core.EntityKind{
	DecoratorComponent:  core.KindComponent,
	DecoratorInjectable: core.KindService,
	DecoratorNgModule:   core.KindModule,
	DecoratorPipe:       core.KindPipe,
	DecoratorDirective:  core.KindDirective,
}

// LifecycleHooks is the fixed set of lifecycle method names.
var LifecycleHooks = map[string]bool{
	"ngOnInit":              true,
	"ngOnDestroy":           true,
	"ngOnChanges":           true,
	"ngAfterViewInit":       true,
	"ngAfterViewChecked":    true,
	"ngAfterContentInit":    true,
	"ngAfterContentChecked": true,
	"ngDoCheck":             true,
}

// Result holds everything extracted from one file.
type Result struct {
	File    core.SourceFile
	Entity  core.Entity // nil when the file declares no recognized class
	Imports []core.ImportRecord
	Exports []core.ExportRecord
}

// Extract decodes a parsed file. It never fails: the tree has already been
// validated by the parser.
func Extract(f *parser.File, src core.SourceFile) *Result {
	x := &extraction{file: f, src: src}
	res := &Result{}

	res.Imports, res.Exports = x.facts()
	res.Entity = x.entity()
	res.File = src.WithFacts(res.Imports, res.Exports)
	return res
}

// ExtractFile reads, parses and extracts one file. Parse failures wrap
// parser.ErrSyntax.
func ExtractFile(ctx context.Context, p *parser.Parser, src core.SourceFile) (*Result, error) {
	content, err := os.ReadFile(src.Path) //nolint:gosec // G304: path comes from the project walk
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", src.RelPath, err)
	}
	return ExtractSource(ctx, p, src, content)
}

// ExtractSource parses content and extracts it.
func ExtractSource(ctx context.Context, p *parser.Parser, src core.SourceFile, content []byte) (*Result, error) {
	f, err := p.Parse(ctx, src.Path, content)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Extract(f, src), nil
}

// extraction carries per-file state while walking one tree.
type extraction struct {
	file *parser.File
	src  core.SourceFile
}

func (x *extraction) text(n *sitter.Node) string {
	return x.file.Text(n)
}

// classDecl is a top-level class together with every decorator applied to it.
type classDecl struct {
	node       *sitter.Node
	decorators []*sitter.Node
}

// topLevelClasses lists classes declared directly in the program body, in
// source order.
func (x *extraction) topLevelClasses() []classDecl {
	var out []classDecl
	for _, stmt := range parser.NamedChildren(x.file.Root) {
		switch stmt.Type() {
		case "class_declaration", "abstract_class_declaration":
			out = append(out, classDecl{node: stmt, decorators: parser.ChildrenOfType(stmt, "decorator")})
		case "export_statement":
			decl := stmt.ChildByFieldName("declaration")
			if decl == nil {
				decl = stmt.ChildByFieldName("value")
			}
			if decl == nil {
				continue
			}
			switch decl.Type() {
			case "class_declaration", "abstract_class_declaration", "class":
				decs := parser.ChildrenOfType(stmt, "decorator")
				decs = append(decs, parser.ChildrenOfType(decl, "decorator")...)
				out = append(out, classDecl{node: decl, decorators: decs})
			}
		}
	}
	return out
}

// entity returns the entity for the first class with a recognized decorator.
func (x *extraction) entity() core.Entity {
	for _, cls := range x.topLevelClasses() {
		for _, decNode := range cls.decorators {
			dec := x.decorator(decNode)
			kind, ok := entityDecorators[dec.name]
			if !ok {
				continue
			}
			return x.buildEntity(kind, cls.node, dec)
		}
	}
	return nil
}

func (x *extraction) className(cls *sitter.Node) string {
	if name := cls.ChildByFieldName("name"); name != nil {
		return x.text(name)
	}
	return "default"
}

func (x *extraction) buildEntity(kind core.EntityKind, cls *sitter.Node, dec decorator) core.Entity {
	name := x.className(cls)
	members := x.scanMembers(cls)
	meta := x.metadata(dec)

	switch kind {
	case core.KindComponent:
		c := &core.Component{
			Name:            name,
			FilePath:        x.src.RelPath,
			Selector:        meta.str("selector"),
			StyleURLs:       meta.strings("styleUrls"),
			InlineStyles:    len(meta.strings("styles")),
			Inputs:          append(meta.bindings("inputs"), members.inputs...),
			Outputs:         append(meta.bindings("outputs"), members.outputs...),
			LifecycleHooks:  members.hooks,
			Dependencies:    members.dependencies,
			Complexity:      1 + members.methodCount,
			ChangeDetection: core.ChangeDetectionDefault,
			Standalone:      meta.boolean("standalone", false),
		}
		if url := meta.str("styleUrl"); url != "" {
			c.StyleURLs = append(c.StyleURLs, url)
		}
		if meta.memberName("changeDetection") == "OnPush" {
			c.ChangeDetection = core.ChangeDetectionOptimized
		}
		c.Template = templateSource(meta)
		return c

	case core.KindService:
		return &core.Service{
			Name:           name,
			FilePath:       x.src.RelPath,
			ProvidedIn:     meta.str("providedIn"),
			Dependencies:   members.dependencies,
			Methods:        members.methods,
			LifecycleHooks: members.hooks,
			Complexity:     1 + members.methodCount,
		}

	case core.KindModule:
		return &core.Module{
			Name:         name,
			FilePath:     x.src.RelPath,
			Declarations: meta.names("declarations"),
			Imports:      meta.names("imports"),
			Exports:      meta.names("exports"),
			Providers:    meta.names("providers"),
			Bootstrap:    meta.names("bootstrap"),
		}

	case core.KindPipe:
		return &core.Pipe{
			Name:         name,
			FilePath:     x.src.RelPath,
			PipeName:     meta.str("name"),
			Pure:         meta.boolean("pure", true),
			Standalone:   meta.boolean("standalone", false),
			Dependencies: members.dependencies,
		}

	case core.KindDirective:
		return &core.Directive{
			Name:           name,
			FilePath:       x.src.RelPath,
			Selector:       meta.str("selector"),
			Inputs:         append(meta.bindings("inputs"), members.inputs...),
			Outputs:        append(meta.bindings("outputs"), members.outputs...),
			LifecycleHooks: members.hooks,
			Dependencies:   members.dependencies,
			Standalone:     meta.boolean("standalone", false),
		}
	}
	return nil
}

// templateSource enforces the one-template-source invariant. Empty values
// count as absent. A decorator naming both keeps the external reference and
// is flagged; one naming neither is flagged as missing.
func templateSource(meta metadata) core.TemplateSource {
	inline := meta.str("template")
	url := meta.str("templateUrl")

	switch {
	case inline != "" && url != "":
		ts := core.NewExternalTemplate(url)
		ts.Issue = core.TemplateConflict
		return ts
	case url != "":
		return core.NewExternalTemplate(url)
	case inline != "":
		return core.NewInlineTemplate(inline)
	default:
		return core.TemplateSource{Issue: core.TemplateMissing}
	}
}
