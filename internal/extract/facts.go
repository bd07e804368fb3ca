package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/parser"
)

// facts harvests import and export records in source order.
func (x *extraction) facts() ([]core.ImportRecord, []core.ExportRecord) {
	var imports []core.ImportRecord
	var exports []core.ExportRecord

	for _, stmt := range parser.NamedChildren(x.file.Root) {
		switch stmt.Type() {
		case "import_statement":
			imports = append(imports, x.importStatement(stmt)...)
		case "export_statement":
			imps, exps := x.exportStatement(stmt)
			imports = append(imports, imps...)
			exports = append(exports, exps...)
		}
	}
	imports = append(imports, x.dynamicImports()...)
	return imports, exports
}

func (x *extraction) importRecord(symbol, source string, kind core.ImportKind) core.ImportRecord {
	return core.ImportRecord{
		FileID:   x.src.ID,
		Symbol:   symbol,
		Source:   source,
		Kind:     kind,
		External: !core.IsRelativeSpecifier(source),
	}
}

func (x *extraction) exportRecord(symbol, source string, kind core.ExportKind) core.ExportRecord {
	return core.ExportRecord{FileID: x.src.ID, Symbol: symbol, Source: source, Kind: kind}
}

func (x *extraction) importStatement(stmt *sitter.Node) []core.ImportRecord {
	// import x = require('y')
	if req := parser.FirstChildOfType(stmt, "import_require_clause"); req != nil {
		source := parser.Unquote(x.text(req.ChildByFieldName("source")))
		name := x.text(parser.FirstChildOfType(req, "identifier"))
		return []core.ImportRecord{x.importRecord(name, source, core.ImportDefault)}
	}

	source := parser.Unquote(x.text(stmt.ChildByFieldName("source")))
	clause := parser.FirstChildOfType(stmt, "import_clause")
	if clause == nil {
		return []core.ImportRecord{x.importRecord("", source, core.ImportSideEffect)}
	}

	var out []core.ImportRecord
	for _, c := range parser.NamedChildren(clause) {
		switch c.Type() {
		case "identifier":
			out = append(out, x.importRecord(x.text(c), source, core.ImportDefault))
		case "namespace_import":
			name := x.text(parser.FirstChildOfType(c, "identifier"))
			out = append(out, x.importRecord(name, source, core.ImportNamespace))
		case "named_imports":
			for _, spec := range parser.ChildrenOfType(c, "import_specifier") {
				name := x.text(spec.ChildByFieldName("name"))
				out = append(out, x.importRecord(name, source, core.ImportNamed))
			}
		}
	}
	return out
}

func (x *extraction) exportStatement(stmt *sitter.Node) ([]core.ImportRecord, []core.ExportRecord) {
	if src := stmt.ChildByFieldName("source"); src != nil {
		return x.reexport(stmt, parser.Unquote(x.text(src)))
	}

	isDefault := parser.HasChildToken(stmt, "default")

	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		names := x.declaredNames(decl)
		if isDefault {
			name := "default"
			if len(names) > 0 {
				name = names[0]
			}
			return nil, []core.ExportRecord{x.exportRecord(name, "", core.ExportDefault)}
		}
		out := make([]core.ExportRecord, 0, len(names))
		for _, name := range names {
			out = append(out, x.exportRecord(name, "", core.ExportNamed))
		}
		return nil, out
	}

	if val := stmt.ChildByFieldName("value"); val != nil && isDefault {
		name := "default"
		switch val.Type() {
		case "identifier":
			name = x.text(val)
		case "class":
			if n := val.ChildByFieldName("name"); n != nil {
				name = x.text(n)
			}
		}
		return nil, []core.ExportRecord{x.exportRecord(name, "", core.ExportDefault)}
	}

	if clause := parser.FirstChildOfType(stmt, "export_clause"); clause != nil {
		var out []core.ExportRecord
		for _, spec := range parser.ChildrenOfType(clause, "export_specifier") {
			out = append(out, x.exportRecord(x.exportedName(spec), "", core.ExportNamed))
		}
		return nil, out
	}
	return nil, nil
}

// reexport handles `export ... from 'source'`. Every re-exported symbol is
// also an import of the source module.
func (x *extraction) reexport(stmt *sitter.Node, source string) ([]core.ImportRecord, []core.ExportRecord) {
	if clause := parser.FirstChildOfType(stmt, "export_clause"); clause != nil {
		var imps []core.ImportRecord
		var exps []core.ExportRecord
		for _, spec := range parser.ChildrenOfType(clause, "export_specifier") {
			imps = append(imps, x.importRecord(x.text(spec.ChildByFieldName("name")), source, core.ImportNamed))
			exps = append(exps, x.exportRecord(x.exportedName(spec), source, core.ExportReexport))
		}
		return imps, exps
	}

	// export * as ns from 'source'
	if ns := parser.FirstChildOfType(stmt, "namespace_export"); ns != nil {
		name := parser.Unquote(x.text(ns.NamedChild(0)))
		return []core.ImportRecord{x.importRecord(name, source, core.ImportNamespace)},
			[]core.ExportRecord{x.exportRecord(name, source, core.ExportNamespace)}
	}

	// export * from 'source'
	return []core.ImportRecord{x.importRecord("", source, core.ImportNamespace)},
		[]core.ExportRecord{x.exportRecord("", source, core.ExportReexport)}
}

func (x *extraction) exportedName(spec *sitter.Node) string {
	if alias := spec.ChildByFieldName("alias"); alias != nil {
		return parser.Unquote(x.text(alias))
	}
	return parser.Unquote(x.text(spec.ChildByFieldName("name")))
}

// declaredNames lists the names bound by an exported declaration.
func (x *extraction) declaredNames(decl *sitter.Node) []string {
	switch decl.Type() {
	case "lexical_declaration", "variable_declaration":
		var names []string
		for _, d := range parser.ChildrenOfType(decl, "variable_declarator") {
			if n := d.ChildByFieldName("name"); n != nil && n.Type() == "identifier" {
				names = append(names, x.text(n))
			}
		}
		return names
	case "ambient_declaration":
		if inner := decl.NamedChild(0); inner != nil {
			return x.declaredNames(inner)
		}
		return nil
	default:
		if n := decl.ChildByFieldName("name"); n != nil {
			return []string{x.text(n)}
		}
		return nil
	}
}

// dynamicImports finds `import('...')` calls with a literal specifier
// anywhere in the file.
func (x *extraction) dynamicImports() []core.ImportRecord {
	var out []core.ImportRecord
	parser.Walk(x.file.Root, func(n *sitter.Node) bool {
		if n.Type() != "call_expression" {
			return true
		}
		fn := n.ChildByFieldName("function")
		if fn == nil || fn.Type() != "import" {
			return true
		}
		args := parser.NamedChildren(n.ChildByFieldName("arguments"))
		if len(args) > 0 && args[0].Type() == "string" {
			out = append(out, x.importRecord("", parser.Unquote(x.text(args[0])), core.ImportDynamic))
		}
		return true
	})
	return out
}
