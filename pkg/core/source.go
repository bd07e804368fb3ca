package core

import (
	"path"
	"strings"
)

// FileKind classifies a discovered source file.
type FileKind string

// File kinds.
const (
	FileKindScript       FileKind = "script"
	FileKindModuleScript FileKind = "module-script"
	FileKindDeclaration  FileKind = "declaration"
	FileKindUnknown      FileKind = "unknown"
)

// ClassifyFile returns the FileKind for a file name.
func ClassifyFile(name string) FileKind {
	base := strings.ToLower(path.Base(strings.ReplaceAll(name, "\\", "/")))
	switch {
	case strings.HasSuffix(base, ".d.ts"):
		return FileKindDeclaration
	case strings.HasSuffix(base, ".module.ts"):
		return FileKindModuleScript
	}
	switch path.Ext(base) {
	case ".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs":
		return FileKindScript
	default:
		return FileKindUnknown
	}
}

// SourceFile is the identity record of one discovered file.
// It is created once per file and never modified afterwards.
type SourceFile struct {
	ID      string   `json:"id"`
	Path    string   `json:"path"`     // Absolute path
	RelPath string   `json:"rel_path"` // Root-relative, slash separated
	Kind    FileKind `json:"kind"`
	Exports []string `json:"exports,omitempty"`
	Imports []string `json:"imports,omitempty"`
}

// Name returns the base file name.
func (f SourceFile) Name() string {
	return path.Base(f.RelPath)
}

// WithFacts returns a copy of f carrying the symbol names of the given facts.
// Imports without a symbol are left out; a star re-export is listed as "*".
func (f SourceFile) WithFacts(imports []ImportRecord, exports []ExportRecord) SourceFile {
	out := f
	out.Imports = nil
	out.Exports = nil
	for _, imp := range imports {
		if imp.Symbol != "" {
			out.Imports = append(out.Imports, imp.Symbol)
		}
	}
	for _, exp := range exports {
		if exp.Symbol == "" {
			// export * from '...'
			out.Exports = append(out.Exports, "*")
			continue
		}
		out.Exports = append(out.Exports, exp.Symbol)
	}
	return out
}
