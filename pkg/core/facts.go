package core

import "strings"

// ImportKind is the syntactic form of an import.
type ImportKind string

// Import forms.
const (
	ImportDefault    ImportKind = "default"
	ImportNamed      ImportKind = "named"
	ImportNamespace  ImportKind = "namespace"
	ImportSideEffect ImportKind = "side-effect"
	ImportDynamic    ImportKind = "dynamic"
)

// ExportKind is the syntactic form of an export.
type ExportKind string

// Export forms.
const (
	ExportDefault   ExportKind = "default"
	ExportNamed     ExportKind = "named"
	ExportNamespace ExportKind = "namespace"
	ExportReexport  ExportKind = "re-export"
)

// ImportRecord is one imported symbol of one file.
type ImportRecord struct {
	FileID   string     `json:"file_id"`
	Symbol   string     `json:"symbol,omitempty"`
	Source   string     `json:"source"`
	Kind     ImportKind `json:"kind"`
	External bool       `json:"external"`
}

// ExportRecord is one exported symbol of one file.
type ExportRecord struct {
	FileID string     `json:"file_id"`
	Symbol string     `json:"symbol,omitempty"`
	Source string     `json:"source,omitempty"` // Set for re-exports
	Kind   ExportKind `json:"kind"`
}

// DependencyEdge is a resolved file-to-file relation.
// At most one edge exists per (Source, Target) pair.
type DependencyEdge struct {
	Source  string     `json:"source"`
	Target  string     `json:"target"`
	Kind    ImportKind `json:"kind"`
	Symbols []string   `json:"symbols,omitempty"`
}

// IsRelativeSpecifier reports whether a module specifier points at a file
// relative to the importer.
func IsRelativeSpecifier(spec string) bool {
	return spec == "." || spec == ".." ||
		strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}
