package dag

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Resolution strategies.
const (
	ResolutionFilename = "filename"
	ResolutionPath     = "path"
)

// scriptExtensions are stripped from a specifier's last segment before the
// filename heuristic appends ".ts".
var scriptExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
}

// ResolveContext holds the per-run lookup tables used by resolvers.
type ResolveContext struct {
	files  []core.SourceFile   // RelPath order
	byPath map[string]string   // RelPath -> id
	byBase map[string][]string // base name -> ids in RelPath order
}

// NewResolveContext indexes files for resolution.
func NewResolveContext(files []core.SourceFile) *ResolveContext {
	sorted := make([]core.SourceFile, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RelPath < sorted[j].RelPath })

	rc := &ResolveContext{
		files:  sorted,
		byPath: make(map[string]string, len(sorted)),
		byBase: make(map[string][]string, len(sorted)),
	}
	for _, f := range sorted {
		rc.byPath[f.RelPath] = f.ID
		base := path.Base(f.RelPath)
		rc.byBase[base] = append(rc.byBase[base], f.ID)
	}
	return rc
}

// Files returns the indexed files in RelPath order.
func (rc *ResolveContext) Files() []core.SourceFile {
	return rc.files
}

// Resolver maps a relative import specifier to a file id.
type Resolver interface {
	Resolve(rc *ResolveContext, importer core.SourceFile, specifier string) (string, bool)
}

// ResolverFor returns the resolver for a strategy name. An empty name
// selects the filename heuristic.
func ResolverFor(strategy string) (Resolver, error) {
	switch strategy {
	case "", ResolutionFilename:
		return FilenameResolver{}, nil
	case ResolutionPath:
		return PathResolver{}, nil
	default:
		return nil, fmt.Errorf("unknown resolution strategy %q (want %s or %s)", strategy, ResolutionFilename, ResolutionPath)
	}
}

// FilenameResolver matches on the specifier's last segment only.
//
// "./shared/user.service" resolves to the first file, in RelPath order,
// named "user.service.ts", wherever it lives. The importer never resolves
// to itself. There is no index-file or directory fallback.
type FilenameResolver struct{}

// Resolve implements Resolver.
func (FilenameResolver) Resolve(rc *ResolveContext, importer core.SourceFile, specifier string) (string, bool) {
	base := path.Base(specifier)
	if ext := path.Ext(base); scriptExtensions[ext] {
		base = strings.TrimSuffix(base, ext)
	}
	for _, id := range rc.byBase[base+".ts"] {
		if id != importer.ID {
			return id, true
		}
	}
	return "", false
}

// PathResolver resolves specifiers against the importer's directory,
// trying script extensions and then index files.
type PathResolver struct {
	// Extensions are tried in order; DefaultPathExtensions when empty.
	Extensions []string
}

// DefaultPathExtensions is the candidate order used by PathResolver.
var DefaultPathExtensions = []string{".ts", ".tsx", ".d.ts", ".js", ".jsx", ".mjs", ".cjs"}

// Resolve implements Resolver.
func (r PathResolver) Resolve(rc *ResolveContext, importer core.SourceFile, specifier string) (string, bool) {
	target := path.Clean(path.Join(path.Dir(importer.RelPath), specifier))
	if target == ".." || strings.HasPrefix(target, "../") {
		return "", false
	}

	exts := r.Extensions
	if len(exts) == 0 {
		exts = DefaultPathExtensions
	}

	candidates := []string{target}
	// ESM-style TypeScript imports name the compiled .js file.
	if ext := path.Ext(target); scriptExtensions[ext] {
		stem := strings.TrimSuffix(target, ext)
		for _, e := range exts {
			candidates = append(candidates, stem+e)
		}
	}
	for _, e := range exts {
		candidates = append(candidates, target+e)
	}
	for _, e := range exts {
		candidates = append(candidates, path.Join(target, "index"+e))
	}

	for _, c := range candidates {
		if id, ok := rc.byPath[c]; ok && id != importer.ID {
			return id, true
		}
	}
	return "", false
}

// BuildGraph builds the file graph from import facts. Only relative
// specifiers are resolved; unresolved imports produce no edge.
func BuildGraph(files []core.SourceFile, imports []core.ImportRecord, r Resolver) *Graph {
	return BuildGraphWithContext(NewResolveContext(files), imports, r)
}

// BuildGraphWithContext is BuildGraph over an existing ResolveContext.
func BuildGraphWithContext(rc *ResolveContext, imports []core.ImportRecord, r Resolver) *Graph {
	if r == nil {
		r = FilenameResolver{}
	}

	g := NewGraph()
	for _, f := range rc.files {
		g.AddFile(f)
	}

	byImporter := make(map[string][]core.ImportRecord)
	for _, imp := range imports {
		byImporter[imp.FileID] = append(byImporter[imp.FileID], imp)
	}

	for _, f := range rc.files {
		for _, imp := range byImporter[f.ID] {
			if imp.External || !core.IsRelativeSpecifier(imp.Source) {
				continue
			}
			target, ok := r.Resolve(rc, f, imp.Source)
			if !ok {
				continue
			}
			// Both ids come from rc and target != importer, so this cannot fail.
			_ = g.AddEdge(f.ID, target, imp.Kind, imp.Symbol)
		}
	}
	return g
}
