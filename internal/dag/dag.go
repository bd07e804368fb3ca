// Package dag provides the file-level import graph of a project.
// It supports cycle detection, orphan detection, depth computation and
// importance ranking over the resolved import edges.
package dag

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Node represents a file in the graph.
type Node struct {
	// ID is the file identifier (file_N)
	ID string
	// File is the file's identity record
	File core.SourceFile
}

type edgeKey struct{ source, target string }

// Graph is a directed graph of files. An edge points from the importing
// file to the imported file.
type Graph struct {
	nodes   map[string]*Node
	order   []string            // node ids in insertion order
	edges   map[string][]string // importer -> imported files
	parents map[string][]string // imported file -> importers
	meta    map[edgeKey]*core.DependencyEdge
	list    []edgeKey // edges in insertion order
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
		meta:    make(map[edgeKey]*core.DependencyEdge),
	}
}

// AddFile adds a file node. Adding an id twice replaces the file record.
func (g *Graph) AddFile(f core.SourceFile) {
	if n, exists := g.nodes[f.ID]; exists {
		n.File = f
		return
	}
	g.nodes[f.ID] = &Node{ID: f.ID, File: f}
	g.order = append(g.order, f.ID)
	g.edges[f.ID] = []string{}
	g.parents[f.ID] = []string{}
}

// AddEdge records that source imports symbols from target. Repeated calls
// for the same pair merge the symbol sets; the first call fixes the kind.
func (g *Graph) AddEdge(source, target string, kind core.ImportKind, symbols ...string) error {
	if _, exists := g.nodes[source]; !exists {
		return fmt.Errorf("source node %q does not exist", source)
	}
	if _, exists := g.nodes[target]; !exists {
		return fmt.Errorf("target node %q does not exist", target)
	}
	if source == target {
		return fmt.Errorf("self-loop detected: %s", source)
	}

	key := edgeKey{source, target}
	e, exists := g.meta[key]
	if !exists {
		e = &core.DependencyEdge{Source: source, Target: target, Kind: kind}
		g.meta[key] = e
		g.list = append(g.list, key)
		g.edges[source] = append(g.edges[source], target)
		g.parents[target] = append(g.parents[target], source)
	}
	e.Symbols = mergeSymbols(e.Symbols, symbols)
	return nil
}

func mergeSymbols(have, add []string) []string {
	for _, s := range add {
		if s == "" || contains(have, s) {
			continue
		}
		have = append(have, s)
	}
	sort.Strings(have)
	return have
}

// File returns the file record for id.
func (g *Graph) File(id string) (core.SourceFile, bool) {
	if n, ok := g.nodes[id]; ok {
		return n.File, true
	}
	return core.SourceFile{}, false
}

// RelPath returns the relative path of id, or id itself when unknown.
func (g *Graph) RelPath(id string) string {
	if n, ok := g.nodes[id]; ok {
		return n.File.RelPath
	}
	return id
}

// Files returns all files in insertion order.
func (g *Graph) Files() []core.SourceFile {
	out := make([]core.SourceFile, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id].File)
	}
	return out
}

// GetImports returns the files id imports, in edge insertion order.
func (g *Graph) GetImports(id string) []string {
	return g.edges[id]
}

// GetImporters returns the files importing id, in edge insertion order.
func (g *Graph) GetImporters(id string) []string {
	return g.parents[id]
}

// Edge returns the edge between source and target.
func (g *Graph) Edge(source, target string) (core.DependencyEdge, bool) {
	if e, ok := g.meta[edgeKey{source, target}]; ok {
		return *e, true
	}
	return core.DependencyEdge{}, false
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []core.DependencyEdge {
	out := make([]core.DependencyEdge, 0, len(g.list))
	for _, k := range g.list {
		out = append(out, *g.meta[k])
	}
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.list)
}

// GetRoots returns the files nothing imports, in insertion order. These
// are the entry points of the project.
func (g *Graph) GetRoots() []string {
	var roots []string
	for _, id := range g.order {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// sortByPath orders file ids by relative path.
func (g *Graph) sortByPath(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return g.RelPath(ids[i]) < g.RelPath(ids[j])
	})
}

// contains checks if a slice contains a string.
func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
