package dag

import "sort"

// CycleSeverity grades a cycle by its length.
type CycleSeverity string

// Cycle severities.
const (
	CycleCritical CycleSeverity = "critical"
	CycleWarning  CycleSeverity = "warning"
	CycleInfo     CycleSeverity = "info"
)

// SeverityForLength grades a cycle of n distinct files.
func SeverityForLength(n int) CycleSeverity {
	switch {
	case n <= 2:
		return CycleCritical
	case n <= 4:
		return CycleWarning
	default:
		return CycleInfo
	}
}

// Cycle is a closed import path. Files starts and ends with the same id.
type Cycle struct {
	Files    []string      `json:"files"`
	Severity CycleSeverity `json:"severity"`
}

// Len returns the number of distinct files in the cycle.
func (c Cycle) Len() int {
	if len(c.Files) == 0 {
		return 0
	}
	return len(c.Files) - 1
}

// RankEntry is one file's position in an importance ranking.
type RankEntry struct {
	FileID string `json:"file_id"`
	Count  int    `json:"count"`
}

// DefaultTopN is the ranking length used when Options.TopN is not positive.
const DefaultTopN = 10

// DefaultDepthBudget is the number of frames one depth search may push
// when Options.DepthBudget is not positive.
const DefaultDepthBudget = 1 << 16

// Options configures Analyze.
type Options struct {
	TopN int
	// DepthBudget bounds each per-file depth search.
	DepthBudget int
}

// Analysis is the result of the graph queries.
type Analysis struct {
	Cycles        []Cycle        `json:"cycles"`
	Orphans       []string       `json:"orphans"`
	Depths        map[string]int `json:"depths"`
	DepthsCapped  []string       `json:"depths_capped,omitempty"`
	MostImported  []RankEntry    `json:"most_imported"`
	MostDependent []RankEntry    `json:"most_dependent"`
}

// MaxDepth returns the deepest file and its depth.
func (a *Analysis) MaxDepth() (string, int) {
	var best string
	deepest := 0
	for id, d := range a.Depths {
		if d > deepest || (d == deepest && id < best) {
			best, deepest = id, d
		}
	}
	return best, deepest
}

// Analyze runs every graph query. None of them can fail.
func Analyze(g *Graph, opts Options) *Analysis {
	top := opts.TopN
	if top <= 0 {
		top = DefaultTopN
	}
	depths, capped := g.depths(opts.DepthBudget)
	return &Analysis{
		Cycles:        g.FindCycles(),
		Orphans:       g.Orphans(),
		Depths:        depths,
		DepthsCapped:  capped,
		MostImported:  g.rank(g.parents, top),
		MostDependent: g.rank(g.edges, top),
	}
}

type dfsFrame struct {
	id   string
	next int
}

// FindCycles reports at most one cycle per traversal root. Roots are taken
// in insertion order; once a root's traversal closes a cycle it stops, and
// files it already visited are not used as roots again.
func (g *Graph) FindCycles() []Cycle {
	cycles := []Cycle{}
	visited := make(map[string]bool, len(g.nodes))

	for _, root := range g.order {
		if visited[root] {
			continue
		}

		visited[root] = true
		onPath := map[string]int{root: 0}
		path := []string{root}
		stack := []dfsFrame{{id: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.edges[top.id]

			if top.next >= len(succ) {
				delete(onPath, top.id)
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}

			next := succ[top.next]
			top.next++

			if i, ok := onPath[next]; ok {
				files := make([]string, 0, len(path)-i+1)
				files = append(files, path[i:]...)
				files = append(files, next)
				cycles = append(cycles, Cycle{Files: files, Severity: SeverityForLength(len(files) - 1)})
				break
			}
			if visited[next] {
				continue
			}

			visited[next] = true
			onPath[next] = len(path)
			path = append(path, next)
			stack = append(stack, dfsFrame{id: next})
		}
	}
	return cycles
}

// Orphans returns files that no file imports and that export nothing,
// sorted by path.
func (g *Graph) Orphans() []string {
	orphans := []string{}
	for _, id := range g.order {
		if len(g.parents[id]) == 0 && len(g.nodes[id].File.Exports) == 0 {
			orphans = append(orphans, id)
		}
	}
	g.sortByPath(orphans)
	return orphans
}

type depthFrame struct {
	id       string
	next     int
	best     int
	guardHit bool
}

// Depths computes the dependency depth of every file. A file that imports
// nothing has depth 1. Files already on the current path are skipped, so
// cycles terminate; results that depended on that guard are not reused.
//
// Because files on a cycle are not memoized, a densely connected cluster
// is walked once per simple path through it, which grows factorially with
// the cluster size. Each search is therefore bounded by DefaultDepthBudget
// frames; a file whose search hits the bound gets the longest depth seen so
// far. Analyze reports those files in DepthsCapped.
func (g *Graph) Depths() map[string]int {
	out, _ := g.depths(0)
	return out
}

func (g *Graph) depths(budget int) (map[string]int, []string) {
	if budget <= 0 {
		budget = DefaultDepthBudget
	}
	memo := make(map[string]int, len(g.nodes))
	out := make(map[string]int, len(g.nodes))
	var capped []string
	for _, id := range g.order {
		if d, ok := memo[id]; ok {
			out[id] = d
			continue
		}
		d, hit := g.depthFrom(id, memo, budget)
		out[id] = d
		if hit {
			capped = append(capped, id)
		}
	}
	g.sortByPath(capped)
	return out, capped
}

func (g *Graph) depthFrom(start string, memo map[string]int, budget int) (int, bool) {
	onPath := map[string]bool{start: true}
	stack := []depthFrame{{id: start}}
	pushed, capped := 0, false

	for {
		top := &stack[len(stack)-1]
		succ := g.edges[top.id]

		if top.next < len(succ) {
			next := succ[top.next]
			top.next++
			switch d, ok := memo[next]; {
			case onPath[next]:
				top.guardHit = true
			case ok:
				top.best = max(top.best, d)
			case pushed >= budget:
				top.guardHit = true
				capped = true
			default:
				pushed++
				onPath[next] = true
				stack = append(stack, depthFrame{id: next})
			}
			continue
		}

		done := *top
		depth := 1 + done.best
		if !done.guardHit {
			memo[done.id] = depth
		}
		delete(onPath, done.id)
		stack = stack[:len(stack)-1]

		if len(stack) == 0 {
			return depth, capped
		}
		parent := &stack[len(stack)-1]
		parent.best = max(parent.best, depth)
		parent.guardHit = parent.guardHit || done.guardHit
	}
}

// rank orders files by adjacency count, highest first, ties by path.
func (g *Graph) rank(adj map[string][]string, top int) []RankEntry {
	entries := []RankEntry{}
	for _, id := range g.order {
		if n := len(adj[id]); n > 0 {
			entries = append(entries, RankEntry{FileID: id, Count: n})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return g.RelPath(entries[i].FileID) < g.RelPath(entries[j].FileID)
	})
	if len(entries) > top {
		entries = entries[:top]
	}
	return entries
}
