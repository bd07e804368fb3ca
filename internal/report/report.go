// Package report renders the result of an analysis run in machine- and
// human-readable formats.
//
// A Report is a path-keyed snapshot of one run. Every renderer reads the
// same snapshot, so formats never disagree on counts.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/leapstack-labs/ngaudit/internal/dag"
	"github.com/leapstack-labs/ngaudit/internal/engine"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// Report formats.
const (
	FormatJSON     = "json"
	FormatHTML     = "html"
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatDOT      = "dot"
	FormatMermaid  = "mermaid"
)

// ErrUnknownFormat is returned for a format no renderer handles.
var ErrUnknownFormat = errors.New("unknown report format")

// BaseName is the file name, without extension, used by WriteFiles.
const BaseName = "ngaudit-report"

var extensions = map[string]string{
	FormatJSON:     ".json",
	FormatHTML:     ".html",
	FormatTable:    ".txt",
	FormatMarkdown: ".md",
	FormatDOT:      ".dot",
	FormatMermaid:  ".mmd",
}

// Formats returns every supported format name, sorted.
func Formats() []string {
	out := make([]string, 0, len(extensions))
	for f := range extensions {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Report is the renderable view of one run.
type Report struct {
	RunID       string    `json:"run_id"`
	Root        string    `json:"root"`
	Profile     string    `json:"profile"`
	GeneratedAt time.Time `json:"generated_at"`
	DurationMS  int64     `json:"duration_ms"`

	Metrics     Metrics                 `json:"metrics"`
	Entities    []EntityRow             `json:"entities"`
	Graph       GraphView               `json:"graph"`
	Diagnostics []lint.Diagnostic       `json:"diagnostics"`
	Errors      []engine.DiscoveryError `json:"errors"`
}

// EntityRow is one entity in the inventory.
type EntityRow struct {
	Name            string `json:"name"`
	Kind            string `json:"kind"`
	File            string `json:"file"`
	Complexity      int    `json:"complexity,omitempty"`
	ChangeDetection string `json:"change_detection,omitempty"`
	Dependencies    int    `json:"dependencies"`
}

// GraphView is the dependency analysis with file ids replaced by paths.
type GraphView struct {
	Edges         []Edge     `json:"edges"`
	Cycles        []CycleRow `json:"cycles"`
	Orphans       []string   `json:"orphans"`
	EntryPoints   []string   `json:"entry_points"`
	DeepestFile   string     `json:"deepest_file,omitempty"`
	MaxDepth      int        `json:"max_depth"`
	MostImported  []RankRow  `json:"most_imported"`
	MostDependent []RankRow  `json:"most_dependent"`
}

// Edge is one import between two files.
type Edge struct {
	From    string `json:"from"`
	To      string `json:"to"`
	InCycle bool   `json:"in_cycle,omitempty"`
}

// CycleRow is one reported cycle.
type CycleRow struct {
	Files    []string `json:"files"`
	Severity string   `json:"severity"`
}

// RankRow is one entry of an importance ranking.
type RankRow struct {
	File  string `json:"file"`
	Count int    `json:"count"`
}

// New builds a report from a run. Diagnostics may be nil for graph-only runs.
func New(res *engine.RunResult) *Report {
	r := &Report{
		RunID:       res.ID,
		Root:        res.Root,
		Profile:     res.Profile,
		GeneratedAt: res.StartedAt.UTC(),
		DurationMS:  res.Duration.Milliseconds(),
		Metrics:     ComputeMetrics(res.Model, res.Graph, res.Analysis, res.Diagnostics),
		Entities:    EntityRows(res.Model),
		Graph:       graphView(res.Graph, res.Analysis),
		Diagnostics: res.Diagnostics,
	}
	if r.Diagnostics == nil {
		r.Diagnostics = []lint.Diagnostic{}
	}
	if res.Discovery != nil {
		r.Errors = res.Discovery.Errors
	}
	if r.Errors == nil {
		r.Errors = []engine.DiscoveryError{}
	}
	return r
}

// EntityRows lists the model entities, components first.
func EntityRows(m *core.ProjectModel) []EntityRow {
	rows := []EntityRow{}
	for _, kind := range core.AllEntityKinds {
		rows = append(rows, EntityRowsOf(m, kind)...)
	}
	return rows
}

// EntityRowsOf lists the entities of one kind.
func EntityRowsOf(m *core.ProjectModel, kind core.EntityKind) []EntityRow {
	rows := []EntityRow{}
	for _, e := range m.EntitiesOf(kind) {
		row := EntityRow{
			Name:         e.EntityName(),
			Kind:         kind.String(),
			File:         e.SourcePath(),
			Dependencies: len(core.Dependencies(e)),
		}
		if c, ok := e.(*core.Component); ok {
			row.Complexity = c.Complexity
			row.ChangeDetection = string(c.ChangeDetection)
		}
		rows = append(rows, row)
	}
	return rows
}

func graphView(g *dag.Graph, a *dag.Analysis) GraphView {
	v := GraphView{
		Edges:         []Edge{},
		Cycles:        make([]CycleRow, 0, len(a.Cycles)),
		Orphans:       make([]string, 0, len(a.Orphans)),
		MostImported:  rankRows(g, a.MostImported),
		MostDependent: rankRows(g, a.MostDependent),
	}

	cyclic := make(map[[2]string]bool)
	for _, c := range a.Cycles {
		files := make([]string, len(c.Files))
		for i, id := range c.Files {
			files[i] = g.RelPath(id)
			if i > 0 {
				cyclic[[2]string{c.Files[i-1], id}] = true
			}
		}
		v.Cycles = append(v.Cycles, CycleRow{Files: files, Severity: string(c.Severity)})
	}

	for _, e := range g.Edges() {
		v.Edges = append(v.Edges, Edge{
			From:    g.RelPath(e.Source),
			To:      g.RelPath(e.Target),
			InCycle: cyclic[[2]string{e.Source, e.Target}],
		})
	}
	sort.Slice(v.Edges, func(i, j int) bool {
		if v.Edges[i].From != v.Edges[j].From {
			return v.Edges[i].From < v.Edges[j].From
		}
		return v.Edges[i].To < v.Edges[j].To
	})

	for _, id := range a.Orphans {
		v.Orphans = append(v.Orphans, g.RelPath(id))
	}
	roots := g.GetRoots()
	v.EntryPoints = make([]string, 0, len(roots))
	for _, id := range roots {
		v.EntryPoints = append(v.EntryPoints, g.RelPath(id))
	}
	sort.Strings(v.EntryPoints)
	if id, d := a.MaxDepth(); id != "" {
		v.DeepestFile, v.MaxDepth = g.RelPath(id), d
	}
	return v
}

func rankRows(g *dag.Graph, entries []dag.RankEntry) []RankRow {
	rows := make([]RankRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, RankRow{File: g.RelPath(e.FileID), Count: e.Count})
	}
	return rows
}

// Write renders r in format to w.
func Write(w io.Writer, format string, r *Report) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatHTML:
		return WriteHTML(w, r)
	case FormatTable:
		return WriteTable(w, r)
	case FormatMarkdown:
		return WriteMarkdown(w, r)
	case FormatDOT:
		return WriteDOT(w, r)
	case FormatMermaid:
		return WriteMermaid(w, r)
	default:
		return fmt.Errorf("%w %q (available: %v)", ErrUnknownFormat, format, Formats())
	}
}

// WriteFiles renders r once per format into dir, creating it if needed,
// and returns the written paths in format order.
func WriteFiles(dir string, formats []string, r *Report) ([]string, error) {
	for _, f := range formats {
		if _, ok := extensions[f]; !ok {
			return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownFormat, f, Formats())
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		p := filepath.Join(dir, BaseName+extensions[f])
		if err := writeFile(p, f, r); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeFile(path, format string, r *Report) (err error) {
	f, err := os.Create(path) //nolint:gosec // G304: path is built from the configured report dir
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := Write(f, format, r); err != nil {
		return fmt.Errorf("writing %s report: %w", format, err)
	}
	return nil
}
