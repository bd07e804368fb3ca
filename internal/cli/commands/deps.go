package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/internal/dag"
	"github.com/leapstack-labs/ngaudit/internal/report"
	"github.com/spf13/cobra"
)

// DepsOptions holds options for the deps command.
type DepsOptions struct {
	Path        string
	Cycles      bool
	Orphans     bool
	EntryPoints bool
	Depth       bool
	Format      string // text, json, markdown, dot, mermaid
}

// all reports whether no section was selected, which shows every section.
func (o *DepsOptions) all() bool {
	return !o.Cycles && !o.Orphans && !o.EntryPoints && !o.Depth
}

// DepthRow is one file's longest import chain.
type DepthRow struct {
	File  string `json:"file"`
	Depth int    `json:"depth"`
}

// DepsJSONOutput is the JSON output of the deps command. Sections that were
// not selected are omitted.
type DepsJSONOutput struct {
	Files         int               `json:"files"`
	Edges         int               `json:"edges"`
	Cycles        []report.CycleRow `json:"cycles,omitempty"`
	Orphans       []string          `json:"orphans,omitempty"`
	EntryPoints   []string          `json:"entry_points,omitempty"`
	Depths        []DepthRow        `json:"depths,omitempty"`
	MostImported  []report.RankRow  `json:"most_imported,omitempty"`
	MostDependent []report.RankRow  `json:"most_dependent,omitempty"`
}

// NewDepsCommand creates the deps command.
func NewDepsCommand() *cobra.Command {
	opts := &DepsOptions{}
	cmd := &cobra.Command{
		Use:   "deps [path]",
		Short: "Show the file dependency graph",
		Long: `Build the file dependency graph and report its import cycles, orphaned
files, entry points (files nothing imports), dependency depth and the most
imported and most dependent files.

No lint rules run and nothing is recorded in the run history.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # Show the whole analysis
  ngaudit deps

  # Only the import cycles
  ngaudit deps --cycles

  # Top 5 rankings
  ngaudit deps --top 5

  # Graphviz output
  ngaudit deps --format dot | dot -Tsvg > deps.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runDeps(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Cycles, "cycles", false, "Show import cycles")
	cmd.Flags().BoolVar(&opts.Orphans, "orphans", false, "Show orphaned files")
	cmd.Flags().BoolVar(&opts.EntryPoints, "entry-points", false, "Show files nothing imports")
	cmd.Flags().BoolVar(&opts.Depth, "depth", false, "Show dependency depth")
	cmd.Flags().Int("top", 0, "Length of the rankings and the depth list")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown, dot, mermaid")

	return cmd
}

func runDeps(cmd *cobra.Command, opts *DepsOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd, rootOption(opts.Path), withoutHistory())
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := cmdCtx.Engine.AnalyzeGraph(cmd.Context())
	if err != nil {
		return fmt.Errorf("graph analysis failed: %w", err)
	}
	rep := report.New(res)

	switch opts.Format {
	case report.FormatDOT, report.FormatMermaid:
		return report.Write(cmd.OutOrStdout(), opts.Format, rep)
	}

	out := depsOutput(rep, depthRows(res.Graph, res.Analysis, cmdCtx.Cfg.Graph.TopN), opts)

	r := cmdCtx.rendererFor(cmd, opts.Format)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		depsMarkdown(r, out, opts)
	default:
		depsText(r, out, opts)
	}
	return nil
}

func depsOutput(rep *report.Report, depths []DepthRow, opts *DepsOptions) *DepsJSONOutput {
	out := &DepsJSONOutput{Files: rep.Metrics.Files, Edges: rep.Metrics.Edges}
	if opts.all() || opts.Cycles {
		out.Cycles = rep.Graph.Cycles
	}
	if opts.all() || opts.Orphans {
		out.Orphans = rep.Graph.Orphans
	}
	if opts.all() || opts.EntryPoints {
		out.EntryPoints = rep.Graph.EntryPoints
	}
	if opts.all() || opts.Depth {
		out.Depths = depths
	}
	if opts.all() {
		out.MostImported = rep.Graph.MostImported
		out.MostDependent = rep.Graph.MostDependent
	}
	return out
}

// depthRows returns the top deepest files, ties broken by path. Files with
// depth zero are left out.
func depthRows(g *dag.Graph, a *dag.Analysis, top int) []DepthRow {
	if top <= 0 {
		top = dag.DefaultTopN
	}
	rows := make([]DepthRow, 0, len(a.Depths))
	for id, d := range a.Depths {
		if d > 0 {
			rows = append(rows, DepthRow{File: g.RelPath(id), Depth: d})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Depth != rows[j].Depth {
			return rows[i].Depth > rows[j].Depth
		}
		return rows[i].File < rows[j].File
	})
	if len(rows) > top {
		rows = rows[:top]
	}
	return rows
}

// depsText outputs the analysis in styled text format.
func depsText(r *output.Renderer, out *DepsJSONOutput, opts *DepsOptions) {
	styles := r.Styles()

	r.Header(1, "Dependency Graph")
	r.Println(styles.Muted.Render(fmt.Sprintf("%d files, %d imports", out.Files, out.Edges)))
	r.Println("")

	if opts.all() || opts.Cycles {
		r.Println(styles.Header2.Render(fmt.Sprintf("Cycles (%d)", len(out.Cycles))))
		if len(out.Cycles) == 0 {
			r.Success("No import cycles")
		}
		for _, c := range out.Cycles {
			r.Printf("  %s  %s\n", cycleStyle(styles, c.Severity), strings.Join(c.Files, " -> "))
		}
		r.Println("")
	}

	if opts.all() || opts.Orphans {
		r.Println(styles.Header2.Render(fmt.Sprintf("Orphans (%d)", len(out.Orphans))))
		for _, o := range out.Orphans {
			r.Printf("  %s\n", styles.Path.Render(o))
		}
		r.Println("")
	}

	if opts.all() || opts.EntryPoints {
		r.Println(styles.Header2.Render(fmt.Sprintf("Entry Points (%d)", len(out.EntryPoints))))
		for _, e := range out.EntryPoints {
			r.Printf("  %s\n", styles.Path.Render(e))
		}
		r.Println("")
	}

	if opts.all() || opts.Depth {
		r.Println(styles.Header2.Render("Deepest Files"))
		rows := make([][]any, 0, len(out.Depths))
		for _, d := range out.Depths {
			rows = append(rows, []any{d.File, d.Depth})
		}
		r.Table([]string{"File", "Depth"}, rows)
		r.Println("")
	}

	if opts.all() {
		depsRanking(r, "Most Imported", "Importers", out.MostImported)
		depsRanking(r, "Most Dependent", "Imports", out.MostDependent)
	}
}

func depsRanking(r *output.Renderer, title, countLabel string, entries []report.RankRow) {
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatHeader(2, title))
		r.Println("")
	} else {
		r.Println(r.Styles().Header2.Render(title))
	}
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.File, e.Count})
	}
	r.Table([]string{"File", countLabel}, rows)
	r.Println("")
}

func cycleStyle(styles *output.Styles, severity string) string {
	label := fmt.Sprintf("%-8s", severity)
	switch dag.CycleSeverity(severity) {
	case dag.CycleCritical:
		return styles.Error.Render(label)
	case dag.CycleWarning:
		return styles.Warning.Render(label)
	default:
		return styles.Info.Render(label)
	}
}

// depsMarkdown outputs the analysis in markdown format.
func depsMarkdown(r *output.Renderer, out *DepsJSONOutput, opts *DepsOptions) {
	r.Println(output.FormatHeader(1, "Dependency Graph"))
	r.Println("")
	r.Printf("%d files, %d imports\n\n", out.Files, out.Edges)

	if opts.all() || opts.Cycles {
		r.Println(output.FormatHeader(2, fmt.Sprintf("Cycles (%d)", len(out.Cycles))))
		r.Println("")
		for _, c := range out.Cycles {
			r.Printf("- **%s**: `%s`\n", c.Severity, strings.Join(c.Files, " -> "))
		}
		r.Println("")
	}

	if opts.all() || opts.Orphans {
		r.Println(output.FormatHeader(2, fmt.Sprintf("Orphans (%d)", len(out.Orphans))))
		r.Println("")
		for _, o := range out.Orphans {
			r.Printf("- `%s`\n", o)
		}
		r.Println("")
	}

	if opts.all() || opts.EntryPoints {
		r.Println(output.FormatHeader(2, fmt.Sprintf("Entry Points (%d)", len(out.EntryPoints))))
		r.Println("")
		for _, e := range out.EntryPoints {
			r.Printf("- `%s`\n", e)
		}
		r.Println("")
	}

	if opts.all() || opts.Depth {
		r.Println(output.FormatHeader(2, "Deepest Files"))
		r.Println("")
		rows := make([][]any, 0, len(out.Depths))
		for _, d := range out.Depths {
			rows = append(rows, []any{d.File, d.Depth})
		}
		r.Table([]string{"File", "Depth"}, rows)
	}

	if opts.all() {
		depsRanking(r, "Most Imported", "Importers", out.MostImported)
		depsRanking(r, "Most Dependent", "Imports", out.MostDependent)
	}
}
