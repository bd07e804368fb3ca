package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteTable writes the metrics, the cycles and the diagnostics as plain
// text tables.
func WriteTable(w io.Writer, r *Report) error {
	m := r.Metrics

	summary := newTable(w, "Summary")
	summary.AppendHeader(table.Row{"Metric", "Value"})
	summary.AppendRows([]table.Row{
		{"Files", m.Files},
		{"Imports", m.Edges},
		{"Components", m.Components},
		{"Services", m.Services},
		{"Modules", m.Modules},
		{"Pipes", m.Pipes},
		{"Directives", m.Directives},
		{"Avg complexity", fmt.Sprintf("%.1f", m.AvgComplexity)},
		{"OnPush", fmt.Sprintf("%.0f%%", m.OnPushPercent)},
		{"Cycles", m.Cycles},
		{"Orphans", m.Orphans},
		{"Max depth", m.MaxDepth},
	})
	summary.Render()

	if len(r.Graph.Cycles) > 0 {
		_, _ = fmt.Fprintln(w)
		cycles := newTable(w, "Cycles")
		cycles.AppendHeader(table.Row{"#", "Severity", "Path"})
		for i, c := range r.Graph.Cycles {
			cycles.AppendRow(table.Row{i + 1, c.Severity, cyclePath(c.Files)})
		}
		cycles.Render()
	}

	_, _ = fmt.Fprintln(w)
	if len(r.Diagnostics) == 0 {
		_, _ = fmt.Fprintln(w, "No issues found.")
		return nil
	}
	diags := newTable(w, "Diagnostics")
	diags.AppendHeader(table.Row{"Severity", "Rule", "File", "Entity", "Message"})
	for _, d := range r.Diagnostics {
		diags.AppendRow(table.Row{d.Severity.String(), d.RuleID, orDash(d.FilePath), orDash(d.Entity), d.Message})
	}
	diags.AppendFooter(table.Row{"", "", "", "Total", len(r.Diagnostics)})
	diags.Render()
	return nil
}

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
