package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteMarkdown writes r as a Markdown document.
func WriteMarkdown(w io.Writer, r *Report) error {
	var b strings.Builder
	m := r.Metrics

	fmt.Fprintf(&b, "# ngaudit report\n\n")
	fmt.Fprintf(&b, "- Root: `%s`\n- Profile: %s\n- Generated: %s\n\n",
		r.Root, r.Profile, r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Summary\n\n| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Files | %d |\n| Imports | %d |\n| Components | %d |\n| Services | %d |\n| Modules | %d |\n| Pipes | %d |\n| Directives | %d |\n",
		m.Files, m.Edges, m.Components, m.Services, m.Modules, m.Pipes, m.Directives)
	fmt.Fprintf(&b, "| Avg complexity | %.1f |\n| OnPush | %.0f%% |\n| Cycles | %d |\n| Orphans | %d |\n| Max depth | %d |\n\n",
		m.AvgComplexity, m.OnPushPercent, m.Cycles, m.Orphans, m.MaxDepth)

	if len(r.Graph.Cycles) > 0 {
		b.WriteString("## Cycles\n\n")
		for _, c := range r.Graph.Cycles {
			fmt.Fprintf(&b, "- **%s**: `%s`\n", c.Severity, cyclePath(c.Files))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Diagnostics\n\n")
	if len(r.Diagnostics) == 0 {
		b.WriteString("No issues found.\n")
	} else {
		b.WriteString("| Severity | Rule | File | Message |\n|---|---|---|---|\n")
		for _, d := range r.Diagnostics {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				d.Severity, d.RuleID, mdCell(orDash(d.FilePath)), mdCell(d.Message))
		}
	}

	if len(r.Errors) > 0 {
		b.WriteString("\n## Skipped files\n\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "- `%s` (%s): %s\n", e.Path, e.Type, e.Message)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func cyclePath(files []string) string {
	return strings.Join(files, " -> ")
}
