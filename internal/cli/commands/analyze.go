package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/internal/engine"
	"github.com/leapstack-labs/ngaudit/internal/report"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/leapstack-labs/ngaudit/pkg/lint/rules"
	"github.com/spf13/cobra"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	Path      string   // Project root override
	Format    string   // text, json, markdown, html, table, dot, mermaid
	Disable   []string // Rule IDs to disable
	Groups    []string // Rule groups to run
	ReportDir string   // Write report files here
	NoHistory bool     // Skip recording the run
}

// ErrFindings is returned when diagnostics reach the fail-on severity.
var ErrFindings = errors.New("findings at or above the fail-on severity")

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}
	cmd := &cobra.Command{
		Use:     "analyze [path]",
		Aliases: []string{"audit"},
		Short:   "Analyze a project and report findings",
		Long: `Analyze an Angular project: extract its entities, build the file
dependency graph, analyze it for cycles, orphans and depth, then run the
lint rules of the active profile.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format

Report formats (html, table, dot, mermaid) can be printed with --format or
written to a directory with --report-dir.`,
		Example: `  # Analyze the current directory
  ngaudit analyze

  # Analyze another project with the strict profile
  ngaudit analyze ./apps/shop --profile strict

  # Only fail on errors, show warnings and above
  ngaudit analyze --fail-on error --severity warning

  # Disable rules
  ngaudit analyze --disable NC03,NA02

  # Only run the component and state rules
  ngaudit analyze --group component,state

  # Write the configured report files
  ngaudit analyze --report-dir ./reports`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runAnalyze(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown, html, table, dot, mermaid")
	cmd.Flags().String("severity", "", "Minimum severity shown: error, warning, info, hint")
	cmd.Flags().String("fail-on", "", "Exit non-zero when a finding reaches this severity")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVarP(&opts.Groups, "group", "g", nil, "Only run rules of these groups: component, performance, state, architecture")
	cmd.Flags().StringVar(&opts.ReportDir, "report-dir", "", "Write report files (report.formats) to this directory")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "Do not record this run")

	_ = cmd.RegisterFlagCompletionFunc("group", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return rules.Default().Groups(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// rootOption points the engine at path when one was given.
func rootOption(path string) EngineOption {
	return func(c *engine.Config) {
		if path == "" {
			return
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		c.Root = path
	}
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions) error {
	engOpts := []EngineOption{
		rootOption(opts.Path),
		withDisabledRules(normalizeIDs(opts.Disable)),
		withGroups(opts.Groups),
	}
	if opts.NoHistory {
		engOpts = append(engOpts, withoutHistory())
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd, engOpts...)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg := cmdCtx.Cfg
	res, err := cmdCtx.Engine.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	rep := report.New(res)
	if opts.ReportDir != "" {
		paths, err := report.WriteFiles(opts.ReportDir, cfg.Report.Formats, rep)
		if err != nil {
			return err
		}
		for _, p := range paths {
			cmdCtx.Logger.Info("report written", "path", p)
		}
	}

	// The display honours the minimum severity; the exit code does not.
	shown := *rep
	shown.Diagnostics = lint.FilterBySeverity(rep.Diagnostics, cfg.MinSeverity)

	if err := renderAnalysis(cmd, cmdCtx, opts.Format, &shown); err != nil {
		return err
	}

	if lint.HasAtLeast(res.Diagnostics, cfg.FailOn) {
		return fmt.Errorf("%w (%s)", ErrFindings, cfg.FailOn)
	}
	return nil
}

func renderAnalysis(cmd *cobra.Command, cmdCtx *CommandContext, format string, rep *report.Report) error {
	switch format {
	case report.FormatHTML, report.FormatTable, report.FormatDOT, report.FormatMermaid:
		return report.Write(cmd.OutOrStdout(), format, rep)
	}

	r := cmdCtx.rendererFor(cmd, format)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return report.WriteJSON(r.Writer(), rep)
	case output.ModeMarkdown:
		return report.WriteMarkdown(r.Writer(), rep)
	default:
		renderAnalysisText(r, rep)
		return nil
	}
}

func renderAnalysisText(r *output.Renderer, rep *report.Report) {
	styles := r.Styles()
	m := rep.Metrics

	r.Header(1, "Analysis")
	r.Println(output.FormatKeyValue(styles, "Root", styles.Path.Render(rep.Root)))
	r.Println(output.FormatKeyValue(styles, "Profile", rep.Profile))
	r.Println(output.FormatKeyValue(styles, "Files", fmt.Sprintf("%d (%d imports)", m.Files, m.Edges)))
	r.Println(output.FormatKeyValue(styles, "Entities", fmt.Sprintf(
		"%d (%d components, %d services, %d modules, %d pipes, %d directives)",
		m.Entities, m.Components, m.Services, m.Modules, m.Pipes, m.Directives)))
	if m.Components > 0 {
		r.Println(output.FormatKeyValue(styles, "Components", fmt.Sprintf(
			"avg complexity %.1f, %.0f%% OnPush", m.AvgComplexity, m.OnPushPercent)))
	}
	r.Println(output.FormatKeyValue(styles, "Graph", fmt.Sprintf(
		"%d cycles, %d orphans, max depth %d", m.Cycles, m.Orphans, m.MaxDepth)))
	r.Println("")

	if len(rep.Errors) > 0 {
		r.Println(styles.Header2.Render("Skipped files"))
		for _, e := range rep.Errors {
			r.Printf("  %s  %s  %s\n", styles.Path.Render(e.Path), styles.Muted.Render(e.Type), e.Message)
		}
		r.Println("")
	}

	if len(rep.Diagnostics) == 0 {
		r.Success("No issues found")
		return
	}

	current := "\x00"
	for _, d := range rep.Diagnostics {
		if d.FilePath != current {
			if current != "\x00" {
				r.Println("")
			}
			current = d.FilePath
			label := d.FilePath
			if label == "" {
				label = "(project)"
			}
			r.Println(styles.Path.Render(label))
		}
		subject := ""
		if d.Entity != "" {
			subject = styles.Muted.Render(d.Entity) + "  "
		}
		r.Printf("  %s  %s  %s%s\n",
			severityStyle(styles, d.Severity).Render(fmt.Sprintf("%-7s", d.Severity)),
			styles.Bold.Render(d.RuleID),
			subject,
			d.Message,
		)
	}
	r.Println("")

	r.Printf("Summary: %s\n", severitySummary(lint.CountBySeverity(rep.Diagnostics)))
}

// severitySummary formats "5 issues, 1 errors, 4 warnings".
func severitySummary(counts map[core.Severity]int) string {
	total := 0
	for _, n := range counts {
		total += n
	}
	parts := []string{fmt.Sprintf("%d issues", total)}
	for _, sev := range []core.Severity{core.SeverityError, core.SeverityWarning, core.SeverityInfo, core.SeverityHint} {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	return strings.Join(parts, ", ")
}

func severityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	case core.SeverityInfo:
		return styles.Info
	default:
		return styles.Hint
	}
}

// normalizeIDs trims and upper-cases rule ids, splitting comma lists.
func normalizeIDs(ids []string) []string {
	var out []string
	for _, id := range ids {
		for _, part := range strings.Split(id, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, strings.ToUpper(part))
			}
		}
	}
	return out
}
