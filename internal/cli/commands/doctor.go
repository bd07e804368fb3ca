package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/internal/report"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/spf13/cobra"
)

// DoctorOptions holds options for the doctor command.
type DoctorOptions struct {
	Path   string
	Format string // Output format: text, json, markdown
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Summary         report.Metrics `json:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks"`
	Score           int            `json:"score"`
	Recommendations []string       `json:"recommendations"`
	IssueCount      int            `json:"issue_count"`
}

// HealthCheck is the outcome of one enabled rule.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`

	fix   string
	worst core.Severity
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	opts := &DoctorOptions{}
	cmd := &cobra.Command{
		Use:   "doctor [path]",
		Short: "Run a project health check",
		Long: `Run every enabled rule and summarize the project's health:
- Project summary (entities, files, graph structure)
- Health checks grouped by rule group
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  ngaudit doctor

  # Output as JSON
  ngaudit doctor --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runDoctor(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func runDoctor(cmd *cobra.Command, opts *DoctorOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd, rootOption(opts.Path), withoutHistory())
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := cmdCtx.Engine.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := buildDoctorOutput(report.New(res), cmdCtx.Engine.Analyzer().EnabledRules())

	r := cmdCtx.rendererFor(cmd, opts.Format)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, out)
	default:
		renderDoctorText(r, out)
	}
	return nil
}

func buildDoctorOutput(rep *report.Report, rules []lint.RuleDef) *DoctorOutput {
	byRule := make(map[string][]lint.Diagnostic)
	for _, d := range rep.Diagnostics {
		byRule[d.RuleID] = append(byRule[d.RuleID], d)
	}

	checks := make([]HealthCheck, 0, len(rules))
	for _, rule := range rules {
		diags := byRule[rule.ID]
		check := HealthCheck{
			RuleID:     rule.ID,
			Name:       rule.Name,
			Group:      rule.Group,
			Status:     "pass",
			IssueCount: len(diags),
			fix:        rule.Fix,
			worst:      core.SeverityHint,
		}
		for _, d := range diags {
			check.Details = append(check.Details, diagnosticDetail(d))
			if d.Severity < check.worst {
				check.worst = d.Severity
			}
		}
		if len(diags) > 0 {
			check.Status = "warn"
			if check.worst == core.SeverityError {
				check.Status = "error"
			}
		}
		checks = append(checks, check)
	}

	sort.SliceStable(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return checks[i].Group < checks[j].Group
		}
		return checks[i].RuleID < checks[j].RuleID
	})

	return &DoctorOutput{
		Summary:         rep.Metrics,
		HealthChecks:    checks,
		Score:           healthScore(checks, rep.Metrics.Entities),
		Recommendations: recommendations(checks),
		IssueCount:      len(rep.Diagnostics),
	}
}

func diagnosticDetail(d lint.Diagnostic) string {
	var where []string
	if d.FilePath != "" {
		where = append(where, d.FilePath)
	}
	if d.Entity != "" {
		where = append(where, d.Entity)
	}
	if len(where) == 0 {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", strings.Join(where, " "), d.Message)
}

// healthScore computes a score from 0 to 100. Each issue costs a penalty
// that shrinks as the project grows; errors cost double and info or hint
// findings cost nothing.
func healthScore(checks []HealthCheck, entities int) int {
	penalty := 5.0
	switch {
	case entities > 100:
		penalty = 1.0
	case entities > 50:
		penalty = 2.0
	case entities > 10:
		penalty = 3.0
	}

	score := 100.0
	for _, c := range checks {
		switch {
		case c.IssueCount == 0:
		case c.worst == core.SeverityError:
			score -= float64(c.IssueCount) * penalty * 2
		case c.worst == core.SeverityWarning:
			score -= float64(c.IssueCount) * penalty
		}
	}
	return int(max(0, min(100, score)))
}

// recommendations returns the fix guidance of failing rules, worst first,
// at most five.
func recommendations(checks []HealthCheck) []string {
	failing := make([]HealthCheck, 0, len(checks))
	for _, c := range checks {
		if c.IssueCount > 0 && c.fix != "" {
			failing = append(failing, c)
		}
	}
	sort.SliceStable(failing, func(i, j int) bool {
		if failing[i].worst != failing[j].worst {
			return failing[i].worst < failing[j].worst
		}
		return failing[i].IssueCount > failing[j].IssueCount
	})

	recs := []string{}
	seen := make(map[string]bool)
	for _, c := range failing {
		if seen[c.fix] {
			continue
		}
		seen[c.fix] = true
		recs = append(recs, fmt.Sprintf("%s: %s", c.RuleID, c.fix))
		if len(recs) == 5 {
			break
		}
	}
	return recs
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()
	m := out.Summary

	r.Println("")
	r.Println(styles.Header1.Render("ngaudit Project Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Header2.Render("Project Summary"))
	r.Printf("   Components: %d | Services: %d | Modules: %d | Pipes: %d | Directives: %d\n",
		m.Components, m.Services, m.Modules, m.Pipes, m.Directives)
	r.Printf("   Files: %d | Imports: %d | Cycles: %d | Orphans: %d | Max depth: %d\n",
		m.Files, m.Edges, m.Cycles, m.Orphans, m.MaxDepth)
	r.Println("")

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + output.Title(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case "warn":
			icon = styles.Warning.Render("!")
		case "error":
			icon = styles.Error.Render("✗")
		}

		line := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			line += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + line)

		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	m := out.Summary

	r.Println("# ngaudit Project Health Report")
	r.Println("")

	r.Println("## Project Summary")
	r.Println("")
	r.Printf("- **Entities**: %d (%d components, %d services, %d modules, %d pipes, %d directives)\n",
		m.Entities, m.Components, m.Services, m.Modules, m.Pipes, m.Directives)
	r.Printf("- **Files**: %d, **Imports**: %d\n", m.Files, m.Edges)
	r.Printf("- **Cycles**: %d, **Orphans**: %d, **Max depth**: %d\n", m.Cycles, m.Orphans, m.MaxDepth)
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Printf("### %s\n\n", output.Title(currentGroup))
		}
		mark := "x"
		if check.IssueCount > 0 {
			mark = " "
		}
		line := fmt.Sprintf("- [%s] **%s** %s", mark, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			line += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println(line)
	}
	r.Println("")

	r.Printf("## Health Score: %d/100\n\n", out.Score)

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}
}
