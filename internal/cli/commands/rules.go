package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
	"github.com/leapstack-labs/ngaudit/pkg/lint/rules"
	"github.com/spf13/cobra"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group   string // Filter by group
	Details bool   // Show rationale and description
	Format  string // Output format
}

// RuleView is a rule with its settings under the active profile.
type RuleView struct {
	core.RuleInfo
	Enabled  bool             `json:"enabled"`
	Severity core.Severity    `json:"severity"`
	Options  core.RuleOptions `json:"options,omitempty"`
}

// RulesJSONOutput is the JSON output structure for rules listing.
type RulesJSONOutput struct {
	Profile string         `json:"profile"`
	Rules   []RuleView     `json:"rules"`
	Count   map[string]int `json:"count"`
	Total   int            `json:"total"`
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules with their documentation.

Rules are organized by group (component, performance, state, architecture).
Each rule is shown with its severity and options under the active profile
and configuration. Use --details to see the description and rationale.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List all rules
  ngaudit rules

  # Show details for a specific rule
  ngaudit rules NC01

  # List architecture rules as configured by the strict profile
  ngaudit rules --group architecture --profile strict

  # Output as JSON
  ngaudit rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().BoolVarP(&opts.Details, "details", "d", false, "Show description and rationale")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

// ruleViews returns every rule as configured by the active profile and the
// rules section of the configuration.
func ruleViews(cmdCtx *CommandContext) ([]RuleView, error) {
	base, err := lint.ProfileRules(cmdCtx.Cfg.Profile)
	if err != nil {
		return nil, err
	}
	lcfg, err := lint.ConfigFromRules(lint.MergeRules(base, cmdCtx.Cfg.Rules))
	if err != nil {
		return nil, err
	}

	all := rules.All()
	views := make([]RuleView, 0, len(all))
	for _, rule := range all {
		views = append(views, RuleView{
			RuleInfo: rule.Info(),
			Enabled:  !lcfg.IsDisabled(rule.ID),
			Severity: lcfg.GetSeverity(rule.ID, rule.Severity),
			Options:  lcfg.GetRuleOptions(rule.ID),
		})
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Group != views[j].Group {
			return views[i].Group < views[j].Group
		}
		return views[i].ID < views[j].ID
	})
	return views, nil
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	r := cmdCtx.rendererFor(cmd, opts.Format)

	views, err := ruleViews(cmdCtx)
	if err != nil {
		return err
	}
	if opts.Group != "" {
		filtered := views[:0]
		for _, v := range views {
			if v.Group == opts.Group {
				filtered = append(filtered, v)
			}
		}
		views = filtered
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listRulesJSON(r, cmdCtx.Cfg.Profile, views)
	case output.ModeMarkdown:
		listRulesMarkdown(r, cmdCtx.Cfg.Profile, views, opts.Details)
	default:
		listRulesText(r, cmdCtx.Cfg.Profile, views, opts.Details)
	}
	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx := NewCommandContextWithoutEngine(cmd)
	r := cmdCtx.rendererFor(cmd, opts.Format)

	views, err := ruleViews(cmdCtx)
	if err != nil {
		return err
	}

	var rule *RuleView
	for i := range views {
		if strings.EqualFold(views[i].ID, ruleID) || views[i].Name == ruleID {
			rule = &views[i]
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("rule %q not found", ruleID)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(rule)
	case output.ModeMarkdown:
		showRuleMarkdown(r, rule)
	default:
		showRuleText(r, rule)
	}
	return nil
}

// listRulesText outputs rules in styled text format.
func listRulesText(r *output.Renderer, profile string, views []RuleView, verbose bool) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("Lint Rules (%d, profile %s)", len(views), profile)))
	r.Println("")

	currentGroup := ""
	for _, rule := range views {
		if rule.Group != currentGroup {
			currentGroup = rule.Group
			r.Println(styles.Header2.Render(output.Title(currentGroup)))
		}

		sev := severityStyle(styles, rule.Severity).Render(rule.Severity.String())
		if !rule.Enabled {
			sev = styles.Muted.Render("off")
		}
		r.Printf("  %s  %s - %s\n", styles.Muted.Render(rule.ID), rule.Name, sev)

		if verbose {
			r.Println(styles.Muted.Render("      " + rule.Description))
			if rule.Rationale != "" {
				r.Println(styles.Muted.Render("      Why: " + truncateOneLine(rule.Rationale, 80)))
			}
			r.Println("")
		}
	}

	r.Println("")
	r.Println(styles.Muted.Render("Use 'ngaudit rules <rule-id>' for detailed documentation"))
}

// listRulesMarkdown outputs rules in markdown format.
func listRulesMarkdown(r *output.Renderer, profile string, views []RuleView, verbose bool) {
	r.Println(output.FormatHeader(1, "Lint Rules"))
	r.Println("")
	r.Printf("Profile: `%s`\n\n", profile)

	currentGroup := ""
	for _, rule := range views {
		if rule.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = rule.Group
			r.Println(output.FormatHeader(2, output.Title(currentGroup)))
			r.Println("")
		}

		state := rule.Severity.String()
		if !rule.Enabled {
			state = "off"
		}
		r.Printf("- **%s** - %s (`%s`)\n", rule.ID, rule.Name, state)
		if verbose {
			r.Println("  " + rule.Description)
			if rule.Rationale != "" {
				r.Println("  > " + rule.Rationale)
			}
		}
	}
	r.Println("")
}

// listRulesJSON outputs rules in JSON format.
func listRulesJSON(r *output.Renderer, profile string, views []RuleView) error {
	out := RulesJSONOutput{Profile: profile, Rules: views, Count: map[string]int{}, Total: len(views)}
	for _, v := range views {
		out.Count[v.Group]++
	}
	return r.JSON(out)
}

// showRuleText displays detailed rule info in text format.
func showRuleText(r *output.Renderer, rule *RuleView) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render(fmt.Sprintf("%s - %s", rule.ID, rule.Name)))
	r.Println("")

	r.Printf("  %s\n", output.FormatKeyValue(styles, "Group", rule.Group))
	r.Printf("  %s\n", output.FormatKeyValue(styles, "Scope", rule.Scope))
	r.Printf("  %s\n", output.FormatKeyValue(styles, "Default severity", rule.DefaultSeverity))
	r.Printf("  %s\n", output.FormatKeyValue(styles, "Configured", configuredState(rule)))
	r.Println("")

	r.Println(styles.Bold.Render("Description"))
	r.Println("  " + rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println(styles.Bold.Render("Why This Matters"))
		r.Println("  " + rule.Rationale)
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println(styles.Bold.Render("How to Fix"))
		r.Println("  " + rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println(styles.Bold.Render("Configuration"))
		for _, key := range rule.ConfigKeys {
			r.Printf("  %s\n", optionLine(rule, key))
		}
		r.Println("")
	}
}

// showRuleMarkdown displays detailed rule info in markdown format.
func showRuleMarkdown(r *output.Renderer, rule *RuleView) {
	r.Printf("# %s - %s\n\n", rule.ID, rule.Name)
	r.Printf("**Group:** %s | **Default:** `%s` | **Configured:** `%s`\n\n",
		rule.Group, rule.DefaultSeverity, configuredState(rule))
	r.Println(rule.Description)
	r.Println("")

	if rule.Rationale != "" {
		r.Println("## Why This Matters")
		r.Println("")
		r.Println(rule.Rationale)
		r.Println("")
	}

	if rule.Fix != "" {
		r.Println("## How to Fix")
		r.Println("")
		r.Println(rule.Fix)
		r.Println("")
	}

	if len(rule.ConfigKeys) > 0 {
		r.Println("## Configuration")
		r.Println("")
		for _, key := range rule.ConfigKeys {
			r.Printf("- `%s`\n", optionLine(rule, key))
		}
		r.Println("")
	}
}

func configuredState(rule *RuleView) string {
	if !rule.Enabled {
		return "disabled"
	}
	return rule.Severity.String()
}

func optionLine(rule *RuleView, key string) string {
	if v, ok := rule.Options[key]; ok {
		return fmt.Sprintf("%s: %v", key, v)
	}
	return key
}

func truncateOneLine(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
