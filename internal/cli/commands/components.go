package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/internal/report"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/spf13/cobra"
)

// ComponentsOptions holds options for the components command.
type ComponentsOptions struct {
	Path   string
	Kind   string // component, service, module, pipe, directive
	Format string
}

// ComponentsJSONOutput is the JSON output of the components command.
type ComponentsJSONOutput struct {
	Entities []report.EntityRow `json:"entities"`
	Counts   map[string]int     `json:"counts"`
	Total    int                `json:"total"`
}

// NewComponentsCommand creates the components command.
func NewComponentsCommand() *cobra.Command {
	opts := &ComponentsOptions{}
	cmd := &cobra.Command{
		Use:     "components [path]",
		Aliases: []string{"entities"},
		Short:   "List extracted components, services, modules, pipes and directives",
		Long: `List every framework entity extracted from the project with its file,
dependency count and, for components, complexity and change detection.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)`,
		Example: `  # List every entity
  ngaudit components

  # Only services
  ngaudit components --kind service

  # As JSON
  ngaudit components --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runComponents(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Kind, "kind", "k", "", "Filter by kind: component, service, module, pipe, directive")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		kinds := make([]string, 0, len(core.AllEntityKinds))
		for _, k := range core.AllEntityKinds {
			kinds = append(kinds, k.String())
		}
		return kinds, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runComponents(cmd *cobra.Command, opts *ComponentsOptions) error {
	var kind *core.EntityKind
	if opts.Kind != "" {
		k, ok := core.ParseEntityKind(opts.Kind)
		if !ok {
			return fmt.Errorf("unknown kind %q", opts.Kind)
		}
		kind = &k
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd, rootOption(opts.Path), withoutHistory())
	if err != nil {
		return err
	}
	defer cleanup()

	model, discovery, err := cmdCtx.Engine.BuildModel(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build project model: %w", err)
	}
	cmdCtx.Logger.Debug("model built", "summary", discovery.Summary())

	out := ComponentsJSONOutput{Entities: []report.EntityRow{}, Counts: map[string]int{}}
	rows := report.EntityRows(model)
	if kind != nil {
		rows = report.EntityRowsOf(model, *kind)
	}
	for _, row := range rows {
		out.Entities = append(out.Entities, row)
		out.Counts[row.Kind]++
	}
	out.Total = len(out.Entities)

	r := cmdCtx.rendererFor(cmd, opts.Format)
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(out)
	}

	title := fmt.Sprintf("Entities (%d total)", out.Total)
	if kind != nil {
		title = fmt.Sprintf("%s (%d total)", output.Title(kind.String()+"s"), out.Total)
	}
	r.Header(1, title)

	if out.Total == 0 {
		r.Muted("No entities found")
		return nil
	}

	rows := make([][]any, 0, len(out.Entities))
	for _, e := range out.Entities {
		complexity, cd := "-", "-"
		if e.Kind == core.KindComponent.String() {
			complexity = strconv.Itoa(e.Complexity)
			cd = e.ChangeDetection
		}
		rows = append(rows, []any{e.Name, e.Kind, e.File, e.Dependencies, complexity, cd})
	}
	r.Table([]string{"Name", "Kind", "File", "Deps", "Complexity", "Change Detection"}, rows)
	return nil
}
