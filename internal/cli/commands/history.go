package commands

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/ngaudit/internal/cli/output"
	"github.com/leapstack-labs/ngaudit/internal/state"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit  int
	Format string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	opts := &HistoryOptions{}
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis runs",
		Long: `List the analysis runs recorded in the history database, newest first.

Runs are recorded by analyze and serve unless history is disabled
(history.enabled: false) or --no-history is given.`,
		Example: `  # Last 10 runs
  ngaudit history

  # Every run as JSON
  ngaudit history --limit 0 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "Number of runs to show (0 for all)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json, markdown")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	store := cmdCtx.Engine.Store()
	if store == nil {
		return fmt.Errorf("run history is disabled (history.enabled: false)")
	}

	runs, err := store.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if runs == nil {
		runs = []*state.Run{}
	}

	r := cmdCtx.rendererFor(cmd, opts.Format)
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(runs)
	}

	r.Header(1, fmt.Sprintf("Run History (%d)", len(runs)))
	if len(runs) == 0 {
		r.Muted("No runs recorded yet")
		return nil
	}

	rows := make([][]any, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []any{
			shortID(run.ID),
			run.StartedAt.Local().Format(time.DateTime),
			run.Profile,
			run.Files,
			run.Entities,
			run.Cycles,
			run.Errors,
			run.Warnings,
			run.Duration.Round(time.Millisecond),
		})
	}
	r.Table([]string{"Run", "Started", "Profile", "Files", "Entities", "Cycles", "Errors", "Warnings", "Duration"}, rows)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
