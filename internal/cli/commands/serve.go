package commands

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/ngaudit/internal/report"
	"github.com/leapstack-labs/ngaudit/internal/server"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Path string
	Addr string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve [path]",
		Short: "Serve the analysis report over HTTP",
		Long: `Analyze the project once, then serve the HTML report at / and the JSON
analysis at /api/analysis.

Other routes:
  GET  /api/report/{format}  any report format (html, json, markdown, table, dot, mermaid)
  POST /api/refresh          re-run the analysis
  GET  /api/history          recorded runs, when history is enabled
  GET  /healthz              liveness`,
		Example: `  # Serve on the default address
  ngaudit serve

  # Serve another project on all interfaces
  ngaudit serve ./apps/shop --addr :9000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Path = args[0]
			}
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:8420", "Address to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd, rootOption(opts.Path))
	if err != nil {
		return err
	}
	defer cleanup()

	eng := cmdCtx.Engine
	srv := server.New(server.Config{
		Addr: opts.Addr,
		Analyze: func(ctx context.Context) (*report.Report, error) {
			res, err := eng.Run(ctx)
			if err != nil {
				return nil, err
			}
			return report.New(res), nil
		},
		History: eng.Store(),
		Logger:  cmdCtx.Logger,
	})

	if err := srv.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	cmdCtx.Renderer.Success(fmt.Sprintf("Serving report on http://%s (Ctrl+C to stop)", opts.Addr))

	return srv.Serve(cmd.Context())
}
