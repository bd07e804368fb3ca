package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/ngaudit/internal/dag"
	"github.com/leapstack-labs/ngaudit/internal/state"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// RunResult is everything one analysis produced.
type RunResult struct {
	ID          string
	Root        string
	Profile     string
	Model       *core.ProjectModel
	Discovery   *DiscoveryResult
	Graph       *dag.Graph
	Analysis    *dag.Analysis
	Diagnostics []lint.Diagnostic // nil for graph-only runs
	StartedAt   time.Time
	Duration    time.Duration
}

// Counts returns the diagnostic count per severity.
func (r *RunResult) Counts() map[core.Severity]int {
	return lint.CountBySeverity(r.Diagnostics)
}

// Run performs a full analysis: model, graph, graph analysis and rules.
// When history is enabled the run summary is recorded; a failure to record
// is logged and does not fail the run.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	res, err := e.analyzeGraph(ctx)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("running rules", "rules", len(e.analyzer.EnabledRules()))
	lctx := lint.NewContext(res.Model, graphFacts(res.Graph, res.Analysis))
	res.Diagnostics = e.analyzer.Analyze(lctx)
	if res.Diagnostics == nil {
		res.Diagnostics = []lint.Diagnostic{}
	}
	res.Duration = time.Since(res.StartedAt)

	e.logger.Info("run completed",
		"run_id", res.ID,
		"files", len(res.Model.Files),
		"edges", res.Graph.EdgeCount(),
		"diagnostics", len(res.Diagnostics),
		"duration_ms", res.Duration.Milliseconds())

	e.recordRun(ctx, res)
	return res, nil
}

// AnalyzeGraph builds the model and the dependency graph and analyzes it,
// without running rules or recording history.
func (e *Engine) AnalyzeGraph(ctx context.Context) (*RunResult, error) {
	res, err := e.analyzeGraph(ctx)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(res.StartedAt)
	return res, nil
}

func (e *Engine) analyzeGraph(ctx context.Context) (*RunResult, error) {
	res := &RunResult{
		ID:        uuid.NewString(),
		Root:      e.root,
		Profile:   e.cfg.Profile,
		StartedAt: time.Now(),
	}

	model, discovery, err := e.BuildModel(ctx)
	if err != nil {
		return nil, err
	}
	res.Model = model
	res.Discovery = discovery

	res.Graph = dag.BuildGraph(model.Files, model.Imports, e.resolver)
	res.Analysis = dag.Analyze(res.Graph, dag.Options{TopN: e.cfg.TopN})

	e.logger.Debug("graph analyzed",
		"nodes", res.Graph.NodeCount(),
		"edges", res.Graph.EdgeCount(),
		"cycles", len(res.Analysis.Cycles),
		"orphans", len(res.Analysis.Orphans))
	if n := len(res.Analysis.DepthsCapped); n > 0 {
		e.logger.Warn("dependency depth search budget exhausted, depths are lower bounds",
			"files", n,
			"budget", dag.DefaultDepthBudget)
	}

	return res, nil
}

func (e *Engine) recordRun(ctx context.Context, res *RunResult) {
	if e.store == nil {
		return
	}

	counts := res.Counts()
	err := e.store.RecordRun(ctx, &state.Run{
		ID:          res.ID,
		Root:        res.Root,
		Profile:     res.Profile,
		StartedAt:   res.StartedAt,
		Duration:    res.Duration,
		Files:       len(res.Model.Files),
		Edges:       res.Graph.EdgeCount(),
		Entities:    res.Model.EntityCount(),
		Cycles:      len(res.Analysis.Cycles),
		Orphans:     len(res.Analysis.Orphans),
		Diagnostics: len(res.Diagnostics),
		Errors:      counts[core.SeverityError],
		Warnings:    counts[core.SeverityWarning],
	})
	if err != nil {
		e.logger.Warn("failed to record run", "run_id", res.ID, "error", err)
	}
}
