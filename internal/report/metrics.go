package report

import (
	"github.com/leapstack-labs/ngaudit/internal/dag"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// Metrics are the headline numbers of a run.
type Metrics struct {
	Files      int `json:"files"`
	Edges      int `json:"edges"`
	Entities   int `json:"entities"`
	Components int `json:"components"`
	Services   int `json:"services"`
	Modules    int `json:"modules"`
	Pipes      int `json:"pipes"`
	Directives int `json:"directives"`

	// AvgComplexity is the mean component complexity; 0 without components.
	AvgComplexity float64 `json:"avg_complexity"`
	// OnPushPercent is the share of components using OnPush, 0 to 100.
	OnPushPercent float64 `json:"onpush_percent"`

	Cycles   int `json:"cycles"`
	Orphans  int `json:"orphans"`
	MaxDepth int `json:"max_depth"`

	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Hints    int `json:"hints"`
}

// ComputeMetrics derives the metrics of a run. diags may be nil.
func ComputeMetrics(m *core.ProjectModel, g *dag.Graph, a *dag.Analysis, diags []lint.Diagnostic) Metrics {
	kinds := m.CountByKind()
	out := Metrics{
		Files:      len(m.Files),
		Edges:      g.EdgeCount(),
		Entities:   m.EntityCount(),
		Components: kinds[core.KindComponent],
		Services:   kinds[core.KindService],
		Modules:    kinds[core.KindModule],
		Pipes:      kinds[core.KindPipe],
		Directives: kinds[core.KindDirective],
		Cycles:     len(a.Cycles),
		Orphans:    len(a.Orphans),
	}
	_, out.MaxDepth = a.MaxDepth()

	if n := len(m.Components); n > 0 {
		total, onPush := 0, 0
		for _, c := range m.Components {
			total += c.Complexity
			if c.ChangeDetection == core.ChangeDetectionOptimized {
				onPush++
			}
		}
		out.AvgComplexity = float64(total) / float64(n)
		out.OnPushPercent = float64(onPush) * 100 / float64(n)
	}

	counts := lint.CountBySeverity(diags)
	out.Errors = counts[core.SeverityError]
	out.Warnings = counts[core.SeverityWarning]
	out.Infos = counts[core.SeverityInfo]
	out.Hints = counts[core.SeverityHint]
	return out
}
