package engine

import (
	"github.com/leapstack-labs/ngaudit/internal/dag"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// graphFacts adapts a dag analysis to the path-keyed view lint rules read.
// This keeps pkg/lint independent of internal/dag.
func graphFacts(g *dag.Graph, a *dag.Analysis) lint.GraphFacts {
	facts := lint.GraphFacts{
		Cycles:  make([]lint.CycleFact, 0, len(a.Cycles)),
		Orphans: make([]string, 0, len(a.Orphans)),
		Depths:  make(map[string]int, len(a.Depths)),
	}

	for _, c := range a.Cycles {
		files := make([]string, len(c.Files))
		for i, id := range c.Files {
			files[i] = g.RelPath(id)
		}
		facts.Cycles = append(facts.Cycles, lint.CycleFact{Files: files, Severity: cycleSeverity(c.Severity)})
	}
	for _, id := range a.Orphans {
		facts.Orphans = append(facts.Orphans, g.RelPath(id))
	}
	for id, d := range a.Depths {
		facts.Depths[g.RelPath(id)] = d
	}
	return facts
}

// cycleSeverity maps a cycle grade onto diagnostic severity.
func cycleSeverity(s dag.CycleSeverity) core.Severity {
	switch s {
	case dag.CycleCritical:
		return core.SeverityError
	case dag.CycleWarning:
		return core.SeverityWarning
	default:
		return core.SeverityInfo
	}
}
