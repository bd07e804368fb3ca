package lint

import "github.com/leapstack-labs/ngaudit/pkg/core"

// FilterBySeverity keeps diagnostics at or above min.
func FilterBySeverity(diags []Diagnostic, min core.Severity) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Severity.AtLeast(min) {
			out = append(out, d)
		}
	}
	return out
}

// CountBySeverity tallies diagnostics per severity.
func CountBySeverity(diags []Diagnostic) map[core.Severity]int {
	counts := make(map[core.Severity]int)
	for _, d := range diags {
		counts[d.Severity]++
	}
	return counts
}

// HasAtLeast reports whether any diagnostic is at or above threshold.
func HasAtLeast(diags []Diagnostic, threshold core.Severity) bool {
	for _, d := range diags {
		if d.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}
