package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/leapstack-labs/ngaudit/internal/report"
	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

// OutputModes lists the accepted values of the output key.
var OutputModes = []string{"auto", "text", "markdown", "json"}

// Resolutions lists the accepted values of graph.resolution.
var Resolutions = []string{"filename", "path"}

// Validate checks if the configuration is valid. Every problem is reported.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(lint.ProfileNames(), c.Profile) {
		errs = append(errs, fmt.Errorf("profile: unknown %q (available: %v)", c.Profile, lint.ProfileNames()))
	}
	if !slices.Contains(OutputModes, c.OutputFormat) {
		errs = append(errs, fmt.Errorf("output: unknown mode %q (available: %v)", c.OutputFormat, OutputModes))
	}
	if !slices.Contains(Resolutions, c.Graph.Resolution) {
		errs = append(errs, fmt.Errorf("graph.resolution: unknown strategy %q (available: %v)", c.Graph.Resolution, Resolutions))
	}
	if c.Graph.TopN < 0 {
		errs = append(errs, fmt.Errorf("graph.top_n: must not be negative, got %d", c.Graph.TopN))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers: must not be negative, got %d", c.Workers))
	}
	for _, f := range c.Report.Formats {
		if !slices.Contains(report.Formats(), f) {
			errs = append(errs, fmt.Errorf("report.formats: unknown format %q (available: %v)", f, report.Formats()))
		}
	}
	for _, id := range sortedRuleIDs(c.Rules) {
		if sev := c.Rules[id].Severity; sev != "" {
			if _, ok := core.ParseSeverity(sev); !ok {
				errs = append(errs, fmt.Errorf("rules.%s.severity: invalid severity %q", id, sev))
			}
		}
	}

	return errors.Join(errs...)
}

func sortedRuleIDs(rules map[string]RuleConfig) []string {
	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
