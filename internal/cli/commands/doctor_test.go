package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"github.com/leapstack-labs/ngaudit/pkg/lint"
)

func TestDoctor_JSON(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, NewDoctorCommand(), cfg, "--format", "json")
	require.NoError(t, err, "doctor reports findings without failing")

	var got DoctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.Summary.Entities)
	// NA01 costs 10; NA05, NP07, NS02 and NS03 cost 5 each.
	assert.Equal(t, 70, got.Score)

	byID := map[string]HealthCheck{}
	for _, c := range got.HealthChecks {
		byID[c.RuleID] = c
	}
	assert.Equal(t, "error", byID["NA01"].Status)
	assert.Equal(t, "warn", byID["NA05"].Status)
	assert.Equal(t, "warn", byID["NP07"].Status)
	assert.Equal(t, "pass", byID["NC01"].Status)
	require.NotEmpty(t, got.Recommendations)
	assert.Contains(t, got.Recommendations[0], "NA01: ")
}

func TestDoctor_Markdown(t *testing.T) {
	cfg := testConfig(t)

	out, err := execute(t, NewDoctorCommand(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Health Score")
	assert.Contains(t, out, "NA01")
}

func TestHealthScore(t *testing.T) {
	tests := []struct {
		name     string
		checks   []HealthCheck
		entities int
		want     int
	}{
		{"clean", []HealthCheck{{IssueCount: 0}}, 3, 100},
		{"small project warning", []HealthCheck{{IssueCount: 2, worst: core.SeverityWarning}}, 5, 90},
		{"errors cost double", []HealthCheck{{IssueCount: 1, worst: core.SeverityError}}, 20, 94},
		{"info is free", []HealthCheck{{IssueCount: 9, worst: core.SeverityInfo}}, 5, 100},
		{"large project", []HealthCheck{{IssueCount: 10, worst: core.SeverityWarning}}, 200, 90},
		{"clamped", []HealthCheck{{IssueCount: 50, worst: core.SeverityError}}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, healthScore(tt.checks, tt.entities))
		})
	}
}

func TestRecommendations(t *testing.T) {
	checks := []HealthCheck{
		{RuleID: "NC03", IssueCount: 4, worst: core.SeverityInfo, fix: "add OnPush"},
		{RuleID: "NA01", IssueCount: 1, worst: core.SeverityError, fix: "break the cycle"},
		{RuleID: "NC01", IssueCount: 0, worst: core.SeverityHint, fix: "split it"},
		{RuleID: "NC04", IssueCount: 2, worst: core.SeverityWarning, fix: "fewer inputs"},
	}

	assert.Equal(t, []string{
		"NA01: break the cycle",
		"NC04: fewer inputs",
		"NC03: add OnPush",
	}, recommendations(checks))
}

func TestDiagnosticDetail(t *testing.T) {
	assert.Equal(t, "a.ts Foo: too big", diagnosticDetail(lint.Diagnostic{FilePath: "a.ts", Entity: "Foo", Message: "too big"}))
	assert.Equal(t, "cycle", diagnosticDetail(lint.Diagnostic{Message: "cycle"}))
}
