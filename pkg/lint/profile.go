package lint

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Profile names.
const (
	ProfileStrict      = "strict"
	ProfileRecommended = "recommended"
	ProfileRelaxed     = "relaxed"
)

// DefaultProfile is used when none is configured.
const DefaultProfile = ProfileRecommended

// profiles holds the rule settings of each built-in profile. Rules a
// profile does not mention keep their defaults.
var profiles = map[string]map[string]core.RuleConfig{
	ProfileStrict: {
		"NC01": {Severity: "error", Options: core.RuleOptions{"max_complexity": 8}},
		"NC03": {Severity: "warning"},
		"NC04": {Severity: "error", Options: core.RuleOptions{"max_inputs": 6}},
		"NC06": {Severity: "error"},
		"NA01": {Severity: "error"},
	},
	ProfileRecommended: {
		"NC01": {Severity: "warning", Options: core.RuleOptions{"max_complexity": 10}},
		"NC03": {Severity: "info"},
		"NC04": {Severity: "warning", Options: core.RuleOptions{"max_inputs": 8}},
		"NC06": {Severity: "warning"},
		"NA01": {Severity: "error"},
	},
	ProfileRelaxed: {
		"NC01": {Severity: "info", Options: core.RuleOptions{"max_complexity": 15}},
		"NC03": {Enabled: core.Bool(false)},
		"NA01": {Severity: "warning"},
	},
}

// ProfileNames returns the built-in profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileRules returns a copy of a profile's rule settings.
func ProfileRules(name string) (map[string]core.RuleConfig, error) {
	if name == "" {
		name = DefaultProfile
	}
	p, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q (available: %v)", name, ProfileNames())
	}
	return MergeRules(nil, p), nil
}

// MergeRules overlays override onto base field by field and returns a new
// map. Options are merged key by key.
func MergeRules(base, override map[string]core.RuleConfig) map[string]core.RuleConfig {
	out := make(map[string]core.RuleConfig, len(base)+len(override))
	for id, rc := range base {
		out[id] = copyRuleConfig(rc)
	}
	for id, o := range override {
		rc := out[id]
		if o.Enabled != nil {
			rc.Enabled = core.Bool(*o.Enabled)
		}
		if o.Severity != "" {
			rc.Severity = o.Severity
		}
		if len(o.Options) > 0 {
			if rc.Options == nil {
				rc.Options = core.RuleOptions{}
			}
			for k, v := range o.Options {
				rc.Options[k] = v
			}
		}
		out[id] = rc
	}
	return out
}

func copyRuleConfig(rc core.RuleConfig) core.RuleConfig {
	cp := core.RuleConfig{Severity: rc.Severity}
	if rc.Enabled != nil {
		cp.Enabled = core.Bool(*rc.Enabled)
	}
	if rc.Options != nil {
		cp.Options = make(core.RuleOptions, len(rc.Options))
		for k, v := range rc.Options {
			cp.Options[k] = v
		}
	}
	return cp
}
