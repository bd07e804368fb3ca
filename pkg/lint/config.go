package lint

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/ngaudit/pkg/core"
)

// Config controls which rules are enabled, their severity and options.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds per-rule thresholds
	RuleOptions map[string]core.RuleOptions
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]core.RuleOptions),
	}
}

// ConfigFromRules converts per-rule settings, as loaded from a profile and
// the config file, into an analyzer configuration.
func ConfigFromRules(rules map[string]core.RuleConfig) (*Config, error) {
	cfg := NewConfig()

	ids := make([]string, 0, len(rules))
	for id := range rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		rc := rules[id]
		if !rc.IsEnabled() {
			cfg.Disable(id)
		}
		if rc.Severity != "" {
			sev, ok := core.ParseSeverity(rc.Severity)
			if !ok {
				return nil, fmt.Errorf("rule %s: invalid severity %q", id, rc.Severity)
			}
			cfg.SetSeverity(id, sev)
		}
		if len(rc.Options) > 0 {
			cfg.SetRuleOptions(id, rc.Options)
		}
	}
	return cfg, nil
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// CapSeverity returns sev, lowered to the configured severity of ruleID
// when that is less severe.
func (c *Config) CapSeverity(ruleID string, sev core.Severity) core.Severity {
	if c != nil {
		if limit, ok := c.SeverityOverrides[ruleID]; ok && limit > sev {
			return limit
		}
	}
	return sev
}

// GetRuleOptions returns the options configured for a rule.
func (c *Config) GetRuleOptions(ruleID string) core.RuleOptions {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// Enable re-enables a rule by ID.
func (c *Config) Enable(ruleID string) *Config {
	delete(c.DisabledRules, ruleID)
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions sets the options for a rule.
func (c *Config) SetRuleOptions(ruleID string, opts core.RuleOptions) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}
