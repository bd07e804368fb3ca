package core

// RuleConfig configures one lint rule.
type RuleConfig struct {
	// Enabled turns the rule on or off. Nil keeps the profile default.
	Enabled *bool `koanf:"enabled" yaml:"enabled,omitempty"`

	// Severity overrides the rule's default severity.
	Severity string `koanf:"severity" yaml:"severity,omitempty"`

	// Options holds rule-specific thresholds.
	Options RuleOptions `koanf:"options" yaml:"options,omitempty"`
}

// RuleOptions holds rule-specific configuration options.
type RuleOptions map[string]any

// Int returns an integer option, or def when absent or not numeric.
func (o RuleOptions) Int(key string, def int) int {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case uint64:
		return int(n)
	default:
		return def
	}
}

// IsEnabled returns whether the rule is enabled, defaulting to true.
func (c RuleConfig) IsEnabled() bool {
	if c.Enabled == nil {
		return true
	}
	return *c.Enabled
}

// Bool returns a pointer to b, for optional config fields.
func Bool(b bool) *bool {
	return &b
}
