package lint

// Option getters for the rule being run. Values decoded from YAML or JSON
// arrive as int, int64, uint64 or float64 depending on the source.

// Int returns the current rule's integer option, or def.
func (c *Context) Int(key string, def int) int {
	return c.opts.Int(key, def)
}

// Float returns the current rule's numeric option as a float, or def.
func (c *Context) Float(key string, def float64) float64 {
	v, ok := c.opts[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	default:
		return def
	}
}

// String returns the current rule's string option, or def.
func (c *Context) String(key string, def string) string {
	if s, ok := c.opts[key].(string); ok {
		return s
	}
	return def
}

// Strings returns the current rule's string list option, or def.
func (c *Context) Strings(key string, def []string) []string {
	switch s := c.opts[key].(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return def
	}
}
