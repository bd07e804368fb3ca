package lint

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores lint rules. Each analyzer owns its registry; there is no
// process-wide rule table.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef // keyed by ID
}

// NewRegistry creates a registry holding rules. It panics on a duplicate ID.
func NewRegistry(rules ...RuleDef) *Registry {
	r := &Registry{rules: make(map[string]RuleDef, len(rules))}
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a rule.
func (r *Registry) Register(rule RuleDef) error {
	if rule.ID == "" || rule.Check == nil {
		return fmt.Errorf("rule %q: ID and Check are required", rule.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[rule.ID]; exists {
		return fmt.Errorf("rule %s already registered", rule.ID)
	}
	r.rules[rule.ID] = rule
	return nil
}

// All returns all rules sorted by ID.
func (r *Registry) All() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]RuleDef, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

// Get returns a rule by ID or name.
func (r *Registry) Get(key string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.rules[key]; ok {
		return rule, true
	}
	for _, rule := range r.rules {
		if rule.Name == key {
			return rule, true
		}
	}
	return RuleDef{}, false
}

// ByGroup returns the rules of one group sorted by ID.
func (r *Registry) ByGroup(group string) []RuleDef {
	var out []RuleDef
	for _, rule := range r.All() {
		if rule.Group == group {
			out = append(out, rule)
		}
	}
	return out
}

// Groups returns the distinct group names in rule ID order.
func (r *Registry) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, rule := range r.All() {
		if !seen[rule.Group] {
			seen[rule.Group] = true
			groups = append(groups, rule.Group)
		}
	}
	return groups
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
