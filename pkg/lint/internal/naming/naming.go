// Package naming provides the name heuristics shared by lint rules.
package naming

import "strings"

// Dependency hints used by several rule groups.
var (
	SubscriptionHints = []string{"service", "http"}
	StateHints        = []string{"state", "store", "service"}
)

// ContainsAny reports whether s contains any of subs, ignoring case.
// subs must be lowercase.
func ContainsAny(s string, subs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// AnyContains reports whether any name in names contains one of subs.
func AnyContains(names []string, subs ...string) bool {
	for _, n := range names {
		if ContainsAny(n, subs...) {
			return true
		}
	}
	return false
}
