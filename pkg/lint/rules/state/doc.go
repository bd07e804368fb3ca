// Package state provides rules about state services and subscriptions.
//
// A service counts as a state service when a method name mentions get, set,
// update or state, or when its own name mentions a subject, observable,
// state, store or cache.
package state
