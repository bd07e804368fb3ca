// Package performance provides performance heuristics over the project model.
//
// Per-component rules flag heavy components; project rules look at the
// distribution of change detection and module sizes.
package performance
