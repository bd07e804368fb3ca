// Package architecture provides rules over the file dependency graph and
// the injection relationships between entities.
//
//   - NA01: Circular Dependency - one diagnostic per detected import cycle
//   - NA02: Orphaned File - file with no importers and no exports
//   - NA03: Deep Dependency Chain - file depth above max_depth
//   - NA04: Unused Dependency - component dependency no project class provides or uses
//   - NA05: Missing Template File - templateUrl that does not exist on disk
package architecture
