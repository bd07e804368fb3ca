// Package component provides per-component lint rules.
//
//   - NC01: Component Complexity - complexity above max_complexity
//   - NC02: Critical Complexity - complexity above twice max_complexity
//   - NC03: Change Detection Strategy - component uses default change detection
//   - NC04: Too Many Inputs - more than max_inputs inputs
//   - NC05: Too Many Outputs - more than max_outputs outputs
//   - NC06: Missing Cleanup Pattern - ngOnInit/ngOnDestroy pair without DestroyRef
//   - NC07: Many Lifecycle Hooks - more than max_hooks hooks
//   - NC08: Template Conflict - both template and templateUrl
//   - NC09: Missing Template - neither template nor templateUrl
//   - NC10: Inline Template Too Large - inline template above max_length characters
package component
