// Package core defines the shared language of the ngaudit system.
//
// This package contains:
//   - Source file identity (SourceFile, FileKind)
//   - Framework entities (Component, Service, Module, Pipe, Directive)
//   - Raw import/export facts and resolved dependency edges
//   - The per-run ProjectModel
//   - Configuration types shared between the CLI and the lint layer
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
