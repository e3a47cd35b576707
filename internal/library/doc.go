// Package library holds the logical asset namespace and the normalizer that
// populates it from parsed containers.
//
// The namespace is a flat name-to-asset registry with last-write-wins
// semantics: later containers intentionally patch earlier ones, so no
// uniqueness is enforced and no collision diagnostics are emitted. It is
// built once, single-writer, then shared read-only with every rendering
// worker.
package library
