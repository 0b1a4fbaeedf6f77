// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: Severity + Code + Message + Primary span
// + optional Notes and Fixes. Producers emit through a Reporter so they stay
// decoupled from storage; BagReporter aggregates into a Bag, which supports
// sorting, deduplication and merging.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// Keep the data model deterministic: diagnostics are serialised for caching
// and golden tests.
package diag
