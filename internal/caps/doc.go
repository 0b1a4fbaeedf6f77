// Package caps implements the capability algebra over declared parts:
// part and record registry, capability lists (path + mode entries),
// narrowing with exact remainder computation, and resolution of part
// paths to struct field selectors.
//
// The package is pure bookkeeping: no diagnostics, no IO. Callers
// (internal/sema) validate declarations and map failures to diagnostics;
// generated code (internal/gen) consumes resolved selectors and computed
// remainders. Lists passed to Narrow are assumed well-formed in the sema
// sense; internal invariant violations panic.
package caps
