// Package testutil provides deterministic helpers shared by tests and the
// conformance harness: a logical sequence, sequential identifiers and a
// fixture directory snapshot.
package testutil
