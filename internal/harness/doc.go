// Package harness runs conformance scenarios against the query pipeline.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: expense_filters
//	description: "Equivalent queries share a hash"
//	directory:                      # inline snapshot, or
//	  cards: { "100": { bank: Chase } }
//	directory_file: dirs.cue        # a .yaml/.json/.cue file, relative to the scenario
//	cases:
//	  - name: filters
//	    query: 'merchant:"Big Co" cardID:Chase'
//	    save: true
//	    expect:
//	      canonical: 'type:expense status:all sortBy:date sortOrder:desc merchant:"Big Co" cardID:Chase'
//	      standardized: '... cardID:100'
//	  - name: from_form
//	    form: { merchant: Acme, lessThan: "10" }
//	assertions:
//	  - type: same_hash
//	    cases: [filters, reordered]
//	  - type: saved_count
//	    count: 1
//
// Each case's query (or the query serialized from its form) is built,
// serialized, rendered for display, standardized and mapped back to form
// values. Cases marked save are written to an in-memory saved-search
// registry. Every step is recorded in the trace.
//
// # Assertion Types
//
//   - same_hash: the listed cases share one hash
//   - distinct_hash: the listed cases have pairwise different hashes
//   - round_trip: reparsing each case's canonical string keeps its hash
//   - standardize_idempotent: standardizing twice equals standardizing once
//   - saved_count: the registry holds exactly count entries
//
// round_trip and standardize_idempotent apply to every valid case when no
// cases are listed.
//
// # Deterministic Testing
//
// Trace sequence numbers come from a logical counter and saved-search IDs
// are "saved-1", "saved-2", ..., so traces can be compared against golden
// files with RunWithGolden.
package harness
