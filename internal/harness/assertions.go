package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/searchquery/internal/directory"
	"github.com/roach88/searchquery/internal/queryir"
	"github.com/roach88/searchquery/internal/savedsearch"
	"github.com/roach88/searchquery/internal/search"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Trace events of the cases involved
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nCases:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %q hash=%d\n", ev.Seq, ev.Case, ev.Input, ev.Hash)
		}
	}
	return buf.String()
}

// AssertionContext carries the run state some assertions need.
type AssertionContext struct {
	Ctx      context.Context
	Registry *savedsearch.Registry
	Queries  map[string]*queryir.SearchQueryJSON
	Dirs     directory.Directories
}

// EvaluateAssertions checks every assertion and returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertSameHash:
			err = assertSameHash(result, a)
		case AssertDistinctHash:
			err = assertDistinctHash(result, a)
		case AssertRoundTrip:
			err = assertRoundTrip(result, a, actx)
		case AssertStandardizeIdempotent:
			err = assertStandardizeIdempotent(result, a, actx)
		case AssertSavedCount:
			err = assertSavedCount(a, actx)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

// events returns the trace events of the named cases, failing on a case that
// did not run or did not build.
func events(result *Result, names []string) ([]TraceEvent, error) {
	evs := make([]TraceEvent, 0, len(names))
	for _, name := range names {
		ev, ok := result.event(name)
		if !ok {
			return nil, fmt.Errorf("case %q not in trace", name)
		}
		if !ev.Valid {
			return nil, fmt.Errorf("case %q did not build", name)
		}
		evs = append(evs, ev)
	}
	return evs, nil
}

func assertSameHash(result *Result, a Assertion) error {
	evs, err := events(result, a.Cases)
	if err != nil {
		return err
	}
	for _, ev := range evs[1:] {
		if ev.Hash != evs[0].Hash {
			return &AssertionError{
				Type:     AssertSameHash,
				Expected: fmt.Sprintf("all of %v hash to %d", a.Cases, evs[0].Hash),
				Actual:   fmt.Sprintf("%s hashes to %d", ev.Case, ev.Hash),
				Trace:    evs,
			}
		}
	}
	return nil
}

func assertDistinctHash(result *Result, a Assertion) error {
	evs, err := events(result, a.Cases)
	if err != nil {
		return err
	}
	seen := make(map[uint32]string, len(evs))
	for _, ev := range evs {
		if other, ok := seen[ev.Hash]; ok {
			return &AssertionError{
				Type:     AssertDistinctHash,
				Expected: fmt.Sprintf("distinct hashes for %v", a.Cases),
				Actual:   fmt.Sprintf("%s and %s both hash to %d", other, ev.Case, ev.Hash),
				Trace:    evs,
			}
		}
		seen[ev.Hash] = ev.Case
	}
	return nil
}

// targetCases returns the named cases, or every valid case in trace order.
func targetCases(result *Result, a Assertion) []string {
	if len(a.Cases) > 0 {
		return a.Cases
	}
	var names []string
	for _, ev := range result.Trace {
		if ev.Valid {
			names = append(names, ev.Case)
		}
	}
	return names
}

func assertRoundTrip(result *Result, a Assertion, actx *AssertionContext) error {
	evs, err := events(result, targetCases(result, a))
	if err != nil {
		return err
	}
	for _, ev := range evs {
		again := search.BuildSearchQueryJSON(ev.Canonical)
		if again == nil || again.Hash != ev.Hash {
			actual := "canonical string does not parse"
			if again != nil {
				actual = fmt.Sprintf("reparsed hash %d", again.Hash)
			}
			return &AssertionError{
				Type:     AssertRoundTrip,
				Expected: fmt.Sprintf("%s keeps hash %d", ev.Case, ev.Hash),
				Actual:   actual,
				Trace:    []TraceEvent{ev},
			}
		}
	}
	return nil
}

func assertStandardizeIdempotent(result *Result, a Assertion, actx *AssertionContext) error {
	evs, err := events(result, targetCases(result, a))
	if err != nil {
		return err
	}
	for _, ev := range evs {
		q := actx.Queries[ev.Case]
		if q == nil {
			return fmt.Errorf("case %q has no built query", ev.Case)
		}
		once := search.StandardizeQueryJSON(q, actx.Dirs)
		twice := search.StandardizeQueryJSON(once, actx.Dirs)
		if got, want := search.BuildSearchQueryString(twice), search.BuildSearchQueryString(once); got != want {
			return &AssertionError{
				Type:     AssertStandardizeIdempotent,
				Expected: want,
				Actual:   got,
				Trace:    []TraceEvent{ev},
			}
		}
	}
	return nil
}

func assertSavedCount(a Assertion, actx *AssertionContext) error {
	saved, err := actx.Registry.List(actx.Ctx)
	if err != nil {
		return fmt.Errorf("list saved searches: %w", err)
	}
	if len(saved) != a.Count {
		return &AssertionError{
			Type:     AssertSavedCount,
			Expected: fmt.Sprintf("%d saved searches", a.Count),
			Actual:   fmt.Sprintf("%d saved searches", len(saved)),
		}
	}
	return nil
}
