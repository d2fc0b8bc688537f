package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/roach88/searchquery/internal/directory"
	"github.com/roach88/searchquery/internal/queryir"
	"github.com/roach88/searchquery/internal/savedsearch"
	"github.com/roach88/searchquery/internal/search"
	"github.com/roach88/searchquery/internal/testutil"
)

// Harness holds the state of one scenario run.
type Harness struct {
	registry *savedsearch.Registry
	builder  *search.Builder
	dirs     directory.Directories
	seq      *testutil.Sequence
	logger   *slog.Logger

	// queries holds the built query of every valid case, by case name.
	queries map[string]*queryir.SearchQueryJSON
}

// Run executes a scenario and returns the result.
//
// Each run uses a fresh in-memory saved-search registry. Parse failures are
// not errors: they show up as invalid trace events. Run returns an error only
// when the scenario itself cannot be executed.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context for registry operations.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	dirs, err := scenarioDirectories(scenario)
	if err != nil {
		return nil, err
	}

	reg, err := savedsearch.Open(":memory:", savedsearch.WithIDGenerator(testutil.NewSequentialIDs("saved")))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory registry: %w", err)
	}
	defer reg.Close()

	// Suppress logs in runs; invalid queries are reported through the trace.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := &Harness{
		registry: reg,
		builder:  &search.Builder{Logger: logger},
		dirs:     dirs,
		seq:      &testutil.Sequence{},
		logger:   logger,
		queries:  make(map[string]*queryir.SearchQueryJSON),
	}

	result := NewResult()
	for _, c := range scenario.Cases {
		if err := h.executeCase(ctx, c, result); err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
	}

	actx := &AssertionContext{
		Ctx:      ctx,
		Registry: reg,
		Queries:  h.queries,
		Dirs:     dirs,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}
	return result, nil
}

func scenarioDirectories(s *Scenario) (directory.Directories, error) {
	switch {
	case s.DirectoryFile != "":
		snap, err := directory.Load(s.DirectoryFile)
		if err != nil {
			return directory.Directories{}, fmt.Errorf("failed to load directory: %w", err)
		}
		return snap.Directories(), nil
	case s.Directory != nil:
		return s.Directory.Directories(), nil
	default:
		return directory.Directories{}, nil
	}
}

// executeCase runs one case through the pipeline, records the trace event
// and checks the case's expectations.
func (h *Harness) executeCase(ctx context.Context, c Case, result *Result) error {
	ev := TraceEvent{Seq: h.seq.Next(), Case: c.Name, Input: c.Query}
	if c.Form != nil {
		ev.Input = search.BuildQueryStringFromFilterFormValues(c.Form)
	}

	q := h.builder.Build(ev.Input)
	ev.Valid = q != nil
	if q != nil {
		h.queries[c.Name] = q
		ev.Canonical = search.BuildSearchQueryString(q)
		ev.Display = search.BuildUserReadableQueryString(q, h.dirs)
		ev.Standardized = search.BuildSearchQueryString(search.StandardizeQueryJSON(q, h.dirs))
		ev.Hash = q.Hash
		ev.Canned = search.IsCannedSearchQuery(q)
		ev.Form = search.BuildFilterFormValuesFromQuery(q, h.dirs)

		if c.Save {
			saved, created, err := h.registry.Save(ctx, c.Name, q)
			if err != nil {
				return fmt.Errorf("failed to save search: %w", err)
			}
			ev.SavedID = saved.ID
			ev.Duplicate = !created
		}
	}

	result.Trace = append(result.Trace, ev)
	h.logger.Info("case executed", "case", c.Name, "valid", ev.Valid, "hash", ev.Hash)

	if c.Expect != nil {
		for _, msg := range checkExpectation(c.Name, *c.Expect, ev) {
			result.AddError(msg)
		}
	}
	return nil
}

// checkExpectation compares the set fields of exp against ev.
func checkExpectation(name string, exp Expectation, ev TraceEvent) []string {
	var errs []string
	mismatch := func(field string, want, got any) {
		errs = append(errs, fmt.Sprintf("case %s: %s mismatch: expected %v, got %v", name, field, want, got))
	}

	if exp.Valid != nil && *exp.Valid != ev.Valid {
		mismatch("valid", *exp.Valid, ev.Valid)
	}
	if exp.Input != "" && exp.Input != ev.Input {
		mismatch("input", exp.Input, ev.Input)
	}
	if exp.Canonical != "" && exp.Canonical != ev.Canonical {
		mismatch("canonical", exp.Canonical, ev.Canonical)
	}
	if exp.Display != "" && exp.Display != ev.Display {
		mismatch("display", exp.Display, ev.Display)
	}
	if exp.Standardized != "" && exp.Standardized != ev.Standardized {
		mismatch("standardized", exp.Standardized, ev.Standardized)
	}
	if exp.Hash != nil && *exp.Hash != ev.Hash {
		mismatch("hash", *exp.Hash, ev.Hash)
	}
	if exp.Canned != nil && *exp.Canned != ev.Canned {
		mismatch("canned", *exp.Canned, ev.Canned)
	}
	if exp.Form != nil && !reflect.DeepEqual(exp.Form, ev.Form) {
		mismatch("form", *exp.Form, ev.Form)
	}
	if exp.Duplicate != nil && *exp.Duplicate != ev.Duplicate {
		mismatch("duplicate", *exp.Duplicate, ev.Duplicate)
	}
	return errs
}
