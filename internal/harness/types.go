package harness

import "github.com/roach88/searchquery/internal/queryir"

// TraceEvent records what the pipeline produced for one case.
// Fields beyond Valid are empty for a case whose query did not build.
type TraceEvent struct {
	Seq          int64                              `json:"seq"`
	Case         string                             `json:"case"`
	Input        string                             `json:"input"`
	Valid        bool                               `json:"valid"`
	Canonical    string                             `json:"canonical,omitempty"`
	Display      string                             `json:"display,omitempty"`
	Standardized string                             `json:"standardized,omitempty"`
	Hash         uint32                             `json:"hash,omitempty"`
	Canned       bool                               `json:"canned,omitempty"`
	Form         *queryir.SearchAdvancedFiltersForm `json:"form,omitempty"`
	SavedID      string                             `json:"saved_id,omitempty"`
	Duplicate    bool                               `json:"duplicate,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace holds one event per case, in case order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// event returns the trace event for a case name.
func (r *Result) event(name string) (TraceEvent, bool) {
	for _, ev := range r.Trace {
		if ev.Case == name {
			return ev, true
		}
	}
	return TraceEvent{}, false
}
