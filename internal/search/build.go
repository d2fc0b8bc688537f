package search

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/roach88/searchquery/internal/directory"
	"github.com/roach88/searchquery/internal/parser"
	"github.com/roach88/searchquery/internal/queryir"
)

// Parser turns a query string into a SearchQueryJSON carrying root fields and
// the Filters tree. An empty string must yield the defaults with nil Filters.
type Parser interface {
	Parse(query string) (*queryir.SearchQueryJSON, error)
}

// errNoResult is logged when a parser returns neither a query nor an error.
var errNoResult = errors.New("parser returned no query")

// Builder parses query strings and derives the flat filters and hash.
// The zero value uses the default grammar and slog.Default.
type Builder struct {
	Parser Parser
	Logger *slog.Logger
}

func (b *Builder) parser() Parser {
	if b == nil || b.Parser == nil {
		return parser.Parser{}
	}
	return b.Parser
}

func (b *Builder) logger() *slog.Logger {
	if b == nil || b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// Build parses query and fills FlatFilters, InputQuery and Hash.
//
// A query the parser rejects, or whose tree is malformed, is logged at error
// level and yields nil. Callers treat nil as "not a valid query".
func (b *Builder) Build(query string) *queryir.SearchQueryJSON {
	q, err := b.parser().Parse(query)
	if err == nil && q == nil {
		err = errNoResult
	}
	if err != nil {
		b.logger().Error("failed to parse search query", "query", query, "error", err)
		return nil
	}

	if res := queryir.Validate(q.Filters); !res.Valid {
		b.logger().Error("parsed search query is malformed",
			"query", query,
			"problems", strings.Join(res.Problems, "; "))
		return nil
	}

	q.FlatFilters = GetFilters(q.Filters)
	q.InputQuery = query
	q.Hash = BuildSearchQueryHash(q)
	b.logger().Debug("built search query", "query", query, "hash", q.Hash)
	return q
}

// QueryWithUpdatedValues parses query, rewrites display values to
// identifiers, overrides the policy when policyID is set, and serializes the
// result. An unparseable query yields "".
func (b *Builder) QueryWithUpdatedValues(query, policyID string, dirs directory.Directories) string {
	q := b.Build(query)
	if q == nil {
		return ""
	}
	if policyID != "" {
		q.PolicyID = policyID
	}
	return BuildSearchQueryString(StandardizeQueryJSON(q, dirs))
}

var defaultBuilder = &Builder{}

// BuildSearchQueryJSON parses query with the default grammar. See Builder.Build.
func BuildSearchQueryJSON(query string) *queryir.SearchQueryJSON {
	return defaultBuilder.Build(query)
}

// GetQueryWithUpdatedValues is Builder.QueryWithUpdatedValues with the
// default grammar.
func GetQueryWithUpdatedValues(query, policyID string, dirs directory.Directories) string {
	return defaultBuilder.QueryWithUpdatedValues(query, policyID, dirs)
}

// BuildCannedSearchQuery returns the canonical query string for a canned
// search of the given type and status. Empty arguments take the defaults.
func BuildCannedSearchQuery(dataType queryir.DataType, status string) string {
	q := queryir.DefaultSearchQueryJSON()
	if dataType != "" {
		q.Type = dataType
	}
	if status != "" {
		q.Status = status
	}
	return BuildSearchQueryString(q)
}

// IsCannedSearchQuery reports whether q has no filters.
func IsCannedSearchQuery(q *queryir.SearchQueryJSON) bool {
	return q != nil && q.Filters == nil
}

// GetPolicyIDFromSearchQuery returns the policy q is scoped to, if any.
func GetPolicyIDFromSearchQuery(q *queryir.SearchQueryJSON) string {
	if q == nil {
		return ""
	}
	return q.PolicyID
}
