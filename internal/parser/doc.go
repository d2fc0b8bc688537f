// Package parser implements the default grammar for search query strings.
//
// A query is a whitespace-separated sequence of clauses:
//
//	type:expense status:all               root clauses, one value each
//	merchant:Acme,"Big Co" amount>100     filter clauses, comma-separated values
//	lunch "team offsite"                  free-text keywords
//
// Filter clauses accept the operators ":" (or "="), "!=", "<", "<=", ">" and
// ">=". Values are bare words or double-quoted strings; quotes have no escape
// sequences. A word that does not start with a known key followed by an
// operator is a keyword.
//
// Keyword filters are joined with OR and every other filter with AND, each
// chain left-deep. When both kinds are present the result is
// AND(keywords, filters). A query with no filters has a nil Filters tree.
package parser
