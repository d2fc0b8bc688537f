package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/searchquery/internal/queryir"
	"github.com/roach88/searchquery/internal/search"
)

// QueryOutput is the JSON payload of the single-query commands.
type QueryOutput struct {
	Input string `json:"input"`
	Query string `json:"query"`
	Hash  uint32 `json:"hash"`
}

// queryArg joins the positional arguments into one query string, so
// `searchq hash merchant:Acme category:Travel` needs no quoting.
// No arguments is the empty query.
func queryArg(args []string) string {
	return strings.Join(args, " ")
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [query...]",
		Short: "Parse a query into its JSON form",
		Long: `Parse a search query and print the resulting query JSON: root fields,
the filter tree, the flat filters and the hash.

Examples:
  searchq parse 'merchant:"Blue Bottle" amount>5'
  searchq parse type:invoice status:paid --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			q, err := rootOpts.build(f, queryArg(args))
			if err != nil {
				return err
			}
			if f.Format == "json" {
				return f.Success(q)
			}
			data, err := indentJSON(q)
			if err != nil {
				return fmt.Errorf("failed to marshal query: %w", err)
			}
			return f.Success(data)
		},
	}
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [query...]",
		Short: "Print the canonical form of a query",
		Long: `Parse a search query and print its canonical string: root fields first,
then filters in key order with adjacent same-operator values merged.

Example:
  searchq normalize category:Travel merchant:Acme category:Meals`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			input := queryArg(args)
			q, err := rootOpts.build(f, input)
			if err != nil {
				return err
			}
			canonical := search.BuildSearchQueryString(q)
			if f.Format == "json" {
				return f.Success(QueryOutput{Input: input, Query: canonical, Hash: q.Hash})
			}
			return f.Success(canonical)
		},
	}
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "hash [query...]",
		Short: "Print the stable hash of a query",
		Long: `Parse a search query and print its hash. Queries that differ only in the
order of their filters or values hash the same.

Example:
  searchq hash merchant:Acme category:Travel,Meals`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			input := queryArg(args)
			q, err := rootOpts.build(f, input)
			if err != nil {
				return err
			}
			if f.Format == "json" {
				return f.Success(QueryOutput{Input: input, Query: search.BuildSearchQueryString(q), Hash: q.Hash})
			}
			return f.Success(q.Hash)
		},
	}
}

// NewDisplayCommand creates the display command.
func NewDisplayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "display [query...]",
		Short: "Print a query with ids replaced by display names",
		Long: `Parse a search query and print it the way a user would read it:
account ids become logins, card ids become bank names, report ids become
report names and tax rate ids become tax rate names. Lookups use the
snapshot given with --directory.

Example:
  searchq display from:12 cardID:100 --directory dirs.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			dirs, err := rootOpts.directories(f)
			if err != nil {
				return err
			}
			input := queryArg(args)
			q, err := rootOpts.build(f, input)
			if err != nil {
				return err
			}
			display := search.BuildUserReadableQueryString(q, dirs)
			if f.Format == "json" {
				return f.Success(QueryOutput{Input: input, Query: display, Hash: q.Hash})
			}
			return f.Success(display)
		},
	}
}

// StandardizeOptions holds flags for the standardize command.
type StandardizeOptions struct {
	*RootOptions
	PolicyID string
}

// NewStandardizeCommand creates the standardize command.
func NewStandardizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StandardizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "standardize [query...]",
		Short: "Rewrite display names in a query to ids",
		Long: `Parse a search query typed by a user and rewrite its display values to
the identifiers stored in queries: logins become account ids, bank names
become card ids and tax rate names become tax rate ids.

Examples:
  searchq standardize from:alice@example.com --directory dirs.yaml
  searchq standardize category:Travel --policy-id P1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandardize(opts, cmd, queryArg(args))
		},
	}

	cmd.Flags().StringVar(&opts.PolicyID, "policy-id", "", "scope the query to this policy")

	return cmd
}

func runStandardize(opts *StandardizeOptions, cmd *cobra.Command, input string) error {
	f := opts.formatter(cmd)
	dirs, err := opts.directories(f)
	if err != nil {
		return err
	}
	q, err := opts.build(f, input)
	if err != nil {
		return err
	}
	if opts.PolicyID != "" {
		q.PolicyID = opts.PolicyID
	}

	// Hash follows the standardized query, not the input.
	std := search.StandardizeQueryJSON(q, dirs)
	std.Hash = search.BuildSearchQueryHash(std)
	standardized := search.BuildSearchQueryString(std)

	if f.Format == "json" {
		return f.Success(QueryOutput{Input: input, Query: standardized, Hash: std.Hash})
	}
	return f.Success(standardized)
}

// CannedOptions holds flags for the canned command.
type CannedOptions struct {
	*RootOptions
	Type   string
	Status string
}

// NewCannedCommand creates the canned command.
func NewCannedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CannedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "canned",
		Short: "Print the query of a canned search",
		Long: `Print the canonical query of a canned search: a search with a type and
status but no filters.

Example:
  searchq canned --type invoice --status paid`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)

			dataType := queryir.DefaultType
			if opts.Type != "" {
				t, ok := queryir.ParseDataType(opts.Type)
				if !ok {
					types := make([]string, len(queryir.DataTypes))
					for i, dt := range queryir.DataTypes {
						types[i] = string(dt)
					}
					return f.Fail(ExitCommandError, CodeGeneric, unknownValue("type", opts.Type, types), nil)
				}
				dataType = t
			}
			if opts.Status != "" && !dataType.HasStatus(opts.Status) {
				return f.Fail(ExitCommandError, CodeGeneric, unknownValue(string(dataType)+" status", opts.Status, dataType.Statuses()), nil)
			}

			query := search.BuildCannedSearchQuery(dataType, opts.Status)
			if f.Format == "json" {
				q, err := opts.build(f, query)
				if err != nil {
					return err
				}
				return f.Success(QueryOutput{Input: query, Query: query, Hash: q.Hash})
			}
			return f.Success(query)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "data type (expense|invoice|trip|chat)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "status within the type's family")

	return cmd
}
