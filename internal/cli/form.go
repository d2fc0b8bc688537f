package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/searchquery/internal/queryir"
	"github.com/roach88/searchquery/internal/search"
)

// NewFormCommand creates the form command group.
func NewFormCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Convert between queries and advanced-filter form values",
	}

	cmd.AddCommand(NewFormFromQueryCommand(rootOpts))
	cmd.AddCommand(NewFormToQueryCommand(rootOpts))

	return cmd
}

// NewFormFromQueryCommand creates the form from-query command.
func NewFormFromQueryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "from-query [query...]",
		Short: "Fill form values from a query",
		Long: `Parse a search query and print the advanced-filter form values it maps
to. Invalid dates and amounts are dropped. With --directory, list values
the directory does not know are dropped too.

Example:
  searchq form from-query 'date>2024-01-01 category:Travel' --directory dirs.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			dirs, err := rootOpts.directories(f)
			if err != nil {
				return err
			}
			q, err := rootOpts.build(f, queryArg(args))
			if err != nil {
				return err
			}

			form := search.BuildFilterFormValuesFromQuery(q, dirs)
			if f.Format == "json" {
				return f.Success(form)
			}
			f.Table([]string{"Field", "Value"}, formRows(form))
			return nil
		},
	}
}

// formRows lists the non-empty fields of form in editor order.
func formRows(form *queryir.SearchAdvancedFiltersForm) [][]string {
	rows := [][]string{}
	for _, field := range queryir.FormFields {
		var value string
		if field.IsList() {
			value = strings.Join(form.List(field), ", ")
		} else {
			value = form.Text(field)
		}
		if value != "" {
			rows = append(rows, []string{string(field), value})
		}
	}
	return rows
}

// NewFormToQueryCommand creates the form to-query command.
func NewFormToQueryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "to-query <form-file|->",
		Short: "Build a query from form values",
		Long: `Read advanced-filter form values from a YAML or JSON file (or stdin
with "-") and print the query string they produce.

Example form file:
  type: expense
  merchant: Acme
  category: [Travel, Meals]
  dateAfter: 2024-01-01

Example:
  searchq form to-query filters.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			form, err := readForm(cmd, args[0])
			if err != nil {
				return f.Fail(ExitCommandError, CodeFormFile, "failed to read form values", err)
			}

			query := search.BuildQueryStringFromFilterFormValues(form)
			if f.Format == "json" {
				q, err := rootOpts.build(f, query)
				if err != nil {
					return err
				}
				return f.Success(QueryOutput{Input: query, Query: search.BuildSearchQueryString(q), Hash: q.Hash})
			}
			return f.Success(query)
		},
	}
}

// readForm decodes form values from path, or from the command's stdin when
// path is "-". YAML is a superset of JSON, so both are accepted. Unknown
// fields are rejected and an empty document is an empty form.
func readForm(cmd *cobra.Command, path string) (*queryir.SearchAdvancedFiltersForm, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	form := &queryir.SearchAdvancedFiltersForm{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(form); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return form, nil
}
