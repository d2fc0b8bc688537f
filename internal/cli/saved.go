package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/searchquery/internal/savedsearch"
)

// SavedAddResult is the JSON payload of saved add.
type SavedAddResult struct {
	savedsearch.SavedSearch
	Created bool `json:"created"`
}

// NewSavedCommand creates the saved command group.
func NewSavedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage the saved-search registry",
		Long: `Manage saved searches. Searches are keyed by query hash, so saving a
query that only differs from a saved one in filter order is a no-op.

The registry database is given with --db or SEARCHQ_DB.`,
	}

	cmd.AddCommand(NewSavedAddCommand(rootOpts))
	cmd.AddCommand(NewSavedListCommand(rootOpts))
	cmd.AddCommand(NewSavedGetCommand(rootOpts))
	cmd.AddCommand(NewSavedDeleteCommand(rootOpts))

	return cmd
}

// SavedAddOptions holds flags for the saved add command.
type SavedAddOptions struct {
	*RootOptions
	Name string
}

// NewSavedAddCommand creates the saved add command.
func NewSavedAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SavedAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add [query...]",
		Short: "Save a search",
		Long: `Save a search query under a name. Without --name the canonical query
is used as the name.

Example:
  searchq saved add merchant:Acme category:Travel --name "Acme travel" --db searches.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSavedAdd(opts, cmd, queryArg(args))
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "name of the saved search")

	return cmd
}

func runSavedAdd(opts *SavedAddOptions, cmd *cobra.Command, input string) error {
	f := opts.formatter(cmd)
	q, err := opts.build(f, input)
	if err != nil {
		return err
	}

	reg, err := opts.openRegistry(f)
	if err != nil {
		return err
	}
	defer reg.Close()

	saved, created, err := reg.Save(cmd.Context(), opts.Name, q)
	if err != nil {
		return f.Fail(ExitCommandError, CodeRegistry, "failed to save search", err)
	}
	opts.Logger().Info("saved search", "id", saved.ID, "hash", saved.Hash, "created", created)

	if f.Format == "json" {
		return f.Success(SavedAddResult{SavedSearch: saved, Created: created})
	}
	if !created {
		return f.Success(fmt.Sprintf("already saved as %s (hash %d)", saved.ID, saved.Hash))
	}
	return f.Success(fmt.Sprintf("saved %s (hash %d)", saved.ID, saved.Hash))
}

// NewSavedListCommand creates the saved list command.
func NewSavedListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved searches in the order they were saved",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			reg, err := rootOpts.openRegistry(f)
			if err != nil {
				return err
			}
			defer reg.Close()

			searches, err := reg.List(cmd.Context())
			if err != nil {
				return f.Fail(ExitCommandError, CodeRegistry, "failed to list saved searches", err)
			}

			if f.Format == "json" {
				return f.Success(searches)
			}
			if len(searches) == 0 {
				return f.Success("No saved searches.")
			}
			rows := make([][]string, 0, len(searches))
			for _, s := range searches {
				rows = append(rows, []string{s.ID, strconv.FormatUint(uint64(s.Hash), 10), s.Name, s.Query})
			}
			f.Table([]string{"ID", "Hash", "Name", "Query"}, rows)
			return nil
		},
	}
}

// NewSavedGetCommand creates the saved get command.
func NewSavedGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <hash>",
		Short:         "Show the saved search with a hash",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			hash, err := parseHash(f, args[0])
			if err != nil {
				return err
			}
			reg, err := rootOpts.openRegistry(f)
			if err != nil {
				return err
			}
			defer reg.Close()

			saved, err := reg.Get(cmd.Context(), hash)
			if err != nil {
				return registryFailure(f, err, "failed to get saved search")
			}

			if f.Format == "json" {
				return f.Success(saved)
			}
			return f.Success(fmt.Sprintf("%s\t%d\t%s\n%s", saved.ID, saved.Hash, saved.Name, saved.Query))
		},
	}
}

// NewSavedDeleteCommand creates the saved delete command.
func NewSavedDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <hash>",
		Short:         "Delete the saved search with a hash",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			hash, err := parseHash(f, args[0])
			if err != nil {
				return err
			}
			reg, err := rootOpts.openRegistry(f)
			if err != nil {
				return err
			}
			defer reg.Close()

			if err := reg.Delete(cmd.Context(), hash); err != nil {
				return registryFailure(f, err, "failed to delete saved search")
			}
			rootOpts.Logger().Info("deleted saved search", "hash", hash)

			if f.Format == "json" {
				return f.Success(map[string]uint32{"deleted": hash})
			}
			return f.Success(fmt.Sprintf("deleted %d", hash))
		},
	}
}

func parseHash(f *OutputFormatter, s string) (uint32, error) {
	h, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, f.Fail(ExitCommandError, CodeGeneric, fmt.Sprintf("invalid hash %q", s), err)
	}
	return uint32(h), nil
}

// registryFailure maps a missing search to CodeNotFound and anything else
// to CodeRegistry.
func registryFailure(f *OutputFormatter, err error, message string) error {
	if errors.Is(err, savedsearch.ErrNotFound) {
		return f.Fail(ExitFailure, CodeNotFound, "saved search not found", err)
	}
	return f.Fail(ExitCommandError, CodeRegistry, message, err)
}
