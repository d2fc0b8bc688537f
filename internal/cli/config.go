package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/searchquery/internal/directory"
	"github.com/roach88/searchquery/internal/parser"
	"github.com/roach88/searchquery/internal/queryir"
	"github.com/roach88/searchquery/internal/savedsearch"
	"github.com/roach88/searchquery/internal/search"
)

// errMalformedQuery is reported when a query parses but its tree fails
// validation.
var errMalformedQuery = errors.New("query tree is malformed")

// Logger returns the logger configured by the root command. Commands built
// without a root command log nowhere.
func (o *RootOptions) Logger() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.logger
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

// directories loads the snapshot named by --directory. Without one, every
// lookup misses and values pass through unchanged.
func (o *RootOptions) directories(f *OutputFormatter) (directory.Directories, error) {
	if o.Directory == "" {
		return directory.Directories{}, nil
	}
	snap, err := directory.Load(o.Directory)
	if err != nil {
		return directory.Directories{}, f.Fail(ExitCommandError, CodeDirectoryLoad, "failed to load directory", err)
	}
	f.VerboseLog("Loaded directory %s", o.Directory)
	return snap.Directories(), nil
}

// openRegistry opens the saved-search registry named by --db.
func (o *RootOptions) openRegistry(f *OutputFormatter) (*savedsearch.Registry, error) {
	if o.DB == "" {
		return nil, f.Fail(ExitCommandError, CodeRegistry, "no registry database: set --db or "+EnvPrefix+"_DB", nil)
	}
	reg, err := savedsearch.Open(o.DB)
	if err != nil {
		return nil, f.Fail(ExitCommandError, CodeRegistry, "failed to open registry", err)
	}
	return reg, nil
}

// recordingParser keeps the last parse error so it can be shown to the
// user; the Builder only logs it.
type recordingParser struct {
	err error
}

func (p *recordingParser) Parse(query string) (*queryir.SearchQueryJSON, error) {
	q, err := parser.Parse(query)
	p.err = err
	return q, err
}

// build turns query into a SearchQueryJSON, reporting rejected queries as
// CodeInvalidQuery failures.
func (o *RootOptions) build(f *OutputFormatter, query string) (*queryir.SearchQueryJSON, error) {
	p := &recordingParser{}
	b := &search.Builder{Parser: p, Logger: o.Logger()}
	if q := b.Build(query); q != nil {
		return q, nil
	}
	cause := p.err
	if cause == nil {
		cause = errMalformedQuery
	}
	return nil, f.Fail(ExitFailure, CodeInvalidQuery, "invalid search query", cause)
}
