// Package pascal ties the front end together: one call to Compile is one
// run, from the first source line to the last diagnostic.
package pascal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/lexer"
	"github.com/pacer/pascheck/internal/pascal/parser"
	"github.com/pacer/pascheck/internal/pascal/source"
	"github.com/pacer/pascheck/internal/pascal/symbols"
)

// ErrNoInput is returned when a run is asked to read from nowhere.
var ErrNoInput = errors.New("no source to compile")

type Options struct {
	// Listing receives the annotated source echo; nothing is written when nil.
	Listing io.Writer
	// Trace receives the lexeme log; it is closed at the end of the run when
	// it implements io.Closer.
	Trace io.Writer

	FoldIdentifiers bool
	MaxInteger      int
	MaxDepth        int

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Result is everything a run produced.
type Result struct {
	RunID string
	// Name is the declared program name.
	Name        string
	Diagnostics []diag.Diagnostic
	Lines       int
	Tokens      int

	Builtins *symbols.Builtins
	Scopes   *symbols.Stack
	Program  *symbols.Scope
}

// OK reports whether the run found nothing to complain about.
func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// Compile runs the lexer and the parser over src. Diagnostics never make it
// fail: the returned error is only about the collaborators (reading the
// source, writing the listing or the trace), and the Result is valid even
// then.
func Compile(src source.Reader, opts Options) (*Result, error) {
	if src == nil {
		return nil, ErrNoInput
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	runID := uuid.NewString()
	logger = logger.With(slog.String("run_id", runID))
	logger.Debug("compilation started")

	diags := diag.NewCollector()

	var listing *diag.Listing

	lexOpts := lexer.Options{
		FoldIdentifiers: opts.FoldIdentifiers,
		MaxInteger:      opts.MaxInteger,
	}

	if opts.Listing != nil {
		listing = diag.NewListing(opts.Listing, diags)
		lexOpts.Lines = listing
	}

	if opts.Trace != nil {
		lexOpts.Trace = lexer.NewTraceSink(opts.Trace)
	}

	lex := lexer.New(src, diags, lexOpts)
	parsed := parser.Parse(lex, diags, parser.Options{MaxDepth: opts.MaxDepth})

	var errs []error
	if err := lex.Err(); err != nil {
		errs = append(errs, fmt.Errorf("reading source: %w", err))
	}

	if listing != nil {
		if err := listing.Close(); err != nil {
			errs = append(errs, fmt.Errorf("writing listing: %w", err))
		}
	}

	if err := lexOpts.Trace.Close(); err != nil {
		errs = append(errs, fmt.Errorf("writing trace: %w", err))
	}

	result := &Result{
		RunID:       runID,
		Name:        parsed.Name,
		Diagnostics: diags.All(),
		Lines:       lex.Line(),
		Tokens:      lex.Tokens(),
		Builtins:    parsed.Builtins,
		Scopes:      parsed.Scopes,
		Program:     parsed.Program,
	}

	err := errors.Join(errs...)

	logger.Info("compilation finished",
		slog.Group("run",
			slog.String("program", result.Name),
			slog.Int("lines", result.Lines),
			slog.Int("tokens", result.Tokens),
			slog.Int("diagnostics", len(result.Diagnostics)),
		),
	)

	if err != nil {
		logger.Error("compilation i/o failure", slog.String("error", err.Error()))
	}

	return result, err
}

// CompileString compiles an in-memory program.
func CompileString(text string, opts Options) (*Result, error) {
	return Compile(source.NewLines(text), opts)
}

// CompileFile compiles the program stored at path.
func CompileFile(path string, opts Options) (*Result, error) {
	//nolint:gosec // path is given by the user
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer file.Close()

	return Compile(source.NewLineReader(file), opts)
}

// HasFileExtension reports whether fileName's extension is found within extensions.
func HasFileExtension(fileName string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(fileName, "."+ext) {
			return true
		}
	}

	return false
}
