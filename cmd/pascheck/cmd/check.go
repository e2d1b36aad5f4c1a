package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pacer/pascheck/internal/config"
	"github.com/pacer/pascheck/internal/pascal"
	"github.com/pacer/pascheck/internal/pascal/report"
	"github.com/pacer/pascheck/internal/pascal/source"
)

// stdoutPath names standard output wherever a file path is expected.
const stdoutPath = "-"

type checkOptions struct {
	listing         string
	trace           string
	format          string
	color           bool
	foldIdentifiers bool
	maxInteger      int
	maxDepth        int
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	checkCmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Checks programs and reports their diagnostics",
		Long: `Checks the given files and directories. Directories are searched for
.pas and .pp files.

A single file in listing format is echoed line by line, each line followed
by the diagnostics found on it. Anything else is checked concurrently and
summarized in the chosen report format.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.merge(cmd, root.cfg)
			return opts.run(cmd, args)
		},
	}

	flags := checkCmd.Flags()
	flags.StringVar(&opts.listing, "listing", "", "write the listing to this file, - for stdout")
	flags.StringVar(&opts.trace, "trace", "", "write the lexeme trace to this file")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: listing, summary, json, yaml")
	flags.BoolVar(&opts.color, "color", false, "color the summary")
	flags.BoolVar(&opts.foldIdentifiers, "fold-identifiers", false, "compare identifiers case-insensitively")
	flags.IntVar(&opts.maxInteger, "max-integer", 0, "largest integer literal")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "deepest syntactic nesting")

	return checkCmd
}

// merge fills the flags the user did not set from the configuration.
func (o *checkOptions) merge(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if !flags.Changed("listing") {
		o.listing = cfg.Listing.Path
	}
	if !flags.Changed("trace") {
		o.trace = cfg.Trace.Path
	}
	if !flags.Changed("format") {
		o.format = cfg.Report.Format
	}
	if !flags.Changed("color") {
		o.color = cfg.Report.Color
	}
	if !flags.Changed("fold-identifiers") {
		o.foldIdentifiers = cfg.Lexer.FoldIdentifiers
	}
	if !flags.Changed("max-integer") {
		o.maxInteger = cfg.Lexer.MaxInteger
	}
	if !flags.Changed("max-depth") {
		o.maxDepth = cfg.Parser.MaxDepth
	}
}

func (o *checkOptions) compileOptions() pascal.Options {
	return pascal.Options{
		FoldIdentifiers: o.foldIdentifiers,
		MaxInteger:      o.maxInteger,
		MaxDepth:        o.maxDepth,
		Logger:          slog.Default(),
	}
}

func (o *checkOptions) run(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return err
	}

	if format == report.FormatListing && len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("checking %s: %w", args[0], err)
		}

		if !info.IsDir() {
			return o.checkFile(cmd, args[0])
		}
	}

	if format == report.FormatListing {
		format = report.FormatSummary
	}

	return o.checkWorkspace(cmd, args, format)
}

// checkFile compiles a single program and echoes it as a listing. The
// source is opened first so that no output file is left open when it cannot
// be read.
func (o *checkOptions) checkFile(cmd *cobra.Command, path string) error {
	//nolint:gosec // path is given by the user
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer file.Close()

	opts := o.compileOptions()

	listingPath := o.listing
	if listingPath == "" {
		listingPath = stdoutPath
	}

	listing, closeListing, err := createOutput(cmd.OutOrStdout(), listingPath)
	if err != nil {
		return err
	}

	opts.Listing = listing

	if o.trace != "" {
		// Compile closes the trace file.
		trace, _, err := createOutput(cmd.OutOrStdout(), o.trace)
		if err != nil {
			_ = closeListing()
			return err
		}

		opts.Trace = trace
	}

	result, err := pascal.Compile(source.NewLineReader(file), opts)
	if closeErr := closeListing(); closeErr != nil && err == nil {
		err = fmt.Errorf("writing listing: %w", closeErr)
	}

	if err != nil {
		return err
	}

	if listingPath != stdoutPath {
		r := report.New()
		r.Add(path, result)

		if err := r.Write(cmd.OutOrStdout(), report.FormatSummary, o.color); err != nil {
			return err
		}
	}

	if !result.OK() {
		return ErrDiagnostics
	}

	return nil
}

// checkWorkspace compiles every program found under paths and writes one
// report.
func (o *checkOptions) checkWorkspace(cmd *cobra.Command, paths []string, format report.Format) error {
	files, err := collectFiles(paths)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("%w under %v", errNoSources, paths)
	}

	results := pascal.CompileWorkspace(files, o.compileOptions())

	r := report.New()

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(results)) {
		res := results[name]
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, res.Err))
		}

		if res.Result != nil {
			r.Add(name, res.Result)
		}
	}

	if err := r.Write(cmd.OutOrStdout(), format, o.color); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	if r.Total > 0 {
		return ErrDiagnostics
	}

	return nil
}

var errNoSources = errors.New("no source files found")

// collectFiles reads the named files and the sources found in the named
// directories.
func collectFiles(paths []string) (map[string][]byte, error) {
	files := make(map[string][]byte)

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("checking %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := pascal.OpenProjectFiles(path, pascal.SourceExtensions)
			if err != nil {
				return nil, err
			}

			maps.Copy(files, found)

			continue
		}

		//nolint:gosec // path is given by the user
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		files[path] = content
	}

	return files, nil
}

// createOutput opens path for writing, stdoutPath being stdout. Stdout is
// hidden behind a plain io.Writer so that nothing closes it.
func createOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == stdoutPath {
		return struct{ io.Writer }{stdout}, func() error { return nil }, nil
	}

	//nolint:gosec // path is given by the user
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}

	return file, file.Close, nil
}
