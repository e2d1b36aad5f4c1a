// Package cmd holds the pascheck command tree.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacer/pascheck/internal/config"
)

// ErrDiagnostics is returned when a check found problems in the checked
// programs. The diagnostics themselves have already been printed.
var ErrDiagnostics = errors.New("diagnostics reported")

// rootOptions is the state shared by every subcommand.
type rootOptions struct {
	cfgFile string
	verbose bool

	cfg       *config.Config
	logCloser io.Closer
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pascheck",
		Short: "Checks programs written in a small Pascal subset",
		Long: `pascheck lexes, parses and type checks programs written in a small
Pascal subset and reports numbered diagnostics.

Commands:
  check   - check files or directories, print a listing or a report
  tokens  - dump the tokens of a file
  lsp     - run as a language server on stdin/stdout
  version - print the version`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./pascheck.toml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	rootCmd.AddCommand(
		newCheckCmd(opts),
		newTokensCmd(opts),
		newLspCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the command named on the command line.
func Execute() error {
	return execute(&rootOptions{}, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// execute runs args against a fresh command tree. The log file is closed
// whatever the outcome of the command.
func execute(opts *rootOptions, args []string, in io.Reader, out, errOut io.Writer) error {
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := rootCmd.Execute()
	if closeErr := opts.closeLog(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}

	return err
}

// setup loads the configuration and installs the default logger.
func (o *rootOptions) setup() error {
	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}

	o.cfg = cfg

	closer, err := configureLogging(cfg.Log, o.verbose)
	if err != nil {
		return err
	}

	o.logCloser = closer

	return nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.cfgFile != "" {
		return config.Load(o.cfgFile)
	}

	cfg, err := config.LoadFromEnv()
	if errors.Is(err, config.ErrNotFound) {
		return config.Default(), nil
	}

	return cfg, err
}

func (o *rootOptions) closeLog() error {
	if o.logCloser == nil {
		return nil
	}

	err := o.logCloser.Close()
	o.logCloser = nil

	if err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}

	return nil
}
