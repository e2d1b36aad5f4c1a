package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pacer/pascheck/internal/pascal/diag"
	"github.com/pacer/pascheck/internal/pascal/lexer"
	"github.com/pacer/pascheck/internal/pascal/source"
)

func newTokensCmd(root *rootOptions) *cobra.Command {
	var foldIdentifiers bool

	tokensCmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "Prints the tokens of a file, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("fold-identifiers") {
				foldIdentifiers = root.cfg.Lexer.FoldIdentifiers
			}

			//nolint:gosec // path is given by the user
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening source: %w", err)
			}
			defer file.Close()

			diags := diag.NewCollector()
			lex := lexer.New(source.NewLineReader(file), diags, lexer.Options{
				FoldIdentifiers: foldIdentifiers,
				MaxInteger:      root.cfg.Lexer.MaxInteger,
			})

			out := cmd.OutOrStdout()
			for _, tok := range lexer.Tokenize(lex) {
				fmt.Fprintln(out, tok)
			}

			for _, d := range diags.All() {
				fmt.Fprintln(cmd.ErrOrStderr(), d)
			}

			if err := lex.Err(); err != nil {
				return fmt.Errorf("reading source: %w", err)
			}

			if diags.Len() > 0 {
				return ErrDiagnostics
			}

			return nil
		},
	}

	tokensCmd.Flags().BoolVar(&foldIdentifiers, "fold-identifiers", false, "lower-case identifiers")

	return tokensCmd
}
