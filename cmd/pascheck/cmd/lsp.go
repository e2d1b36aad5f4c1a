package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pacer/pascheck/cmd/pascheck/lsp"
	"github.com/pacer/pascheck/internal/pascal"
)

const serverName = "pascheck"

func newLspCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Runs the language server on stdin and stdout",
		Long: `Runs a Language Server Protocol server on stdin and stdout. Every open
document is checked on open and on change, and its diagnostics are
published. Logs never go to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(serverName, Version, cmd.OutOrStdout(), pascal.Options{
				FoldIdentifiers: root.cfg.Lexer.FoldIdentifiers,
				MaxInteger:      root.cfg.Lexer.MaxInteger,
				MaxDepth:        root.cfg.Parser.MaxDepth,
				Logger:          slog.Default(),
			})

			return server.Serve(cmd.InOrStdin())
		},
	}
}
