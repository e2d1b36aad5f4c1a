// Command pascheck checks programs of a small Pascal subset: it lexes,
// parses and type checks them and reports numbered diagnostics, either from
// the command line or as a language server.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pacer/pascheck/cmd/pascheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		os.Exit(1)
	}
}
