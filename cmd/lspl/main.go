// Command lspl runs a pattern against a text document and reports the
// spans it matches.
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		slog.Error("lspl failed", "error", err)
		os.Exit(1)
	}
}
