package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the lspl CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lspl",
		Short: "lspl - a linguistic pattern matcher",
		Long: `lspl loads a word sign configuration, a set of pattern
definitions, and an annotated text document, then reports every span of
the text one named pattern matches.`,
	}

	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}
