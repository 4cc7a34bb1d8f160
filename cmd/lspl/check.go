package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	lspl "github.com/al-pacino/lspl"
)

type checkConfig struct {
	configPath   string
	patternsPath string
}

func newCheckCmd() *cobra.Command {
	cfg := &checkConfig{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse pattern definitions and report any errors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.configPath, "config", "", "word sign configuration file (required)")
	cmd.Flags().StringVar(&cfg.patternsPath, "patterns", "", "pattern definitions file (required)")
	for _, name := range []string{"config", "patterns"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runCheck(cmd *cobra.Command, cfg *checkConfig) error {
	signsData, err := os.ReadFile(cfg.configPath)
	if err != nil {
		return oops.In("check").With("file", cfg.configPath).Wrap(err)
	}
	signs, err := lspl.LoadConfig(signsData)
	if err != nil {
		return oops.In("check").With("file", cfg.configPath).Wrap(err)
	}

	patternsSrc, err := os.ReadFile(cfg.patternsPath)
	if err != nil {
		return oops.In("check").With("file", cfg.patternsPath).Wrap(err)
	}

	registry, diags := lspl.ParsePatterns(cfg.patternsPath, string(patternsSrc), signs)
	if diags.HasErrors() {
		diags.PrintAll(cmd.ErrOrStderr())
		return oops.In("check").Errorf("%d error(s) found", len(diags.Errors()))
	}

	slog.Info("patterns ok", "count", len(registry.Names()))
	fmt.Fprintf(cmd.OutOrStdout(), "%d pattern(s), no errors\n", len(registry.Names()))
	return nil
}
