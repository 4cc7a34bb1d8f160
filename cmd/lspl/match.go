package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	lspl "github.com/al-pacino/lspl"
	"github.com/al-pacino/lspl/internal/text"
)

// matchConfig holds the flags the match subcommand reads.
type matchConfig struct {
	configPath     string
	patternsPath   string
	textPath       string
	dictionaryPath string
	patternName    string
	jsonOutput     bool
}

func newMatchCmd() *cobra.Command {
	cfg := &matchConfig{}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a pattern against a text document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMatch(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.configPath, "config", "", "word sign configuration file (required)")
	cmd.Flags().StringVar(&cfg.patternsPath, "patterns", "", "pattern definitions file (required)")
	cmd.Flags().StringVar(&cfg.textPath, "text", "", "annotated text document (required)")
	cmd.Flags().StringVar(&cfg.dictionaryPath, "dictionary", "", "newline-separated dictionary phrase list")
	cmd.Flags().StringVar(&cfg.patternName, "pattern", "", "name of the pattern to run (required)")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output matched spans as JSON")
	for _, name := range []string{"config", "patterns", "text", "pattern"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

type matchOutput struct {
	Pattern string `json:"pattern"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
}

func runMatch(cmd *cobra.Command, cfg *matchConfig) error {
	slog.Info("loading configuration", "file", cfg.configPath)
	signsData, err := os.ReadFile(cfg.configPath)
	if err != nil {
		return oops.In("match").With("file", cfg.configPath).Wrap(err)
	}
	signs, err := lspl.LoadConfig(signsData)
	if err != nil {
		return oops.In("match").With("file", cfg.configPath).Wrap(err)
	}

	slog.Info("parsing pattern definitions", "file", cfg.patternsPath)
	patternsSrc, err := os.ReadFile(cfg.patternsPath)
	if err != nil {
		return oops.In("match").With("file", cfg.patternsPath).Wrap(err)
	}
	registry, diags := lspl.ParsePatterns(cfg.patternsPath, string(patternsSrc), signs)
	if diags.HasErrors() {
		diags.PrintAll(cmd.ErrOrStderr())
		return oops.In("match").Errorf("pattern definitions have errors")
	}

	pat, err := registry.Resolve(cfg.patternName)
	if err != nil {
		return oops.In("match").Wrap(err)
	}

	slog.Info("compiling pattern", "pattern", cfg.patternName)
	states, err := lspl.Compile(pat)
	if err != nil {
		return oops.In("match").Wrap(err)
	}

	var phrases []string
	if cfg.dictionaryPath != "" {
		phrases, err = readPhrases(cfg.dictionaryPath)
		if err != nil {
			return oops.In("match").With("file", cfg.dictionaryPath).Wrap(err)
		}
	}
	dictIndex, err := lspl.LoadDictionary(phrases)
	if err != nil {
		return oops.In("match").Wrap(err)
	}

	slog.Info("loading text", "file", cfg.textPath)
	textData, err := os.ReadFile(cfg.textPath)
	if err != nil {
		return oops.In("match").With("file", cfg.textPath).Wrap(err)
	}
	txt, err := lspl.LoadText(cfg.textPath, textData, signs)
	if err != nil {
		return oops.In("match").With("file", cfg.textPath).Wrap(err)
	}

	slog.Info("matching", "words", txt.Len())
	spans := lspl.Run(txt, states, dictIndex)

	results := make([]matchOutput, 0, len(spans))
	for _, span := range spans {
		results = append(results, matchOutput{
			Pattern: cfg.patternName,
			Start:   span.Start,
			End:     span.End,
			Text:    surfaceSpan(txt, span.Start, span.End),
		})
	}

	if cfg.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%d-%d\t%s\n", r.Start, r.End, r.Text)
	}
	return nil
}

func surfaceSpan(txt *text.Text, start, end int) string {
	out := txt.Words[start].Surface
	for i := start + 1; i <= end; i++ {
		out += " " + txt.Words[i].Surface
	}
	return out
}

func readPhrases(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var phrases []string
	start := 0
	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := string(data[start:i])
			if len(line) > 0 && line[len(line)-1] == '\r' {
				line = line[:len(line)-1]
			}
			if line != "" {
				phrases = append(phrases, line)
			}
			start = i + 1
		}
	}
	return phrases, nil
}
