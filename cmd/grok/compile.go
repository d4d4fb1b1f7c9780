package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/groklib/grok-go/pkg/grok"
	"github.com/groklib/grok-go/pkg/grok/patterns"
)

// patternFlags are the flags shared by every command that compiles a
// pattern before processing input.
type patternFlags struct {
	pattern      string
	patternFiles []string
	patternDirs  []string
	noDefaults   bool
	namedOnly    bool
}

func addPatternFlags(cmd *cobra.Command, pf *patternFlags) {
	cmd.Flags().StringVarP(&pf.pattern, "pattern", "e", "",
		"pattern to match, e.g. '%{IP:client} %{WORD:method}' (required)")
	cmd.Flags().StringSliceVarP(&pf.patternFiles, "patterns-file", "p", nil,
		"additional pattern file(s); .yaml/.yml are parsed as set files, anything else as NAME FRAGMENT lines")
	cmd.Flags().StringSliceVar(&pf.patternDirs, "patterns-dir", nil,
		"directory of pattern files to load")
	cmd.Flags().BoolVar(&pf.noDefaults, "no-defaults", false,
		"start from an empty registry instead of the bundled pattern sets")
	cmd.Flags().BoolVarP(&pf.namedOnly, "named-only", "n", false,
		"capture only aliased placeholders")
	_ = cmd.MarkFlagRequired("pattern")
}

// compilePattern builds a registry from the flags and compiles the pattern.
func compilePattern(pf *patternFlags) (*grok.Pattern, error) {
	var g *grok.Grok
	if pf.noDefaults {
		g = grok.New()
	} else {
		g = grok.NewComplete()
	}

	for _, dir := range pf.patternDirs {
		defs, err := patterns.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load pattern directory %s: %w", dir, err)
		}
		g.AddPatterns(defs)
	}
	for _, file := range pf.patternFiles {
		defs, err := patterns.Load(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load pattern file %s: %w", file, err)
		}
		g.AddPatterns(defs)
	}

	p, err := g.Compile(pf.pattern, pf.namedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern: %w", err)
	}
	return p, nil
}
