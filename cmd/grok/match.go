package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/groklib/grok-go/pkg/grok"
)

var (
	matchPatternFlags patternFlags
	matchFormat       string
	matchRaw          bool
)

var matchCmd = &cobra.Command{
	Use:   "match [file...]",
	Short: "Match lines from files or stdin against a pattern",
	Long: `Match input lines against a pattern and print the extracted fields.

Lines are read from the given files, or from stdin when no files are given.
Lines that do not match are dropped. Matches are printed as JSON Lines by
default, which makes them easy to process with tools like jq.

Examples:
  # Extract client and status from an access log
  grok match -e '%{IPORHOST:client} .* %{NUMBER:status} (?:%{NUMBER:bytes}|-)' access.log

  # Read from stdin, human-readable output
  journalctl -o cat | grok match -e '%{LOGLEVEL:level} %{GREEDYDATA:msg}' --format pretty

  # Use a custom pattern file and capture only aliased fields
  grok match -p custom.grok -e '%{MYAPP:evt}' --named-only app.log

  # Pipe to jq for filtering
  grok match -e '%{COMBINEDAPACHELOG}' access.log | jq -r '.fields.clientip'`,
	RunE: runMatch,
}

func init() {
	addPatternFlags(matchCmd, &matchPatternFlags)
	matchCmd.Flags().StringVarP(&matchFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	matchCmd.Flags().BoolVar(&matchRaw, "raw", false,
		"Include raw input lines in output")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if !ValidFormats[matchFormat] {
		return fmt.Errorf("unknown format: %s", matchFormat)
	}

	p, err := compilePattern(&matchPatternFlags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return matchLines(p, cmd.InOrStdin(), out)
	}
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		err = matchLines(p, f, out)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// matchLines applies the pattern to every line of r and writes matches to
// out in the selected format.
func matchLines(p *grok.Pattern, r io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		fields := p.Parse(line)
		if fields == nil {
			continue
		}

		m := Match{Fields: fields}
		if matchRaw {
			m.Line = line
		}
		if err := OutputMatch(matchFormat, m, out); err != nil {
			return err
		}
	}
	return scanner.Err()
}
