package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
)

var (
	tailPatternFlags patternFlags
	tailFormat       string
	tailRaw          bool
	tailFromStart    bool
	tailReopen       bool
)

var tailCmd = &cobra.Command{
	Use:   "tail FILE",
	Short: "Follow a growing log file and output matches",
	Long: `Follow a log file in real-time and print fields for every line that
matches the pattern, like tail -f piped through grok match.

Examples:
  # Watch failed logins as they happen
  grok tail -e '%{SYSLOGBASE} Failed password for %{USERNAME:user}' /var/log/auth.log

  # Survive logrotate moving the file away
  grok tail --reopen -e '%{LOGLEVEL:level} %{GREEDYDATA:msg}' app.log

  # Process the whole file first, then keep following
  grok tail --from-start -e '%{COMBINEDAPACHELOG}' access.log`,
	Args: cobra.ExactArgs(1),
	RunE: runTail,
}

func init() {
	addPatternFlags(tailCmd, &tailPatternFlags)
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	tailCmd.Flags().BoolVar(&tailRaw, "raw", false,
		"Include raw input lines in output")
	tailCmd.Flags().BoolVar(&tailFromStart, "from-start", false,
		"Read the file from the beginning instead of seeking to the end")
	tailCmd.Flags().BoolVar(&tailReopen, "reopen", false,
		"Reopen the file when it is rotated away")
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	if !ValidFormats[tailFormat] {
		return fmt.Errorf("unknown format: %s", tailFormat)
	}

	p, err := compilePattern(&tailPatternFlags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := tail.Config{
		Follow:    true,
		ReOpen:    tailReopen,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	}
	if !tailFromStart {
		cfg.Location = &tail.SeekInfo{Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(args[0], cfg)
	if err != nil {
		return fmt.Errorf("failed to tail file: %w", err)
	}
	defer t.Cleanup()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				return line.Err
			}

			fields := p.Parse(line.Text)
			if fields == nil {
				continue
			}
			m := Match{Fields: fields}
			if tailRaw {
				m.Line = line.Text
			}
			if err := OutputMatch(tailFormat, m, out); err != nil {
				return err
			}
		}
	}
}
