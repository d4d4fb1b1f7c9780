package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "grok",
	Short: "Match log lines against composite grok patterns",
	Long: `grok matches semi-structured text, typically log lines, against
composite patterns built from named, reusable definitions.

Patterns reference definitions with %{NAME} placeholders:

  %{NAME}            expand the definition registered as NAME
  %{NAME:alias}      expand NAME, expose the capture under "alias"
  %{NAME=\d+}        register NAME inline, then expand it

A curated set of definitions (IP, HOSTNAME, TIMESTAMP_ISO8601, LOGLEVEL,
COMBINEDAPACHELOG, ...) is built in; more can be loaded from pattern files.`,
	SilenceUsage: true,
}
