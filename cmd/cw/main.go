// Package main provides the cw CLI entry point.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// An interrupt aborts the in-flight extraction or network call;
	// fields already written on prior entries are preserved.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cw",
	Short: "Citation-graph builder for BibTeX bibliographies",
	Long: `cw analyses a BibTeX bibliography and builds its citation graph.

It extracts the DOIs cited by each entry (from stored fields, attached
PDF files, or the external pdf-extract tool), crosslinks them against the
bibliography's own entries into Cites/Cited-By fields, repairs field
consistency, and exports the resulting directed graph.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
