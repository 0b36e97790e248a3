package main

import (
	"github.com/bibweb/citationweb/internal/repair"
	"github.com/spf13/cobra"
)

var (
	repairOutput string
	repairNoSort bool
)

func init() {
	rootCmd.AddCommand(repairCmd)
	repairCmd.Flags().StringVarP(&repairOutput, "output", "o", "", "Output .bib file (default: rewrite input)")
	repairCmd.Flags().BoolVar(&repairNoSort, "no-sort", false, "Skip sorting Cites/Cited-By after repairing")
}

var repairCmd = &cobra.Command{
	Use:   "repair <bibfile>",
	Short: "Make Cites and Cited-By fields mutually consistent",
	Long: `Remove self-citations and add the missing half of every citation link:
if entry A lists B in Cites, B gains A in Cited-By, and vice versa.

References to citekeys that do not exist are skipped and counted. Useful
both after crosslinking and as a standalone pass over hand-edited files.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepair,
}

func runRepair(cmd *cobra.Command, args []string) error {
	b := loadBibliography(args[0])

	report := repair.Repair(b)
	if !repairNoSort {
		repair.SortFields(b)
	}

	out := repairOutput
	if out == "" {
		out = args[0]
	}
	writeBibliography(b, out)

	if humanOutput {
		outputHuman("Removed %d self-citations.\n", report.SelfCitesRemoved)
		outputHuman("Added %d missing 'cites' and %d missing 'cited-by' entries.\n",
			report.CitesAdded, report.CitedByAdded)
		if report.Dangling > 0 {
			outputHuman("Skipped %d references to unknown citekeys.\n", report.Dangling)
		}
		return nil
	}
	return outputJSON(report)
}
