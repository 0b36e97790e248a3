package main

import (
	"github.com/bibweb/citationweb/internal/bib"
	"github.com/bibweb/citationweb/internal/repair"
	"github.com/spf13/cobra"
)

var (
	sortOutput string
	sortFields []string
)

func init() {
	rootCmd.AddCommand(sortCmd)
	sortCmd.Flags().StringVarP(&sortOutput, "output", "o", "", "Output .bib file (default: rewrite input)")
	sortCmd.Flags().StringSliceVar(&sortFields, "fields", []string{bib.FieldCites, bib.FieldCitedBy},
		"List fields to sort")
}

var sortCmd = &cobra.Command{
	Use:   "sort <bibfile>",
	Short: "Sort list fields alphabetically for reproducible diffs",
	Args:  cobra.ExactArgs(1),
	RunE:  runSort,
}

func runSort(cmd *cobra.Command, args []string) error {
	b := loadBibliography(args[0])

	repair.SortFields(b, sortFields...)

	out := sortOutput
	if out == "" {
		out = args[0]
	}
	writeBibliography(b, out)

	if humanOutput {
		outputHuman("Sorted fields %v alphabetically.\n", sortFields)
		return nil
	}
	return outputJSON(map[string]interface{}{"sorted_fields": sortFields})
}
