package main

import (
	"errors"

	"github.com/bibweb/citationweb/internal/bib"
	"github.com/bibweb/citationweb/internal/crosslink"
	"github.com/bibweb/citationweb/internal/extract"
	"github.com/bibweb/citationweb/internal/pdfextract"
	"github.com/spf13/cobra"
)

var (
	crosslinkOutput      string
	crosslinkMode        string
	crosslinkFormat      string
	crosslinkCache       string
	crosslinkConvertURLs bool
	crosslinkNoPersist   bool
)

func init() {
	rootCmd.AddCommand(crosslinkCmd)
	crosslinkCmd.Flags().StringVarP(&crosslinkOutput, "output", "o", "", "Output .bib file (default: rewrite input)")
	crosslinkCmd.Flags().StringVar(&crosslinkMode, "mode", "auto", "Candidate-DOI source: auto, from-field, from-files")
	crosslinkCmd.Flags().StringVar(&crosslinkFormat, "format", "", "Attached-file source format: bibdesk, plain (default: from config)")
	crosslinkCmd.Flags().StringVar(&crosslinkCache, "cache", "", "Path to a SQLite extraction cache (optional)")
	crosslinkCmd.Flags().BoolVar(&crosslinkConvertURLs, "convert-urls", false, "Promote doi.org URLs to doi fields first")
	crosslinkCmd.Flags().BoolVar(&crosslinkNoPersist, "no-persist", false, "Do not write Extracted-DOIs fields")
}

var crosslinkCmd = &cobra.Command{
	Use:   "crosslink <bibfile>",
	Short: "Extract cited DOIs and link them against the bibliography",
	Long: `Extract the DOIs each entry cites and, for every DOI that matches another
entry of the bibliography, append that entry's citekey to the Cites field.

Candidate DOIs come from the Extracted-DOIs field when present, otherwise
from the entry's attached PDF files via the external pdf-extract tool.
Candidates that match no local entry are reported, not dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrosslink,
}

func runCrosslink(cmd *cobra.Command, args []string) error {
	mode, err := extract.ParseMode(crosslinkMode)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	cfg := loadConfig()
	b := loadBibliography(args[0])

	converted := 0
	if crosslinkConvertURLs {
		converted = bib.ConvertURLsToDOI(b)
	}

	x, closeCache := newExtractor(cfg, crosslinkFormat, crosslinkCache)
	defer closeCache()

	report, err := crosslink.Run(cmd.Context(), b, x, crosslink.Options{
		Mode:        mode,
		PersistDOIs: !crosslinkNoPersist,
	})
	if err != nil {
		if errors.Is(err, pdfextract.ErrToolMissing) {
			exitWithError(ExitConfigError, "%v", err)
		}
		exitWithError(ExitError, "crosslinking: %v", err)
	}

	out := crosslinkOutput
	if out == "" {
		out = args[0]
	}
	writeBibliography(b, out)

	if humanOutput {
		outputHuman("Crosslinked %d entries: added %d new links.\n", report.Entries, report.LinksAdded)
		if converted > 0 {
			outputHuman("Converted %d remote URLs to DOIs.\n", converted)
		}
		if report.Extraction.FilesSkipped > 0 || report.Extraction.FilesUnreadable > 0 {
			outputHuman("Skipped %d files, %d not readable.\n",
				report.Extraction.FilesSkipped, report.Extraction.FilesUnreadable)
		}
		for citekey, dois := range report.Unresolved {
			outputHuman("%s: %d unresolved candidate DOIs\n", citekey, len(dois))
		}
		return nil
	}
	return outputJSON(report)
}
