package main

import (
	"errors"
	"os"

	"github.com/bibweb/citationweb/internal/bib"
	"github.com/bibweb/citationweb/internal/crosslink"
	"github.com/bibweb/citationweb/internal/extract"
	"github.com/bibweb/citationweb/internal/graph"
	"github.com/bibweb/citationweb/internal/pdfextract"
	"github.com/bibweb/citationweb/internal/repair"
	"github.com/spf13/cobra"
)

var (
	runOutput   string
	runGraphOut string
	runMode     string
	runFormat   string
	runCache    string
	runExternal bool
)

func init() {
	rootCmd.AddCommand(runPipelineCmd)
	runPipelineCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Output .bib file (default: rewrite input)")
	runPipelineCmd.Flags().StringVar(&runGraphOut, "graph", "", "Also export the citation graph (Cytoscape JSON) to this file")
	runPipelineCmd.Flags().StringVar(&runMode, "mode", "auto", "Candidate-DOI source: auto, from-field, from-files")
	runPipelineCmd.Flags().StringVar(&runFormat, "format", "", "Attached-file source format: bibdesk, plain (default: from config)")
	runPipelineCmd.Flags().StringVar(&runCache, "cache", "", "Path to a SQLite extraction cache (optional)")
	runPipelineCmd.Flags().BoolVar(&runExternal, "include-external", false, "Include externally referenced DOIs in the graph")
}

var runPipelineCmd = &cobra.Command{
	Use:   "run <bibfile>",
	Short: "Run the full pipeline: crosslink, repair, sort, export",
	Long: `Run every pipeline stage in order: promote doi.org URLs to doi fields,
crosslink entries via their extracted DOIs, remove self-citations, add
missing Cites/Cited-By halves, sort the link fields, and write the result.
The appendix of the input file (e.g. BibDesk @comment sections) is
preserved verbatim.`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

// pipelineReport combines the per-stage reports for one full run.
type pipelineReport struct {
	URLsConverted int               `json:"urls_converted"`
	Crosslink     *crosslink.Report `json:"crosslink"`
	Repair        repair.Report     `json:"repair"`
	GraphNodes    int               `json:"graph_nodes,omitempty"`
	GraphEdges    int               `json:"graph_edges,omitempty"`
	GraphPruned   int               `json:"graph_pruned,omitempty"`
}

func runPipeline(cmd *cobra.Command, args []string) error {
	mode, err := extract.ParseMode(runMode)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	cfg := loadConfig()
	b := loadBibliography(args[0])

	var report pipelineReport
	report.URLsConverted = bib.ConvertURLsToDOI(b)

	x, closeCache := newExtractor(cfg, runFormat, runCache)
	defer closeCache()

	report.Crosslink, err = crosslink.Run(cmd.Context(), b, x, crosslink.Options{
		Mode:        mode,
		PersistDOIs: true,
	})
	if err != nil {
		if errors.Is(err, pdfextract.ErrToolMissing) {
			exitWithError(ExitConfigError, "%v", err)
		}
		exitWithError(ExitError, "crosslinking: %v", err)
	}

	report.Repair = repair.Repair(b)
	repair.SortFields(b)

	out := runOutput
	if out == "" {
		out = args[0]
	}
	writeBibliography(b, out)

	if runGraphOut != "" {
		g, stats, err := graph.Build(b, graph.Options{
			IncludeExternalRefs: runExternal,
			PruneLonely:         true,
		})
		if err != nil {
			exitWithError(ExitError, "building graph: %v", err)
		}
		serialized, err := g.ToCytoscapeJSON()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if err := os.WriteFile(runGraphOut, []byte(serialized+"\n"), 0644); err != nil {
			exitWithError(ExitError, "writing graph: %v", err)
		}
		report.GraphNodes = g.NodeCount()
		report.GraphEdges = g.EdgeCount()
		report.GraphPruned = stats.Pruned
	}

	if humanOutput {
		outputHuman("Converted %d remote URLs to DOIs.\n", report.URLsConverted)
		outputHuman("Added %d new links across %d entries.\n",
			report.Crosslink.LinksAdded, report.Crosslink.Entries)
		outputHuman("Removed %d self-citations; added %d cites / %d cited-by.\n",
			report.Repair.SelfCitesRemoved, report.Repair.CitesAdded, report.Repair.CitedByAdded)
		if runGraphOut != "" {
			outputHuman("Graph: %d nodes, %d edges (%d pruned) -> %s\n",
				report.GraphNodes, report.GraphEdges, report.GraphPruned, runGraphOut)
		}
		return nil
	}
	return outputJSON(report)
}
