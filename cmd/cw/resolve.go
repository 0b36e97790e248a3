package main

import (
	"os"
	"strings"

	"github.com/bibweb/citationweb/internal/crossref"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	resolveYear         string
	resolveMinScore     float64
	resolveRequireScore bool
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVar(&resolveYear, "year", "", "Reject results from a different publication year")
	resolveCmd.Flags().Float64Var(&resolveMinScore, "min-score", -1, "Minimum search score (default: from config)")
	resolveCmd.Flags().BoolVar(&resolveRequireScore, "require-score", false, "Fail if the service returns no score")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <citation text...>",
	Short: "Resolve a free-text citation to a DOI via CrossRef",
	Long: `Search the CrossRef API for a free-text citation string and print the best
matching DOI. Results below the configured score, or from the wrong year,
count as not found. Resolution is best-effort and not repeatable.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := loadConfig()

	minScore := cfg.MinDOIScore
	if resolveMinScore >= 0 {
		minScore = resolveMinScore
	}

	opts := []crossref.ClientOption{
		crossref.WithMailto(envOr("CW_CROSSREF_MAILTO", cfg.CrossrefMailto)),
	}
	if baseURL := os.Getenv("CW_CROSSREF_URL"); baseURL != "" {
		opts = append(opts, crossref.WithBaseURL(baseURL))
	}
	client := crossref.NewClient(opts...)

	query := strings.Join(args, " ")
	doi, err := crossref.Resolve(cmd.Context(), client, query, crossref.Options{
		RequireScore: resolveRequireScore || cfg.RequireScore,
		MinScore:     minScore,
		ExpectedYear: resolveYear,
	})
	if err != nil {
		if crossref.IsNetworkError(err) {
			exitWithError(ExitError, "%v", err)
		}
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		if doi == "" {
			outputHuman("No DOI found.\n")
		} else {
			outputHuman("%s\n", doi)
		}
		return nil
	}
	return outputJSON(map[string]interface{}{
		"query": query,
		"doi":   doi,
		"found": doi != "",
	})
}
