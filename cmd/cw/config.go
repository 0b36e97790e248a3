package main

import (
	"github.com/bibweb/citationweb/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	if humanOutput {
		outputHuman("config file:     %s\n", config.GlobalConfigPath())
		outputHuman("min_doi_score:   %g\n", cfg.MinDOIScore)
		outputHuman("require_score:   %t\n", cfg.RequireScore)
		outputHuman("max_pdf_pages:   %d\n", cfg.MaxPDFPages)
		outputHuman("separators:      %v\n", cfg.Separators)
		outputHuman("source_format:   %s\n", cfg.SourceFormat)
		outputHuman("crossref_mailto: %s\n", cfg.CrossrefMailto)
		return nil
	}
	return outputJSON(map[string]interface{}{
		"path":   config.GlobalConfigPath(),
		"config": cfg,
	})
}
