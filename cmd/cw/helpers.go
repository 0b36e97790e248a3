package main

import (
	"os"

	"github.com/bibweb/citationweb/internal/bib"
	"github.com/bibweb/citationweb/internal/config"
	"github.com/bibweb/citationweb/internal/extract"
	"github.com/bibweb/citationweb/internal/files"
	"github.com/bibweb/citationweb/internal/pdfextract"
)

// loadConfig loads the global config or exits with a config error. The
// configured list-field separators are applied globally so every parse and
// re-serialization site honors them.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if len(cfg.Separators) > 0 {
		bib.DefaultSeparators = cfg.Separators
	}
	return cfg
}

// loadBibliography parses a .bib file or exits with a data error.
func loadBibliography(path string) *bib.Bibliography {
	b, err := bib.ParseFile(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}
	return b
}

// writeBibliography serializes the bibliography or exits.
func writeBibliography(b *bib.Bibliography, path string) {
	if err := bib.WriteFile(b, path); err != nil {
		exitWithError(ExitError, "%v", err)
	}
}

// newExtractor wires the extraction pipeline from config and flags.
// The cache path may be empty (caching disabled). The returned cleanup
// closes the cache.
func newExtractor(cfg *config.Config, sourceFormat, cachePath string) (*extract.Extractor, func()) {
	if sourceFormat == "" {
		sourceFormat = cfg.SourceFormat
	}
	resolver, err := files.ForFormat(sourceFormat)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	var cache *extract.Cache
	if cachePath != "" {
		cache, err = extract.OpenCache(cachePath)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	x := &extract.Extractor{
		Files: resolver,
		Refs:  &pdfextract.Extractor{Tool: cfg.ExtractTool, MaxPages: cfg.MaxPDFPages},
		Cache: cache,
	}
	return x, func() { _ = cache.Close() }
}

// envOr returns the environment value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
