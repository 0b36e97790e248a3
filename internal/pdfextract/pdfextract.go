// Package pdfextract wraps the external pdf-extract tool (CrossRef's
// reference extractor) and provides page counting and DOI scanning for PDF
// files.
package pdfextract

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/ledongthuc/pdf"
)

const (
	// DefaultTool is the name of the external extraction tool.
	DefaultTool = "pdf-extract"

	// DefaultMaxPages is the page ceiling above which a file is skipped.
	// Reference extraction time grows badly with page count, and long
	// documents (books, theses) are rarely worth it.
	DefaultMaxPages = 42
)

// Extractor invokes the external pdf-extract tool to obtain the DOIs of the
// references resolved inside a PDF.
type Extractor struct {
	Tool     string // tool name or path; DefaultTool if empty
	MaxPages int    // page ceiling; DefaultMaxPages if zero
}

// tool returns the configured tool name.
func (x *Extractor) tool() string {
	if x.Tool != "" {
		return x.Tool
	}
	return DefaultTool
}

// maxPages returns the configured page ceiling.
func (x *Extractor) maxPages() int {
	if x.MaxPages > 0 {
		return x.MaxPages
	}
	return DefaultMaxPages
}

// ExtractRefs extracts the DOIs referenced by the PDF at path.
//
// Error classes: ErrToolMissing if the tool is not installed (fatal to the
// run), a FileError wrapping ErrTooManyPages or ErrCannotOpen for per-file
// conditions the caller should skip and count, a FileError wrapping
// ErrNotReadable when the tool itself fails on the document, and the context
// error if the run was cancelled.
func (x *Extractor) ExtractRefs(ctx context.Context, path string) ([]string, error) {
	toolPath, err := exec.LookPath(x.tool())
	if err != nil {
		return nil, fmt.Errorf("%w (needed to extract citations)", ErrToolMissing)
	}

	numPages, err := CountPages(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: fmt.Errorf("%w: %v", ErrCannotOpen, err)}
	}
	if numPages > x.maxPages() {
		return nil, &FileError{
			Path: path,
			Err:  fmt.Errorf("%w: %d > %d", ErrTooManyPages, numPages, x.maxPages()),
		}
	}

	cmd := exec.CommandContext(ctx, toolPath, "extract", "--resolved_references", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &FileError{Path: path, Err: fmt.Errorf("%w: %v", ErrNotReadable, err)}
	}

	dois, err := parseResolvedDOIs(output)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	if len(dois) == 0 {
		// The tool resolved nothing; fall back to scanning the reference
		// list text for printed DOIs. Best-effort: a scan failure leaves
		// the empty result as-is.
		if scanned, err := ScanDOIs(path, x.maxPages()); err == nil && len(scanned) > 0 {
			return scanned, nil
		}
	}
	return dois, nil
}

// CountPages returns the number of pages of a PDF document.
func CountPages(path string) (int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	return r.NumPage(), nil
}
