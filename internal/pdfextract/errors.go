package pdfextract

import (
	"errors"
	"fmt"
)

// Common errors returned when extracting references from PDF files.
var (
	// ErrToolMissing indicates the external pdf-extract tool is not
	// installed. This is an environment error and aborts the run.
	ErrToolMissing = errors.New("pdf-extract not found on PATH")

	// ErrTooManyPages indicates the file exceeds the configured page
	// ceiling and was skipped.
	ErrTooManyPages = errors.New("too many pages")

	// ErrNotReadable indicates the external tool could not process the
	// file.
	ErrNotReadable = errors.New("pdf not readable")

	// ErrCannotOpen indicates the file could not be opened or parsed as a
	// PDF at all (missing, permissions, truncated). Unlike ErrNotReadable
	// this is not a tool verdict about the document's content.
	ErrCannotOpen = errors.New("cannot open pdf")
)

// FileError wraps a per-file extraction failure with the file's path.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IsTooManyPages reports whether the error is a page-ceiling skip.
func IsTooManyPages(err error) bool {
	return errors.Is(err, ErrTooManyPages)
}

// IsNotReadable reports whether the external tool failed on the file.
func IsNotReadable(err error) bool {
	return errors.Is(err, ErrNotReadable)
}

// IsCannotOpen reports whether the file was unreadable on disk.
func IsCannotOpen(err error) bool {
	return errors.Is(err, ErrCannotOpen)
}
