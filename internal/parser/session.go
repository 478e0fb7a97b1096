package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/docstruct/pdfstruct/internal/document"
	"github.com/docstruct/pdfstruct/internal/extract"
	"github.com/docstruct/pdfstruct/internal/structure"
)

// SourceOpener opens the primary per-page extraction backend for a file.
type SourceOpener func(path string) (extract.PageSource, error)

// BackendOpener creates the fallback whole-document table backend for a file.
type BackendOpener func(path string) extract.TableBackend

// Session is one parse operation over a single input file. Construction
// validates the input eagerly; Parse runs the pipeline; SaveJSON persists
// the result. A session is single-use and not safe for concurrent use.
type Session struct {
	path        string
	openSource  SourceOpener
	newFallback BackendOpener
}

// Option adjusts session construction.
type Option func(*Session)

// WithSourceOpener substitutes the primary backend, for tests.
func WithSourceOpener(open SourceOpener) Option {
	return func(s *Session) { s.openSource = open }
}

// WithFallbackOpener substitutes the fallback backend, for tests.
func WithFallbackOpener(open BackendOpener) Option {
	return func(s *Session) { s.newFallback = open }
}

// NewSession validates the input path and prepares a parse session. A
// missing file is an InputNotFound error; a file that exists but fails PDF
// validation is a BackendFailure.
func NewSession(path string, maxFileSize int64, opts ...Option) (*Session, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ParseError{
			Kind: KindInputNotFound,
			Op:   "open input",
			Err:  fmt.Errorf("PDF file not found %s: %w", path, err),
		}
	}

	if err := extract.NewValidator(maxFileSize).ValidateFile(path); err != nil {
		return nil, &ParseError{Kind: KindBackendFailure, Op: "validate input", Err: err}
	}

	s := &Session{
		path: path,
		openSource: func(p string) (extract.PageSource, error) {
			return extract.OpenLedongthucSource(p)
		},
		newFallback: func(p string) extract.TableBackend {
			return extract.NewGridTableBackend(p)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the input file path.
func (s *Session) Path() string {
	return s.path
}

// Parse runs the full pipeline: every page through the primary backend in
// order, then the fallback table pass and reconciliation. Any backend
// failure aborts the document.
func (s *Session) Parse(ctx context.Context) (*document.Document, error) {
	source, err := s.openSource(s.path)
	if err != nil {
		return nil, &ParseError{Kind: KindBackendFailure, Op: "open primary backend", Err: err}
	}
	defer source.Close()

	assembler := structure.NewAssembler()
	doc, err := assembler.AssembleDocument(ctx, source, s.newFallback(s.path))
	if err != nil {
		return nil, &ParseError{Kind: KindBackendFailure, Op: "assemble document", Err: err}
	}

	return doc, nil
}

// SaveJSON writes the document's persisted representation to outputPath as
// two-space-indented JSON.
func (s *Session) SaveJSON(doc *document.Document, outputPath string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &ParseError{Kind: KindSerializationFailure, Op: "encode document", Err: err}
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return &ParseError{Kind: KindSerializationFailure, Op: "write output", Err: err}
	}

	return nil
}
