package parser

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstruct/pdfstruct/internal/document"
	"github.com/docstruct/pdfstruct/internal/extract"
)

const testMaxFileSize = 100 * 1024 * 1024

// stubSource yields a fixed set of page extracts and records Close calls.
type stubSource struct {
	pages  []extract.PageExtract
	closed bool
}

func (s *stubSource) PageCount() int { return len(s.pages) }

func (s *stubSource) Page(pageNum int) (extract.PageExtract, error) {
	return s.pages[pageNum-1], nil
}

func (s *stubSource) Close() error {
	s.closed = true
	return nil
}

type stubBackend struct {
	tables []extract.FallbackTable
	err    error
}

func (s *stubBackend) ExtractTables() ([]extract.FallbackTable, error) {
	return s.tables, s.err
}

// stubSession builds a Session wired to fakes, bypassing input validation.
func stubSession(source extract.PageSource, backend extract.TableBackend) *Session {
	return &Session{
		path:        "stub.pdf",
		openSource:  func(string) (extract.PageSource, error) { return source, nil },
		newFallback: func(string) extract.TableBackend { return backend },
	}
}

func TestNewSession_MissingFile(t *testing.T) {
	s, err := NewSession(filepath.Join(t.TempDir(), "absent.pdf"), testMaxFileSize)

	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, IsInputNotFound(err))
	assert.Contains(t, err.Error(), "PDF file not found")
}

func TestNewSession_InvalidPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	s, err := NewSession(path, testMaxFileSize)

	assert.Nil(t, s)
	require.Error(t, err)
	assert.True(t, IsBackendFailure(err))
	assert.False(t, IsInputNotFound(err))
}

func TestNewSession_WrongExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	s, err := NewSession(path, testMaxFileSize)

	assert.Nil(t, s)
	assert.True(t, IsBackendFailure(err))
}

func TestSession_ParseWithStubBackends(t *testing.T) {
	source := &stubSource{pages: []extract.PageExtract{
		{PageNumber: 1, Text: "1. Summary\nAll good."},
		{PageNumber: 2},
	}}
	backend := &stubBackend{tables: []extract.FallbackTable{
		{Page: 2, Header: []string{"Col"}, Rows: [][]string{{"v"}}},
	}}
	s := stubSession(source, backend)

	doc, err := s.Parse(context.Background())

	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.True(t, source.closed, "parse closes the primary source")

	para := doc.Pages[0].Content[0].(document.Paragraph)
	assert.Equal(t, "All good.", para.Text)

	require.Equal(t, 1, doc.Pages[1].TableCount())
	tbl := doc.Pages[1].Content[0].(document.Table)
	assert.Equal(t, [][]string{{"Col"}, {"v"}}, tbl.Data)
}

func TestSession_ParseOpenSourceFailure(t *testing.T) {
	s := &Session{
		path: "stub.pdf",
		openSource: func(string) (extract.PageSource, error) {
			return nil, errors.New("corrupt xref")
		},
		newFallback: func(string) extract.TableBackend { return nil },
	}

	doc, err := s.Parse(context.Background())

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.True(t, IsBackendFailure(err))
	assert.Contains(t, err.Error(), "open primary backend")
}

func TestSession_ParseAssembleFailure(t *testing.T) {
	source := &stubSource{pages: []extract.PageExtract{{PageNumber: 1}}}
	backend := &stubBackend{err: errors.New("fallback broke")}
	s := stubSession(source, backend)

	doc, err := s.Parse(context.Background())

	assert.Nil(t, doc)
	require.Error(t, err)
	assert.True(t, IsBackendFailure(err))
	assert.Contains(t, err.Error(), "assemble document")
	assert.True(t, source.closed)
}

func TestSession_SaveJSON(t *testing.T) {
	s := stubSession(&stubSource{}, nil)
	doc := &document.Document{Pages: []document.Page{
		{PageNumber: 1, Content: []document.ContentBlock{
			document.Paragraph{Text: "hello"},
		}},
	}}
	outPath := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, s.SaveJSON(doc, outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var restored document.Document
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, *doc, restored)
	assert.Contains(t, string(data), "\n  \"pages\"", "output is indented")
}

func TestSession_SaveJSONWriteFailure(t *testing.T) {
	s := stubSession(&stubSource{}, nil)
	outPath := filepath.Join(t.TempDir(), "missing-dir", "out.json")

	err := s.SaveJSON(&document.Document{}, outPath)

	require.Error(t, err)
	assert.True(t, IsSerializationFailure(err))
	assert.Contains(t, err.Error(), "write output")
}

func TestSession_Path(t *testing.T) {
	s := stubSession(&stubSource{}, nil)
	assert.Equal(t, "stub.pdf", s.Path())
}
