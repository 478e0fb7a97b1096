package structure

import (
	"context"
	"fmt"

	"github.com/docstruct/pdfstruct/internal/document"
	"github.com/docstruct/pdfstruct/internal/extract"
)

// Assembler drives the structuring pipeline: it walks the primary source's
// pages strictly in order, threading a single section cursor through
// paragraph segmentation, then runs the fallback table reconciliation once
// over the assembled document.
type Assembler struct {
	cursor      SectionCursor
	pageCursors []SectionCursor
}

// NewAssembler creates an assembler with a fresh cursor. An assembler
// processes one document and is not safe for concurrent use.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// AssemblePage builds one page's content from its extraction result:
// paragraphs, then tables, then charts, in that fixed order. Segmentation
// advances the shared cursor, so tables and charts are stamped with whatever
// labels are current after the page's text has been processed.
func (a *Assembler) AssemblePage(pg extract.PageExtract) document.Page {
	page := document.Page{
		PageNumber: pg.PageNumber,
		Content:    []document.ContentBlock{},
	}

	if pg.Text != "" {
		for _, p := range SegmentParagraphs(pg.Text, &a.cursor) {
			page.Content = append(page.Content, p)
		}
	}

	for _, t := range ExtractTables(pg.Tables, &a.cursor, pg.PageNumber) {
		page.Content = append(page.Content, t)
	}

	for _, c := range DetectCharts(pg.Images, &a.cursor, pg.PageNumber) {
		page.Content = append(page.Content, c)
	}

	return page
}

// AssembleDocument processes all pages of the primary source in order, then
// invokes the fallback backend and reconciles its tables into the document.
// Any page or backend failure aborts the whole document; there is no
// partial-document success path.
func (a *Assembler) AssembleDocument(ctx context.Context, source extract.PageSource, fallback extract.TableBackend) (*document.Document, error) {
	doc := &document.Document{}

	for pageNum := 1; pageNum <= source.PageCount(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pg, err := source.Page(pageNum)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNum, err)
		}

		doc.Pages = append(doc.Pages, a.AssemblePage(pg))
		a.pageCursors = append(a.pageCursors, a.cursor.Snapshot())
	}

	if fallback != nil {
		tables, err := fallback.ExtractTables()
		if err != nil {
			return nil, fmt.Errorf("fallback table extraction: %w", err)
		}
		ReconcileFallbackTables(doc, tables, a.pageCursors)
	}

	return doc, nil
}
