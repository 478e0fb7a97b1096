package extract

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// LedongthucSource is the primary extraction backend, a per-page source built
// on github.com/ledongthuc/pdf. It assembles raw page text from positioned
// text rows, detects table candidates from runs of aligned multi-cell rows,
// and reports image geometry from the page's XObject resources.
type LedongthucSource struct {
	file   *os.File
	reader *pdf.Reader
}

// OpenLedongthucSource opens the PDF at path with the primary backend.
func OpenLedongthucSource(path string) (*LedongthucSource, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &LedongthucSource{file: f, reader: r}, nil
}

// PageCount returns the number of pages in the document.
func (s *LedongthucSource) PageCount() int {
	return s.reader.NumPage()
}

// Close releases the underlying file handle.
func (s *LedongthucSource) Close() error {
	return s.file.Close()
}

// Page extracts one page's raw text, table candidates, and image descriptors.
func (s *LedongthucSource) Page(pageNum int) (PageExtract, error) {
	result := PageExtract{PageNumber: pageNum}

	if pageNum < 1 || pageNum > s.reader.NumPage() {
		return result, fmt.Errorf("page %d out of range (1-%d)", pageNum, s.reader.NumPage())
	}

	page := s.reader.Page(pageNum)
	if page.V.IsNull() {
		return result, nil
	}

	rows, err := pageRows(page)
	if err != nil {
		return result, fmt.Errorf("failed to extract text rows: %w", err)
	}

	result.Text = rowsToText(rows)
	result.Tables = scanPrimaryTables(rows)
	result.Images = scanPageImages(page)

	return result, nil
}

// scanPrimaryTables finds table candidates in a page's rows: every run of
// two or more consecutive rows that each split into at least two cells is
// reported as one raw table matrix.
func scanPrimaryTables(rows []textRow) []RawTable {
	var tables []RawTable
	var run []textRow

	flush := func() {
		if len(run) >= 2 {
			tables = append(tables, runToRawTable(run))
		}
		run = nil
	}

	for _, row := range rows {
		if len(row.cells) >= 2 {
			run = append(run, row)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// runToRawTable converts a run of multi-cell rows into the nullable cell
// matrix the pipeline consumes. Rows keep their own cell counts; short rows
// are not padded.
func runToRawTable(run []textRow) RawTable {
	table := make(RawTable, len(run))
	for i, row := range run {
		cells := make([]*string, len(row.cells))
		for j := range row.cells {
			text := row.cells[j].text
			cells[j] = &text
		}
		table[i] = cells
	}
	return table
}

// scanPageImages reports descriptors for the image XObjects referenced by the
// page's resources. Only intrinsic dimensions are available from the XObject
// dictionary; placement coordinates are reported as zero.
func scanPageImages(page pdf.Page) []ImageDescriptor {
	var images []ImageDescriptor

	defer func() {
		// Malformed resource dictionaries can panic inside the library;
		// treat the page as having no images.
		_ = recover()
	}()

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return images
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return images
	}

	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}

		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}

		images = append(images, ImageDescriptor{
			Width:  float64(obj.Key("Width").Int64()),
			Height: float64(obj.Key("Height").Int64()),
		})
	}

	return images
}
