package structure

import (
	"fmt"

	"github.com/docstruct/pdfstruct/internal/document"
	"github.com/docstruct/pdfstruct/internal/extract"
)

// ReconcileFallbackTables merges the fallback backend's whole-document table
// results into a primary-assembled document, backfilling tables the primary
// extractor missed without duplicating ones it found.
//
// Fallback tables are aligned to pages by ordinal slot, 0-indexed in
// extraction order within each page. A fallback table is appended only when
// the page holds no primary table at that ordinal; when a primary table
// occupies the slot it stays authoritative and the fallback result is
// discarded without any cell-level merge. Tables reporting an out-of-range
// page number are skipped silently.
//
// Appended tables are stamped with the cursor snapshot recorded for their own
// page, so they carry the labels that were active when that page was
// assembled rather than the last heading seen in the document.
func ReconcileFallbackTables(doc *document.Document, tables []extract.FallbackTable, pageCursors []SectionCursor) {
	ordinals := make(map[int]int)

	for _, fb := range tables {
		ordinal := ordinals[fb.Page]
		ordinals[fb.Page]++

		if fb.Page < 1 || fb.Page > len(doc.Pages) {
			continue
		}
		page := &doc.Pages[fb.Page-1]

		if page.TableCount() > ordinal {
			continue
		}

		data := make([][]string, 0, len(fb.Rows)+1)
		data = append(data, fb.Header)
		data = append(data, fb.Rows...)

		var section, subSection *string
		if fb.Page-1 < len(pageCursors) {
			section, subSection = pageCursors[fb.Page-1].Current()
		}

		page.Content = append(page.Content, document.Table{
			Section:     section,
			SubSection:  subSection,
			Description: fmt.Sprintf("extracted table from page %d", fb.Page),
			Data:        data,
		})
	}
}
