package structure

import (
	"fmt"
	"strings"

	"github.com/docstruct/pdfstruct/internal/document"
	"github.com/docstruct/pdfstruct/internal/extract"
)

// ExtractTables normalizes the primary backend's raw table matrices for one
// page into labeled table blocks.
//
// Every cell is normalized (nil becomes "", otherwise whitespace-trimmed),
// rows whose cells are all empty are dropped, and a table with no surviving
// rows is dropped entirely. Surviving tables keep their 1-indexed per-page
// ordinal in the description. All tables on the page are stamped with the
// cursor state at the time of the page's table-extraction step, not per
// table.
func ExtractTables(tables []extract.RawTable, cursor *SectionCursor, pageNum int) []document.Table {
	var blocks []document.Table
	section, subSection := cursor.Current()

	for i, raw := range tables {
		var cleaned [][]string
		for _, row := range raw {
			cells := make([]string, len(row))
			empty := true
			for j, cell := range row {
				if cell != nil {
					cells[j] = strings.TrimSpace(*cell)
				}
				if cells[j] != "" {
					empty = false
				}
			}
			if !empty {
				cleaned = append(cleaned, cells)
			}
		}

		if len(cleaned) == 0 {
			continue
		}

		blocks = append(blocks, document.Table{
			Section:     section,
			SubSection:  subSection,
			Description: fmt.Sprintf("table %d from page %d", i+1, pageNum),
			Data:        cleaned,
		})
	}

	return blocks
}
