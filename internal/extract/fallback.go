package extract

import (
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"
)

// GridTableBackend is the fallback table extractor. It makes a single pass
// over the whole document and recovers tables by fitting each page's text
// rows to a column grid inferred from the page as a whole, which catches
// tables whose rows the faster per-page scan splits inconsistently.
//
// For every detected table it reports the page number, the first grid row as
// the header, and the remaining grid rows as data.
type GridTableBackend struct {
	path string
}

// NewGridTableBackend creates a fallback backend for the PDF at path. The
// document is opened lazily inside ExtractTables so construction never fails.
func NewGridTableBackend(path string) *GridTableBackend {
	return &GridTableBackend{path: path}
}

// ExtractTables runs the whole-document extraction pass. It returns tables
// in page order; any failure to read the document aborts the pass.
func (g *GridTableBackend) ExtractTables() ([]FallbackTable, error) {
	f, r, err := pdf.Open(g.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var tables []FallbackTable

	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		rows, err := pageRows(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: failed to extract text rows: %w", pageNum, err)
		}

		tables = append(tables, pageGridTables(rows, pageNum)...)
	}

	return tables, nil
}

// pageGridTables fits the page's rows against the page-wide column grid and
// groups consecutive fitting rows into tables.
func pageGridTables(rows []textRow, pageNum int) []FallbackTable {
	columns := columnBoundaries(rows)
	if len(columns) < 2 {
		return nil
	}

	var tables []FallbackTable
	var run [][]string

	flush := func() {
		if len(run) >= 2 {
			tables = append(tables, FallbackTable{
				Page:   pageNum,
				Header: run[0],
				Rows:   run[1:],
			})
		}
		run = nil
	}

	for _, row := range rows {
		cells, ok := fitRowToColumns(row, columns)
		if ok {
			run = append(run, cells)
		} else {
			flush()
		}
	}
	flush()

	return tables
}

// columnBoundaries clusters the start positions of all multi-cell rows into
// page-wide column boundaries. Clusters closer than the column tolerance are
// merged.
func columnBoundaries(rows []textRow) []float64 {
	var starts []float64
	for _, row := range rows {
		if len(row.cells) < 2 {
			continue
		}
		for _, cell := range row.cells {
			starts = append(starts, cell.x)
		}
	}
	if len(starts) == 0 {
		return nil
	}
	sort.Float64s(starts)

	var columns []float64
	for _, x := range starts {
		if len(columns) == 0 || x-columns[len(columns)-1] > columnTolerancePoints {
			columns = append(columns, x)
		}
	}
	return columns
}

// fitRowToColumns places a row's cells into the column grid. A row fits when
// it has at least two cells and every cell starts within tolerance of some
// column boundary; cells landing in the same column are joined.
func fitRowToColumns(row textRow, columns []float64) ([]string, bool) {
	if len(row.cells) < 2 {
		return nil, false
	}

	cells := make([]string, len(columns))
	for _, cell := range row.cells {
		idx := -1
		for i, x := range columns {
			if cell.x >= x-columnTolerancePoints && cell.x <= x+columnTolerancePoints {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, false
		}
		if cells[idx] == "" {
			cells[idx] = cell.text
		} else {
			cells[idx] += " " + cell.text
		}
	}
	return cells, true
}
