package extract

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// wordSpaceMultiplier of the font size is the horizontal gap that
	// separates two words within a cell.
	wordSpaceMultiplier = 0.35

	// cellGapPoints is the horizontal gap that separates two cells of a
	// table row.
	cellGapPoints = 14.0

	// paragraphGapMultiplier of the typical row gap marks a paragraph
	// boundary; a blank line is inserted into the page text there.
	paragraphGapMultiplier = 1.8

	// columnTolerancePoints is how far a cell's start position may drift
	// from a column boundary and still belong to that column.
	columnTolerancePoints = 6.0
)

// textCell is a horizontal run of characters separated from its neighbors by
// at least cellGapPoints.
type textCell struct {
	x    float64
	text string
}

// textRow is one visual line of a page, already split into cells.
type textRow struct {
	y     float64
	cells []textCell
}

// splitRowCells walks the positioned characters of one row left to right and
// groups them into cells, inserting word spaces on smaller gaps.
func splitRowCells(chars []pdf.Text) []textCell {
	var cells []textCell
	var b strings.Builder
	var start, cursor float64

	flush := func() {
		text := strings.TrimSpace(b.String())
		if text != "" {
			cells = append(cells, textCell{x: start, text: text})
		}
		b.Reset()
	}

	for _, ch := range chars {
		if ch.S == "" {
			continue
		}
		if b.Len() == 0 {
			start = ch.X
		} else {
			gap := ch.X - cursor
			switch {
			case gap > cellGapPoints:
				flush()
				start = ch.X
			case gap > wordSpaceMultiplier*ch.FontSize:
				b.WriteByte(' ')
			}
		}
		b.WriteString(ch.S)
		cursor = ch.X + ch.W
	}
	flush()

	return cells
}

// pageRows converts a page's positioned text into top-to-bottom rows of
// cells. Rows with no visible text are dropped.
func pageRows(page pdf.Page) ([]textRow, error) {
	raw, err := page.GetTextByRow()
	if err != nil {
		return nil, err
	}

	rows := make([]textRow, 0, len(raw))
	for _, r := range raw {
		cells := splitRowCells(r.Content)
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, textRow{y: float64(r.Position), cells: cells})
	}

	// GetTextByRow reports rows keyed by their baseline; order them top of
	// page first (descending Y in PDF coordinates).
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	return rows, nil
}

// line joins a row's cells into one text line.
func (r textRow) line() string {
	parts := make([]string, len(r.cells))
	for i, c := range r.cells {
		parts[i] = c.text
	}
	return strings.Join(parts, " ")
}

// rowsToText assembles the page's raw text, separating rows with newlines
// and inserting a blank line where the vertical gap between rows exceeds the
// typical gap enough to mark a paragraph boundary.
func rowsToText(rows []textRow) string {
	if len(rows) == 0 {
		return ""
	}

	typical := typicalRowGap(rows)

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
			if typical > 0 && rows[i-1].y-row.y > paragraphGapMultiplier*typical {
				b.WriteByte('\n')
			}
		}
		b.WriteString(row.line())
	}
	return b.String()
}

// typicalRowGap returns the median vertical distance between consecutive
// rows, or 0 when there are fewer than two rows.
func typicalRowGap(rows []textRow) float64 {
	var gaps []float64
	for i := 1; i < len(rows); i++ {
		gap := rows[i-1].y - rows[i].y
		if gap > 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return 0
	}
	sort.Float64s(gaps)
	return gaps[len(gaps)/2]
}
