package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridRow(y float64, cells ...textCell) textRow {
	return textRow{y: y, cells: cells}
}

func TestColumnBoundaries_ClustersStarts(t *testing.T) {
	rows := []textRow{
		gridRow(700, textCell{x: 72, text: "Name"}, textCell{x: 200, text: "Value"}),
		gridRow(688, textCell{x: 74, text: "alpha"}, textCell{x: 201, text: "1"}),
		gridRow(676, textCell{x: 71, text: "beta"}, textCell{x: 199, text: "2"}),
	}

	columns := columnBoundaries(rows)

	require.Len(t, columns, 2)
	assert.InDelta(t, 71, columns[0], columnTolerancePoints)
	assert.InDelta(t, 199, columns[1], columnTolerancePoints)
}

func TestColumnBoundaries_IgnoresSingleCellRows(t *testing.T) {
	rows := []textRow{
		gridRow(700, textCell{x: 72, text: "A heading line"}),
		gridRow(688, textCell{x: 90, text: "Prose."}),
	}

	assert.Empty(t, columnBoundaries(rows))
}

func TestFitRowToColumns(t *testing.T) {
	columns := []float64{72, 200, 350}

	cells, ok := fitRowToColumns(
		gridRow(700, textCell{x: 73, text: "alpha"}, textCell{x: 348, text: "9"}),
		columns,
	)
	require.True(t, ok)
	assert.Equal(t, []string{"alpha", "", "9"}, cells)

	// A cell starting far from every boundary rejects the row.
	_, ok = fitRowToColumns(
		gridRow(688, textCell{x: 72, text: "a"}, textCell{x: 150, text: "b"}),
		columns,
	)
	assert.False(t, ok)

	// Single-cell rows never fit.
	_, ok = fitRowToColumns(gridRow(676, textCell{x: 72, text: "prose"}), columns)
	assert.False(t, ok)
}

func TestFitRowToColumns_JoinsSameColumnCells(t *testing.T) {
	columns := []float64{72, 200}

	cells, ok := fitRowToColumns(
		gridRow(700,
			textCell{x: 72, text: "total"},
			textCell{x: 76, text: "net"},
			textCell{x: 200, text: "14"},
		),
		columns,
	)

	require.True(t, ok)
	assert.Equal(t, []string{"total net", "14"}, cells)
}

func TestPageGridTables_HeaderAndRows(t *testing.T) {
	rows := []textRow{
		gridRow(712, textCell{x: 72, text: "Quarterly results follow."}),
		gridRow(700, textCell{x: 72, text: "Name"}, textCell{x: 200, text: "Value"}),
		gridRow(688, textCell{x: 72, text: "alpha"}, textCell{x: 200, text: "1"}),
		gridRow(676, textCell{x: 72, text: "beta"}, textCell{x: 200, text: "2"}),
		gridRow(664, textCell{x: 72, text: "Closing prose."}),
	}

	tables := pageGridTables(rows, 3)

	require.Len(t, tables, 1)
	assert.Equal(t, 3, tables[0].Page)
	assert.Equal(t, []string{"Name", "Value"}, tables[0].Header)
	assert.Equal(t, [][]string{{"alpha", "1"}, {"beta", "2"}}, tables[0].Rows)
}

func TestPageGridTables_NeedsTwoFittingRows(t *testing.T) {
	rows := []textRow{
		gridRow(700, textCell{x: 72, text: "left"}, textCell{x: 300, text: "right"}),
		gridRow(688, textCell{x: 90, text: "prose"}),
	}

	// One aligned row is a two-column text layout artifact, not a table.
	assert.Empty(t, pageGridTables(rows, 1))
}

func TestPageGridTables_NoColumns(t *testing.T) {
	rows := []textRow{
		gridRow(700, textCell{x: 72, text: "only prose"}),
		gridRow(688, textCell{x: 72, text: "more prose"}),
	}

	assert.Empty(t, pageGridTables(rows, 1))
}

func TestNewGridTableBackend_OpenFailureSurfacesInExtract(t *testing.T) {
	backend := NewGridTableBackend("/does/not/exist.pdf")

	tables, err := backend.ExtractTables()

	assert.Nil(t, tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open PDF")
}
