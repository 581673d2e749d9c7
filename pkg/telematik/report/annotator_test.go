package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
)

func dataGrid(n int) *models.Grid {
	rows := [][]interface{}{row(12, map[int]interface{}{1: "Tour"})}
	for i := 0; i < n; i++ {
		rows = append(rows, row(12, map[int]interface{}{1: "D009", 12: "1 4x Menü"}))
	}
	return sheet("Sheet1", rows...)
}

func TestFills(t *testing.T) {
	edit := Fills(dataGrid(3), layout.Default())

	for r := 1; r <= 4; r++ {
		assert.Equal(t, "87CEFA", edit.Fills[models.CellRef{Row: r, Col: 29}])
	}
	assert.Equal(t, "87CEFA", edit.Fills[models.CellRef{Row: 1, Col: 30}])
	assert.Equal(t, "00FF00", edit.Fills[models.CellRef{Row: 1, Col: 31}])
	assert.Equal(t, "00FF00", edit.Fills[models.CellRef{Row: 1, Col: 32}])
	assert.Equal(t, "D3D3D3", edit.Fills[models.CellRef{Row: 1, Col: 33}])
	assert.Equal(t, "D3D3D3", edit.Fills[models.CellRef{Row: 1, Col: 34}])
	assert.Len(t, edit.Fills, 4+5)
}

func TestAutoFilter(t *testing.T) {
	l := layout.Default().Filter

	edit, res := AutoFilter(dataGrid(4), l)
	require.False(t, res.Skipped)
	require.NotNil(t, edit.AutoFilter)
	assert.Equal(t, "A1:AB5", edit.AutoFilter.Range)
	assert.Equal(t, 1, edit.AutoFilter.Column)
	assert.Equal(t, l.Values, edit.AutoFilter.Values)

	edit, res = AutoFilter(dataGrid(0), l)
	assert.True(t, res.Skipped)
	assert.Equal(t, StepAutoFilter, res.Step)
	assert.Nil(t, edit)
}

func TestSubtotalFormula(t *testing.T) {
	l := layout.Default()
	tests := []struct {
		rows     int
		expected string
	}{
		{0, "=SUBTOTAL(9,AC2:AC2000)"},
		{10, "=SUBTOTAL(9,AC2:AC2000)"},
		{2500, "=SUBTOTAL(9,AC2:AC2501)"},
	}
	for _, tt := range tests {
		got, err := SubtotalFormula(dataGrid(tt.rows), l)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got)
	}
}

func TestSummary(t *testing.T) {
	l := layout.Default()
	edit, res := Summary(dataGrid(2), l)
	require.False(t, res.Skipped)

	assert.Equal(t, "=SUBTOTAL(9,AC2:AC2000)", edit.Formulas[models.CellRef{Row: 1, Col: 30}])
	assert.Equal(t, "Adressen", edit.Values[models.CellRef{Row: 1, Col: 31}])
	assert.Equal(t,
		`=SUMPRODUCT(--(FREQUENCY(COLUMN(1:1175),SUBTOTAL(3,INDIRECT("H"&ROW(2:1175)))*MATCH(H2:H1175&"",H2:H1175&"",0))>0))-1`,
		edit.Formulas[models.CellRef{Row: 1, Col: 32}])
	assert.Equal(t, "Touren", edit.Values[models.CellRef{Row: 1, Col: 33}])
	assert.Equal(t,
		`=SUMPRODUCT(--(FREQUENCY(COLUMN(1:1),SUBTOTAL(3,INDIRECT("A"&ROW(2:1175)))*MATCH(A2:A1175&"",A2:A1175&"",0))>0))-1`,
		edit.Formulas[models.CellRef{Row: 1, Col: 34}])
}

func TestFormulaBoundExceeded(t *testing.T) {
	l := layout.Default().Summary
	assert.False(t, FormulaBoundExceeded(dataGrid(1174), l))
	assert.True(t, FormulaBoundExceeded(dataGrid(1175), l))
}

func TestColumns(t *testing.T) {
	edit := Columns(dataGrid(2), layout.Default())

	assert.Equal(t, "Ablage", edit.Values[models.CellRef{Row: 1, Col: 9}])
	assert.Equal(t, "Schlüssel", edit.Values[models.CellRef{Row: 1, Col: 10}])
	assert.Equal(t, 6.5, edit.ColumnWidths[1])
	assert.Equal(t, 25.0, edit.ColumnWidths[2])
	assert.Equal(t, 8.0, edit.ColumnWidths[10])
	assert.Equal(t, 10.0, edit.ColumnWidths[12])
	assert.Len(t, edit.NumberFormats, 3)
	assert.Equal(t, 1, edit.NumberFormats[models.CellRef{Row: 3, Col: 7}])
	require.Len(t, edit.HiddenColumns, 16)
	assert.Equal(t, 13, edit.HiddenColumns[0])
	assert.Equal(t, 28, edit.HiddenColumns[15])
}

func TestAnnotateSkipsFilterOnHeaderOnlySheet(t *testing.T) {
	edit, steps := Annotate(dataGrid(0), layout.Default())

	require.Len(t, steps, 2)
	assert.True(t, steps[0].Skipped)
	assert.False(t, steps[1].Skipped)
	assert.Nil(t, edit.AutoFilter)
	assert.Equal(t, "=SUBTOTAL(9,AC2:AC2000)", edit.Formulas[models.CellRef{Row: 1, Col: 30}])
}
