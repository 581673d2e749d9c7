package report

import (
	"fmt"
	"strings"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
	"github.com/xuri/excelize/v2"
)

// RowComment collates the non-empty source cells of one row into
// "<column><row>: <value>" lines in ascending column order. It returns ""
// when every source cell is empty.
func RowComment(g *models.Grid, row int, source layout.Span) string {
	var b strings.Builder
	for _, col := range source.Columns() {
		v := g.Value(row, col)
		if models.IsEmpty(v) {
			continue
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s%d: %s\n", name, row, models.FormatValue(v))
	}
	return strings.TrimSpace(b.String())
}

// Comments attaches the collated detail of every data row as a note on the
// row's target cell. Cell values are left untouched.
func Comments(g *models.Grid, l layout.CommentLayout) *models.SheetEdit {
	edit := models.NewSheetEdit(g.Name)
	for row := 2; row <= g.MaxRow(); row++ {
		text := RowComment(g, row, l.Source)
		if text == "" {
			continue
		}
		edit.Annotations[models.CellRef{Row: row, Col: l.TargetColumn}] = models.Annotation{
			Author: l.Author,
			Text:   text,
			Width:  l.Width,
			Height: l.Height,
		}
	}
	return edit
}
