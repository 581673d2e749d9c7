package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
	"github.com/xuri/excelize/v2"
)

// Step names reported in models.StepResult.
const (
	StepTourRegistry = "tour_registry"
	StepAutoFilter   = "auto_filter"
	StepSummary      = "summary_formulas"
)

// numFmtWholeNumber is the built-in "0" number format.
const numFmtWholeNumber = 1

// ErrTooFewRows indicates a sheet without data rows.
var ErrTooFewRows = errors.New("sheet has no data rows")

// Fills colors every row of the marker column and the configured header cells.
func Fills(g *models.Grid, l layout.Layout) *models.SheetEdit {
	edit := models.NewSheetEdit(g.Name)
	for row := 1; row <= g.MaxRow(); row++ {
		edit.Fills[models.CellRef{Row: row, Col: l.Quantity.TargetColumn}] = l.MarkerColor
	}
	for _, f := range l.HeaderFills {
		edit.Fills[models.CellRef{Row: 1, Col: f.Column}] = f.Color
	}
	return edit
}

// AutoFilter declares the filter over columns 1..LastColumn of every
// occupied row, restricted to the allow-list on the filter column.
func AutoFilter(g *models.Grid, l layout.FilterLayout) (*models.SheetEdit, models.StepResult) {
	if g.MaxRow() < 2 {
		return nil, models.Skipped(StepAutoFilter, ErrTooFewRows)
	}
	last, err := excelize.CoordinatesToCellName(l.LastColumn, g.MaxRow())
	if err != nil {
		return nil, models.Skipped(StepAutoFilter, err)
	}
	edit := models.NewSheetEdit(g.Name)
	edit.AutoFilter = &models.AutoFilter{
		Range:  "A1:" + last,
		Column: l.Column,
		Values: append([]string(nil), l.Values...),
	}
	return edit, models.Applied(StepAutoFilter)
}

// SubtotalFormula sums the marker column from row 2 to the larger of the
// sheet's extent and the configured floor.
func SubtotalFormula(g *models.Grid, l layout.Layout) (string, error) {
	col, err := excelize.ColumnNumberToName(l.Quantity.TargetColumn)
	if err != nil {
		return "", err
	}
	end := max(g.MaxRow(), 2, l.Summary.SubtotalFloor)
	return fmt.Sprintf("=SUBTOTAL(9,%s2:%s%d)", col, col, end), nil
}

// Summary writes the row-1 summary cells: the SUBTOTAL over the marker
// column, the descriptive labels and the verbatim distinct-count formulas.
// No formula is evaluated.
func Summary(g *models.Grid, l layout.Layout) (*models.SheetEdit, models.StepResult) {
	subtotal, err := SubtotalFormula(g, l)
	if err != nil {
		return nil, models.Skipped(StepSummary, err)
	}
	edit := models.NewSheetEdit(g.Name)
	edit.SetFormula(1, l.Summary.SubtotalColumn, subtotal)
	for _, lb := range l.Summary.Labels {
		edit.SetValue(1, lb.Column, lb.Text)
	}
	for col, formula := range l.Summary.Formulas {
		if !strings.HasPrefix(formula, "=") {
			formula = "=" + formula
		}
		edit.SetFormula(1, col, formula)
	}
	return edit, models.Applied(StepSummary)
}

// FormulaBoundExceeded reports whether data rows lie beyond the fixed row
// bound referenced by the verbatim distinct-count formulas.
func FormulaBoundExceeded(g *models.Grid, l layout.SummaryLayout) bool {
	return l.FormulaRowBound > 0 && len(l.Formulas) > 0 && g.MaxRow() > l.FormulaRowBound
}

// Columns writes the header labels, the column widths, the whole-number
// format and hides the detail span.
func Columns(g *models.Grid, l layout.Layout) *models.SheetEdit {
	edit := models.NewSheetEdit(g.Name)
	for _, lb := range l.HeaderLabels {
		edit.SetValue(1, lb.Column, lb.Text)
	}
	for col, w := range l.ColumnWidths {
		edit.ColumnWidths[col] = w
	}
	if l.WholeNumberColumn > 0 {
		for row := 1; row <= g.MaxRow(); row++ {
			edit.NumberFormats[models.CellRef{Row: row, Col: l.WholeNumberColumn}] = numFmtWholeNumber
		}
	}
	edit.HiddenColumns = l.Hidden.Columns()
	return edit
}

// Annotate builds the formatting, header, filter and summary edit of the
// working sheet. Skipped steps are reported and leave no trace in the edit.
func Annotate(g *models.Grid, l layout.Layout) (*models.SheetEdit, []models.StepResult) {
	edit := Fills(g, l)

	var steps []models.StepResult
	filter, res := AutoFilter(g, l.Filter)
	edit.Merge(filter)
	steps = append(steps, res)

	summary, res := Summary(g, l)
	edit.Merge(summary)
	steps = append(steps, res)

	edit.Merge(Columns(g, l))
	return edit, steps
}
