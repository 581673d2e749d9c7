// Package parser loads worksheets into immutable grids.
package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
	"github.com/xuri/excelize/v2"
)

// ReadGrid loads the values and notes of a sheet.
// Text cells become string, numeric cells int64 or float64, boolean cells
// bool and date-formatted numbers time.Time. Formula cells hold their
// formula text with a leading "=".
func ReadGrid(f *excelize.File, sheetName string) (*models.Grid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	dates := newDateStyles(f)
	values := make([][]interface{}, len(rows))
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		cells := make([]interface{}, len(row))
		for colIdx, raw := range row {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			if formula, err := f.GetCellFormula(sheetName, cellName); err == nil && formula != "" {
				cells[colIdx] = "=" + formula
				continue
			}
			if raw == "" {
				continue
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = typedValue(raw, cellType, func() bool {
				return dates.isDate(sheetName, cellName)
			})
		}
		values[rowIdx] = cells
	}

	grid := models.NewGrid(sheetName, values)
	if err := readAnnotations(f, grid); err != nil {
		return nil, err
	}
	return grid, nil
}

// typedValue converts a raw cell string using the stored cell type.
func typedValue(raw string, cellType excelize.CellType, isDate func() bool) interface{} {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeDate:
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t
		}
		return raw
	}
	v := parseValue(raw)
	if n, ok := models.NumberValue(v); ok && isDate() {
		if t, err := excelize.ExcelDateToTime(n, false); err == nil {
			return t
		}
	}
	return v
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// readAnnotations copies the sheet's comments into the grid.
func readAnnotations(f *excelize.File, grid *models.Grid) error {
	comments, err := f.GetComments(grid.Name)
	if err != nil {
		return err
	}
	for _, c := range comments {
		col, row, err := excelize.CellNameToCoordinates(c.Cell)
		if err != nil {
			continue
		}
		text := c.Text
		for _, run := range c.Paragraph {
			text += run.Text
		}
		grid.Annotations[models.CellRef{Row: row, Col: col}] = text
	}
	return nil
}
