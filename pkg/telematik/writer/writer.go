// Package writer applies sheet edits to an excelize workbook.
package writer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
	"github.com/xuri/excelize/v2"
)

// Writer applies edits to one open workbook. It is not safe for concurrent use.
type Writer struct {
	f      *excelize.File
	styles *styleCache
}

// New returns a Writer for f.
func New(f *excelize.File) *Writer {
	return &Writer{f: f, styles: newStyleCache(f)}
}

// Apply writes every change of edit except the auto-filter, which callers
// declare separately with AutoFilter so a failure there can be skipped.
func (w *Writer) Apply(edit *models.SheetEdit) error {
	if edit == nil {
		return nil
	}
	sheet := edit.Sheet
	if err := w.ensureSheet(sheet, edit.Create); err != nil {
		return err
	}
	if edit.ClearFromRow > 0 {
		if err := w.clearRows(sheet, edit.ClearFromRow); err != nil {
			return fmt.Errorf("failed to clear rows of %q: %w", sheet, err)
		}
	}

	for _, ref := range sortedRefs(edit.Values) {
		cell, err := cellName(ref)
		if err != nil {
			return err
		}
		if err := w.f.SetCellValue(sheet, cell, edit.Values[ref]); err != nil {
			return fmt.Errorf("failed to set %s!%s: %w", sheet, cell, err)
		}
	}
	for _, ref := range sortedRefs(edit.Formulas) {
		cell, err := cellName(ref)
		if err != nil {
			return err
		}
		// Drop the cached value before storing the formula text.
		if err := w.f.SetCellValue(sheet, cell, nil); err != nil {
			return err
		}
		formula := strings.TrimPrefix(edit.Formulas[ref], "=")
		if err := w.f.SetCellFormula(sheet, cell, formula); err != nil {
			return fmt.Errorf("failed to set formula %s!%s: %w", sheet, cell, err)
		}
	}

	if err := w.applyStyles(edit); err != nil {
		return err
	}
	if err := w.applyAnnotations(edit); err != nil {
		return err
	}
	return w.applyColumns(edit)
}

// AutoFilter declares af on sheet. Only the range is stored; the value list
// is written into the saved package by PatchFilters.
func (w *Writer) AutoFilter(sheet string, af *models.AutoFilter) error {
	if af == nil {
		return nil
	}
	return w.f.AutoFilter(sheet, af.Range, nil)
}

func (w *Writer) ensureSheet(sheet string, create bool) error {
	idx, err := w.f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx != -1 {
		return nil
	}
	if !create {
		return fmt.Errorf("sheet %q does not exist", sheet)
	}
	if _, err := w.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}
	return nil
}

// clearRows deletes rows from the last occupied row up to from.
func (w *Writer) clearRows(sheet string, from int) error {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return err
	}
	for row := len(rows); row >= from; row-- {
		if err := w.f.RemoveRow(sheet, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) applyStyles(edit *models.SheetEdit) error {
	refs := make(map[models.CellRef]struct{}, len(edit.Fills)+len(edit.NumberFormats))
	for ref := range edit.Fills {
		refs[ref] = struct{}{}
	}
	for ref := range edit.NumberFormats {
		refs[ref] = struct{}{}
	}
	for _, ref := range sortedRefs(refs) {
		cell, err := cellName(ref)
		if err != nil {
			return err
		}
		base, err := w.f.GetCellStyle(edit.Sheet, cell)
		if err != nil {
			return err
		}
		numFmt, hasNumFmt := edit.NumberFormats[ref]
		if !hasNumFmt {
			numFmt = -1
		}
		id, err := w.styles.derive(base, edit.Fills[ref], numFmt)
		if err != nil {
			return fmt.Errorf("failed to derive style for %s!%s: %w", edit.Sheet, cell, err)
		}
		if id == base {
			continue
		}
		if err := w.f.SetCellStyle(edit.Sheet, cell, cell, id); err != nil {
			return err
		}
	}
	return nil
}

// applyAnnotations replaces the note of every annotated cell. Only cells
// that already carry a note are deleted first; DeleteComment scans every
// note of the sheet.
func (w *Writer) applyAnnotations(edit *models.SheetEdit) error {
	if len(edit.Annotations) == 0 {
		return nil
	}
	existing, err := w.f.GetComments(edit.Sheet)
	if err != nil {
		return fmt.Errorf("failed to read notes of %q: %w", edit.Sheet, err)
	}
	noted := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		noted[c.Cell] = struct{}{}
	}

	for _, ref := range sortedRefs(edit.Annotations) {
		cell, err := cellName(ref)
		if err != nil {
			return err
		}
		note := edit.Annotations[ref]
		if _, ok := noted[cell]; ok {
			if err := w.f.DeleteComment(edit.Sheet, cell); err != nil {
				return fmt.Errorf("failed to delete note %s!%s: %w", edit.Sheet, cell, err)
			}
		}
		err = w.f.AddComment(edit.Sheet, excelize.Comment{
			Cell:   cell,
			Author: note.Author,
			Text:   note.Text,
			Width:  note.Width,
			Height: note.Height,
		})
		if err != nil {
			return fmt.Errorf("failed to add note %s!%s: %w", edit.Sheet, cell, err)
		}
	}
	return nil
}

func (w *Writer) applyColumns(edit *models.SheetEdit) error {
	cols := make([]int, 0, len(edit.ColumnWidths))
	for col := range edit.ColumnWidths {
		cols = append(cols, col)
	}
	sort.Ints(cols)
	for _, col := range cols {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(edit.Sheet, name, name, edit.ColumnWidths[col]); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", name, err)
		}
	}
	for _, col := range edit.HiddenColumns {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.f.SetColVisible(edit.Sheet, name, false); err != nil {
			return fmt.Errorf("failed to hide column %s: %w", name, err)
		}
	}
	return nil
}

func cellName(ref models.CellRef) (string, error) {
	return excelize.CoordinatesToCellName(ref.Col, ref.Row)
}

// sortedRefs returns the keys of m in row-major order.
func sortedRefs[V any](m map[models.CellRef]V) []models.CellRef {
	refs := make([]models.CellRef, 0, len(m))
	for ref := range m {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Row != refs[j].Row {
			return refs[i].Row < refs[j].Row
		}
		return refs[i].Col < refs[j].Col
	})
	return refs
}
