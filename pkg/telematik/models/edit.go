package models

// Annotation is a note attached to a cell.
type Annotation struct {
	// Author is the note author shown by spreadsheet applications.
	Author string `json:"author"`
	// Text is the note body.
	Text string `json:"text"`
	// Width is the rendered box width hint.
	Width uint `json:"width,omitempty"`
	// Height is the rendered box height hint.
	Height uint `json:"height,omitempty"`
}

// AutoFilter declares a worksheet auto-filter with an optional value list.
type AutoFilter struct {
	// Range is the filtered range, e.g. "A1:AB120".
	Range string `json:"range"`
	// Column is the 1-based column inside the sheet the value list applies to.
	Column int `json:"column"`
	// Values is the allow-list of shown values.
	Values []string `json:"values,omitempty"`
}

// SheetEdit is the set of changes one or more components produce for a
// sheet. A nil value in Values clears the cell.
type SheetEdit struct {
	// Sheet is the target worksheet name.
	Sheet string `json:"sheet"`
	// Create requests the sheet be created when missing.
	Create bool `json:"create,omitempty"`
	// ClearFromRow removes every row from this index down before writing (0 = keep).
	ClearFromRow int `json:"clear_from_row,omitempty"`
	// Values holds literal cell values.
	Values map[CellRef]interface{} `json:"-"`
	// Formulas holds formula text including the leading "=".
	Formulas map[CellRef]string `json:"-"`
	// Fills maps a cell to an RGB hex fill color.
	Fills map[CellRef]string `json:"-"`
	// NumberFormats maps a cell to a built-in number format id.
	NumberFormats map[CellRef]int `json:"-"`
	// Annotations maps a cell to the note attached to it.
	Annotations map[CellRef]Annotation `json:"-"`
	// ColumnWidths maps a 1-based column to its width.
	ColumnWidths map[int]float64 `json:"column_widths,omitempty"`
	// HiddenColumns lists 1-based columns to hide.
	HiddenColumns []int `json:"hidden_columns,omitempty"`
	// AutoFilter is the auto-filter to declare, if any.
	AutoFilter *AutoFilter `json:"auto_filter,omitempty"`
}

// NewSheetEdit returns an empty edit for sheet.
func NewSheetEdit(sheet string) *SheetEdit {
	return &SheetEdit{
		Sheet:         sheet,
		Values:        make(map[CellRef]interface{}),
		Formulas:      make(map[CellRef]string),
		Fills:         make(map[CellRef]string),
		NumberFormats: make(map[CellRef]int),
		Annotations:   make(map[CellRef]Annotation),
		ColumnWidths:  make(map[int]float64),
	}
}

// SetValue records a literal value and drops any formula queued for the cell.
func (e *SheetEdit) SetValue(row, col int, v interface{}) {
	ref := CellRef{Row: row, Col: col}
	delete(e.Formulas, ref)
	e.Values[ref] = v
}

// SetFormula records a formula and drops any literal value queued for the cell.
func (e *SheetEdit) SetFormula(row, col int, formula string) {
	ref := CellRef{Row: row, Col: col}
	delete(e.Values, ref)
	e.Formulas[ref] = formula
}

// Merge folds other into e. Later writes win.
func (e *SheetEdit) Merge(other *SheetEdit) {
	if other == nil {
		return
	}
	e.Create = e.Create || other.Create
	if other.ClearFromRow > 0 {
		e.ClearFromRow = other.ClearFromRow
	}
	for ref, v := range other.Values {
		e.SetValue(ref.Row, ref.Col, v)
	}
	for ref, f := range other.Formulas {
		e.SetFormula(ref.Row, ref.Col, f)
	}
	for ref, c := range other.Fills {
		e.Fills[ref] = c
	}
	for ref, n := range other.NumberFormats {
		e.NumberFormats[ref] = n
	}
	for ref, a := range other.Annotations {
		e.Annotations[ref] = a
	}
	for col, w := range other.ColumnWidths {
		e.ColumnWidths[col] = w
	}
	e.HiddenColumns = append(e.HiddenColumns, other.HiddenColumns...)
	if other.AutoFilter != nil {
		e.AutoFilter = other.AutoFilter
	}
}
