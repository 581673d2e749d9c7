package models

// Grid is an immutable snapshot of one worksheet.
type Grid struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// Rows holds cell values row by row; Rows[0] is row 1.
	Rows [][]interface{} `json:"rows"`
	// Annotations maps a cell to its note text, kept beside the values.
	Annotations map[CellRef]string `json:"annotations,omitempty"`
}

// NewGrid builds a grid from 0-based row slices.
func NewGrid(name string, rows [][]interface{}) *Grid {
	return &Grid{Name: name, Rows: rows, Annotations: make(map[CellRef]string)}
}

// MaxRow returns the last occupied row index (1-based), 0 for an empty grid.
func (g *Grid) MaxRow() int {
	if g == nil {
		return 0
	}
	return len(g.Rows)
}

// MaxCol returns the widest occupied column index (1-based).
func (g *Grid) MaxCol() int {
	if g == nil {
		return 0
	}
	maxCol := 0
	for _, row := range g.Rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}
	return maxCol
}

// Value returns the value at row, col (1-based) or nil when out of range.
func (g *Grid) Value(row, col int) interface{} {
	if g == nil || row < 1 || col < 1 || row > len(g.Rows) {
		return nil
	}
	r := g.Rows[row-1]
	if col > len(r) {
		return nil
	}
	return r[col-1]
}

// Annotation returns the note attached to a cell.
func (g *Grid) Annotation(row, col int) (string, bool) {
	if g == nil {
		return "", false
	}
	text, ok := g.Annotations[CellRef{Row: row, Col: col}]
	return text, ok
}

// Apply returns a new grid with the values and annotations of edit laid
// over g. Formulas are not evaluated; formula cells keep their literal text.
func (g *Grid) Apply(edit *SheetEdit) *Grid {
	out := &Grid{Name: g.Name, Annotations: make(map[CellRef]string, len(g.Annotations))}
	rows := make([][]interface{}, len(g.Rows))
	for i, row := range g.Rows {
		rows[i] = append([]interface{}(nil), row...)
	}
	for ref, text := range g.Annotations {
		out.Annotations[ref] = text
	}
	if edit == nil {
		out.Rows = rows
		return out
	}

	if edit.ClearFromRow > 0 && edit.ClearFromRow <= len(rows) {
		rows = rows[:edit.ClearFromRow-1]
		for ref := range out.Annotations {
			if ref.Row >= edit.ClearFromRow {
				delete(out.Annotations, ref)
			}
		}
	}

	set := func(ref CellRef, v interface{}) {
		for len(rows) < ref.Row {
			rows = append(rows, nil)
		}
		row := rows[ref.Row-1]
		for len(row) < ref.Col {
			row = append(row, nil)
		}
		row[ref.Col-1] = v
		rows[ref.Row-1] = row
	}
	for ref, v := range edit.Values {
		set(ref, v)
	}
	for ref, formula := range edit.Formulas {
		set(ref, formula)
	}
	for ref, note := range edit.Annotations {
		out.Annotations[ref] = note.Text
	}

	out.Rows = trimRows(rows)
	return out
}

// trimRows drops trailing empty cells and rows so MaxRow matches a reload.
func trimRows(rows [][]interface{}) [][]interface{} {
	for i, row := range rows {
		end := len(row)
		for end > 0 && IsEmpty(row[end-1]) {
			end--
		}
		rows[i] = row[:end]
	}
	end := len(rows)
	for end > 0 && len(rows[end-1]) == 0 {
		end--
	}
	return rows[:end]
}
