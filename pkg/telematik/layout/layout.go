// Package layout declares the positional column schema of the telematik export.
package layout

import (
	"errors"
	"fmt"
)

// Span is an inclusive range of 1-based columns.
type Span struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

// Contains reports whether col lies inside the span.
func (s Span) Contains(col int) bool {
	return col >= s.First && col <= s.Last
}

// Columns returns the span's columns in ascending order.
func (s Span) Columns() []int {
	if s.Last < s.First {
		return nil
	}
	cols := make([]int, 0, s.Last-s.First+1)
	for c := s.First; c <= s.Last; c++ {
		cols = append(cols, c)
	}
	return cols
}

// Fill assigns a fill color to a header cell.
type Fill struct {
	Column int    `yaml:"column"`
	Color  string `yaml:"color"`
}

// Label writes a literal header text into row 1.
type Label struct {
	Column int    `yaml:"column"`
	Text   string `yaml:"text"`
}

// TourLayout configures the tour registry.
type TourLayout struct {
	SourceSheet    string `yaml:"source_sheet"`
	RegistrySheet  string `yaml:"registry_sheet"`
	TourColumn     int    `yaml:"tour_column"`
	CustomerColumn int    `yaml:"customer_column"`
	TourLabel      string `yaml:"tour_label"`
	// CountLabel is a fmt pattern receiving the current date.
	CountLabel string `yaml:"count_label"`
	DateLayout string `yaml:"date_layout"`
}

// CommentLayout configures row comment collation.
type CommentLayout struct {
	TargetColumn int    `yaml:"target_column"`
	Source       Span   `yaml:"source"`
	Author       string `yaml:"author"`
	Width        uint   `yaml:"width"`
	Height       uint   `yaml:"height"`
}

// QuantityLayout configures menu quantity extraction.
type QuantityLayout struct {
	SourceColumn int      `yaml:"source_column"`
	TargetColumn int      `yaml:"target_column"`
	Label        string   `yaml:"label"`
	Prefixes     []string `yaml:"prefixes"`
}

// FilterLayout configures the worksheet auto-filter.
type FilterLayout struct {
	Column     int      `yaml:"column"`
	LastColumn int      `yaml:"last_column"`
	Values     []string `yaml:"values"`
}

// SummaryLayout configures the summary cells in row 1.
type SummaryLayout struct {
	SubtotalColumn int `yaml:"subtotal_column"`
	// SubtotalFloor is the minimum last row of the SUBTOTAL range.
	SubtotalFloor int     `yaml:"subtotal_floor"`
	Labels        []Label `yaml:"labels"`
	// Formulas maps a column to a formula written verbatim.
	Formulas map[int]string `yaml:"formulas"`
	// FormulaRowBound is the last row the verbatim formulas reference.
	FormulaRowBound int `yaml:"formula_row_bound"`
}

// ClipboardLayout configures the status-flag extract.
type ClipboardLayout struct {
	StatusColumn  int       `yaml:"status_column"`
	StatusValues  []float64 `yaml:"status_values"`
	Fields        int       `yaml:"fields"`
	CarrierColumn int       `yaml:"carrier_column"`
	CarrierMarker string    `yaml:"carrier_marker"`
	CarrierOther  string    `yaml:"carrier_other"`
}

// Layout is the complete column schema. Every component reads its columns
// from here.
type Layout struct {
	Tours     TourLayout      `yaml:"tours"`
	Comments  CommentLayout   `yaml:"comments"`
	Quantity  QuantityLayout  `yaml:"quantity"`
	Filter    FilterLayout    `yaml:"filter"`
	Summary   SummaryLayout   `yaml:"summary"`
	Clipboard ClipboardLayout `yaml:"clipboard"`

	// MarkerColor fills every row of the quantity target column.
	MarkerColor  string          `yaml:"marker_color"`
	HeaderFills  []Fill          `yaml:"header_fills"`
	HeaderLabels []Label         `yaml:"header_labels"`
	ColumnWidths map[int]float64 `yaml:"column_widths"`
	Hidden       Span            `yaml:"hidden"`
	// WholeNumberColumn receives the "0" number format.
	WholeNumberColumn int `yaml:"whole_number_column"`
}

// Default returns the layout of the ag-grid telematik export.
func Default() Layout {
	return Layout{
		Tours: TourLayout{
			SourceSheet:    "ag-grid",
			RegistrySheet:  "touren",
			TourColumn:     1,
			CustomerColumn: 8,
			TourLabel:      "Tour",
			CountLabel:     "TG (%s)",
			DateLayout:     "2006-01-02",
		},
		Comments: CommentLayout{
			TargetColumn: 12,
			Source:       Span{First: 13, Last: 22},
			Author:       "System",
			Width:        200,
			Height:       400,
		},
		Quantity: QuantityLayout{
			SourceColumn: 12,
			TargetColumn: 29,
			Label:        "Menü",
			Prefixes:     []string{"1 4", "2 4", "3 4", "4 4", "5 4", "6 4"},
		},
		Filter: FilterLayout{
			Column:     1,
			LastColumn: 28,
			Values: []string{
				"D009", "D090", "D091", "D092", "D093", "D094", "D096", "D095",
				"D208", "D251", "D270", "D271", "D291", "D292", "SCD12", "SCD13",
			},
		},
		Summary: SummaryLayout{
			SubtotalColumn: 30,
			SubtotalFloor:  2000,
			Labels: []Label{
				{Column: 31, Text: "Adressen"},
				{Column: 33, Text: "Touren"},
			},
			Formulas: map[int]string{
				32: `=SUMPRODUCT(--(FREQUENCY(COLUMN(1:1175),SUBTOTAL(3,INDIRECT("H"&ROW(2:1175)))*MATCH(H2:H1175&"",H2:H1175&"",0))>0))-1`,
				34: `=SUMPRODUCT(--(FREQUENCY(COLUMN(1:1),SUBTOTAL(3,INDIRECT("A"&ROW(2:1175)))*MATCH(A2:A1175&"",A2:A1175&"",0))>0))-1`,
			},
			FormulaRowBound: 1175,
		},
		Clipboard: ClipboardLayout{
			StatusColumn:  6,
			StatusValues:  []float64{1, 2},
			Fields:        11,
			CarrierColumn: 11,
			CarrierMarker: "LHK",
			CarrierOther:  "MS",
		},
		MarkerColor: "87CEFA",
		HeaderFills: []Fill{
			{Column: 30, Color: "87CEFA"},
			{Column: 31, Color: "00FF00"},
			{Column: 32, Color: "00FF00"},
			{Column: 33, Color: "D3D3D3"},
			{Column: 34, Color: "D3D3D3"},
		},
		HeaderLabels: []Label{
			{Column: 9, Text: "Ablage"},
			{Column: 10, Text: "Schlüssel"},
		},
		ColumnWidths: map[int]float64{
			1: 6.5, 2: 25, 3: 20, 4: 6, 5: 10, 6: 8, 7: 15, 8: 15,
			9: 8, 10: 8, 11: 15, 12: 10,
		},
		Hidden:            Span{First: 13, Last: 28},
		WholeNumberColumn: 7,
	}
}

// Validate checks that every configured column is addressable.
func (l Layout) Validate() error {
	var errs []error
	check := func(name string, col int) {
		if col < 1 || col > maxColumns {
			errs = append(errs, fmt.Errorf("%s: column %d out of range", name, col))
		}
	}
	checkSpan := func(name string, s Span) {
		check(name+".first", s.First)
		check(name+".last", s.Last)
		if s.Last < s.First {
			errs = append(errs, fmt.Errorf("%s: last column %d before first %d", name, s.Last, s.First))
		}
	}

	if l.Tours.SourceSheet == "" || l.Tours.RegistrySheet == "" {
		errs = append(errs, errors.New("tours: source_sheet and registry_sheet are required"))
	}
	check("tours.tour_column", l.Tours.TourColumn)
	check("tours.customer_column", l.Tours.CustomerColumn)
	check("comments.target_column", l.Comments.TargetColumn)
	checkSpan("comments.source", l.Comments.Source)
	check("quantity.source_column", l.Quantity.SourceColumn)
	check("quantity.target_column", l.Quantity.TargetColumn)
	check("filter.column", l.Filter.Column)
	check("filter.last_column", l.Filter.LastColumn)
	if l.Filter.Column > l.Filter.LastColumn {
		errs = append(errs, fmt.Errorf("filter: column %d beyond last_column %d", l.Filter.Column, l.Filter.LastColumn))
	}
	check("summary.subtotal_column", l.Summary.SubtotalColumn)
	check("clipboard.status_column", l.Clipboard.StatusColumn)
	check("clipboard.carrier_column", l.Clipboard.CarrierColumn)
	if l.Clipboard.Fields < 1 || l.Clipboard.Fields > maxColumns {
		errs = append(errs, fmt.Errorf("clipboard.fields: %d out of range", l.Clipboard.Fields))
	}
	checkSpan("hidden", l.Hidden)
	for _, f := range l.HeaderFills {
		check("header_fills", f.Column)
	}
	for _, lb := range l.HeaderLabels {
		check("header_labels", lb.Column)
	}
	for _, lb := range l.Summary.Labels {
		check("summary.labels", lb.Column)
	}
	for col := range l.Summary.Formulas {
		check("summary.formulas", col)
	}
	for col := range l.ColumnWidths {
		check("column_widths", col)
	}
	if l.WholeNumberColumn != 0 {
		check("whole_number_column", l.WholeNumberColumn)
	}
	return errors.Join(errs...)
}

// maxColumns is the spreadsheet column limit (XFD).
const maxColumns = 16384
