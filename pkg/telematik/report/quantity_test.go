package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
)

func TestQuantity(t *testing.T) {
	prefixes := layout.Default().Quantity.Prefixes
	tests := []struct {
		name     string
		value    interface{}
		expected int
	}{
		{"two menus", "3 4x Hauptgericht\n2 4x Suppe\nfoo", 5},
		{"no match", "Hauptgericht\nSuppe", 0},
		{"absent", nil, 0},
		{"number", int64(34), 0},
		{"indented lines", "  1 4x Dessert\r\n\t6 4x Salat  ", 7},
		{"prefix must lead", "x 1 4x Dessert", 0},
		{"single line", "4 4", 4},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Quantity(tt.value, prefixes))
		})
	}
}

func TestQuantityMalformedPrefix(t *testing.T) {
	prefixes := []string{"x 4", "", "2 4"}
	assert.Equal(t, 0, Quantity("x 4 Suppe", prefixes))
	assert.Equal(t, 0, Quantity("2 4 Suppe", prefixes), "empty prefix matches first and counts zero")
	assert.Equal(t, 2, Quantity("2 4 Suppe", []string{"x 4", "2 4"}))
}

func TestQuantitiesEdit(t *testing.T) {
	l := layout.Default().Quantity
	g := sheet("Sheet1",
		row(12, map[int]interface{}{1: "Tour"}),
		row(12, map[int]interface{}{12: "3 4x Hauptgericht\n2 4x Suppe\nfoo"}),
		row(12, map[int]interface{}{12: "keine Menüs"}),
		row(12, map[int]interface{}{1: "T1"}),
	)

	edit := Quantities(g, l)

	assert.Equal(t, "Menü", edit.Values[models.CellRef{Row: 1, Col: 29}])
	assert.Equal(t, 5, edit.Values[models.CellRef{Row: 2, Col: 29}])
	for _, r := range []int{3, 4} {
		v, ok := edit.Values[models.CellRef{Row: r, Col: 29}]
		assert.True(t, ok, "row %d should be cleared explicitly", r)
		assert.Nil(t, v)
	}
}
