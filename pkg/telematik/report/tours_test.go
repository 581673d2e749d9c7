package report

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
)

func agGrid(tours []interface{}, customers []interface{}) *models.Grid {
	rows := [][]interface{}{row(8, map[int]interface{}{1: "Tour", 8: "Kunde"})}
	for i := range tours {
		rows = append(rows, row(8, map[int]interface{}{1: tours[i], 8: customers[i]}))
	}
	return sheet("ag-grid", rows...)
}

func TestAggregateToursFixture(t *testing.T) {
	src := agGrid([]interface{}{"B", "A", "A"}, []interface{}{int64(1), int64(1), nil})

	got := AggregateTours(src, layout.Default().Tours)

	want := []models.TourCount{
		{Tour: "A", Value: "A", Customers: 1},
		{Tour: "B", Value: "B", Customers: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AggregateTours mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateToursDistinctSorted(t *testing.T) {
	tests := []struct {
		name      string
		tours     []interface{}
		customers []interface{}
		want      map[string]int
		order     []string
	}{
		{
			name:      "duplicates and blanks",
			tours:     []interface{}{"T20", nil, "T03", "T20", "", "T10"},
			customers: []interface{}{"K1", "K2", nil, "K4", "K5", ""},
			want:      map[string]int{"T03": 0, "T10": 0, "T20": 2},
			order:     []string{"T03", "T10", "T20"},
		},
		{
			name:      "numeric tours sort as text",
			tours:     []interface{}{int64(9), int64(10), int64(9)},
			customers: []interface{}{int64(1), int64(2), int64(3)},
			want:      map[string]int{"10": 1, "9": 2},
			order:     []string{"10", "9"},
		},
		{
			name:  "no data rows",
			want:  map[string]int{},
			order: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateTours(agGrid(tt.tours, tt.customers), layout.Default().Tours)
			var order []string
			counts := map[string]int{}
			for _, tc := range got {
				order = append(order, tc.Tour)
				counts[tc.Tour] = tc.Customers
			}
			assert.Equal(t, tt.order, order)
			assert.Equal(t, tt.want, counts)
		})
	}
}

func TestTourRegistryEdit(t *testing.T) {
	src := agGrid([]interface{}{"B", "A", "A"}, []interface{}{int64(1), int64(1), nil})
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

	edit, tours, err := TourRegistry(src, layout.Default().Tours, now)
	require.NoError(t, err)
	require.Len(t, tours, 2)

	assert.Equal(t, "touren", edit.Sheet)
	assert.True(t, edit.Create)
	assert.Equal(t, 2, edit.ClearFromRow)

	want := map[models.CellRef]interface{}{
		{Row: 1, Col: 1}: "Tour",
		{Row: 1, Col: 2}: "TG (2026-10-17)",
		{Row: 2, Col: 1}: "A",
		{Row: 2, Col: 2}: 1,
		{Row: 3, Col: 1}: "B",
		{Row: 3, Col: 2}: 1,
	}
	if diff := cmp.Diff(want, edit.Values, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("registry values mismatch (-want +got):\n%s", diff)
	}
}

func TestTourRegistryMissingSource(t *testing.T) {
	edit, tours, err := TourRegistry(nil, layout.Default().Tours, time.Now())
	require.ErrorIs(t, err, ErrSourceSheetMissing)
	assert.Nil(t, tours)

	require.NotNil(t, edit)
	assert.Equal(t, "touren", edit.Sheet)
	assert.True(t, edit.Create)
	assert.Zero(t, edit.ClearFromRow)
	assert.Empty(t, edit.Values)
	assert.Empty(t, edit.Formulas)
}
