// Package report builds the edits of the telematik report from loaded grids.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
)

// ErrSourceSheetMissing indicates the tour source sheet is absent.
var ErrSourceSheetMissing = errors.New("tour source sheet missing")

// AggregateTours returns the distinct non-empty tours of the source grid in
// ascending string order, each with the number of rows that also carry a
// customer. Row 1 is the header.
func AggregateTours(src *models.Grid, l layout.TourLayout) []models.TourCount {
	if src == nil {
		return nil
	}
	index := make(map[string]int)
	var tours []models.TourCount
	for row := 2; row <= src.MaxRow(); row++ {
		tourValue := src.Value(row, l.TourColumn)
		if models.IsEmpty(tourValue) {
			continue
		}
		key := models.FormatValue(tourValue)
		i, ok := index[key]
		if !ok {
			i = len(tours)
			index[key] = i
			tours = append(tours, models.TourCount{Tour: key, Value: tourValue})
		}
		if !models.IsEmpty(src.Value(row, l.CustomerColumn)) {
			tours[i].Customers++
		}
	}
	sort.Slice(tours, func(a, b int) bool { return tours[a].Tour < tours[b].Tour })
	return tours
}

// TourRegistry builds the registry sheet edit. The header carries the
// current date; rows below the header are cleared before the tours are
// written. When src is nil it returns ErrSourceSheetMissing together with
// an edit that only creates the registry sheet if it is absent.
func TourRegistry(src *models.Grid, l layout.TourLayout, now time.Time) (*models.SheetEdit, []models.TourCount, error) {
	if src == nil {
		edit := models.NewSheetEdit(l.RegistrySheet)
		edit.Create = true
		return edit, nil, fmt.Errorf("%w: %q", ErrSourceSheetMissing, l.SourceSheet)
	}
	tours := AggregateTours(src, l)

	edit := models.NewSheetEdit(l.RegistrySheet)
	edit.Create = true
	edit.ClearFromRow = 2
	edit.SetValue(1, 1, l.TourLabel)
	edit.SetValue(1, 2, fmt.Sprintf(l.CountLabel, now.Format(l.DateLayout)))
	for i, tour := range tours {
		edit.SetValue(i+2, 1, tour.Value)
		edit.SetValue(i+2, 2, tour.Customers)
	}
	return edit, tours, nil
}
