package report

import (
	"strings"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
)

// Clipboard selects the data rows whose status column holds one of the
// configured status values and joins their first fields tab-separated, one
// line per row in sheet order. The carrier field is reduced to the marker
// or the fallback literal. It returns "" when no row matches.
func Clipboard(g *models.Grid, l layout.ClipboardLayout) string {
	var lines []string
	for row := 2; row <= g.MaxRow(); row++ {
		if !hasStatus(g.Value(row, l.StatusColumn), l.StatusValues) {
			continue
		}
		fields := make([]string, l.Fields)
		for col := 1; col <= l.Fields; col++ {
			v := g.Value(row, col)
			if col == l.CarrierColumn {
				fields[col-1] = carrier(v, l)
				continue
			}
			fields[col-1] = models.FormatValue(v)
		}
		lines = append(lines, strings.Join(fields, "\t"))
	}
	return strings.Join(lines, "\n")
}

// hasStatus reports whether v numerically equals one of statuses. A
// boolean counts as 1 or 0; text never matches.
func hasStatus(v interface{}, statuses []float64) bool {
	n, ok := models.NumberValue(v)
	if b, isBool := v.(bool); isBool {
		n, ok = 0, true
		if b {
			n = 1
		}
	}
	if !ok {
		return false
	}
	for _, s := range statuses {
		if n == s {
			return true
		}
	}
	return false
}

func carrier(v interface{}, l layout.ClipboardLayout) string {
	if !models.IsEmpty(v) && strings.Contains(models.FormatValue(v), l.CarrierMarker) {
		return l.CarrierMarker
	}
	return l.CarrierOther
}
