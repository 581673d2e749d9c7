package report

import (
	"strconv"
	"strings"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
	"github.com/akuvvet/buchhaltung/pkg/telematik/models"
)

// lineBreaks splits text on every line boundary a spreadsheet note may carry.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\v", "\n", "\f", "\n",
	"\x1c", "\n", "\x1d", "\n", "\x1e", "\n", "\u0085", "\n", "\u2028", "\n", "\u2029", "\n")

// Quantity sums, over each line of a text value, the leading numeral of the
// first prefix the trimmed line starts with. Non-text values count 0, as do
// lines without a matching prefix and prefixes without a numeric first token.
func Quantity(v interface{}, prefixes []string) int {
	text, ok := v.(string)
	if !ok || text == "" {
		return 0
	}
	total := 0
	for _, line := range strings.Split(lineBreaks.Replace(text), "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range prefixes {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			total += prefixCount(prefix)
			break
		}
	}
	return total
}

// prefixCount returns the integer leading token of a prefix, 0 when the
// token is missing or not numeric.
func prefixCount(prefix string) int {
	fields := strings.Fields(prefix)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}

// Quantities writes the label into the target column header and, for every
// data row, the quantity of the source column. Rows with quantity 0 are
// cleared.
func Quantities(g *models.Grid, l layout.QuantityLayout) *models.SheetEdit {
	edit := models.NewSheetEdit(g.Name)
	edit.SetValue(1, l.TargetColumn, l.Label)
	for row := 2; row <= g.MaxRow(); row++ {
		if n := Quantity(g.Value(row, l.SourceColumn), l.Prefixes); n > 0 {
			edit.SetValue(row, l.TargetColumn, n)
		} else {
			edit.SetValue(row, l.TargetColumn, nil)
		}
	}
	return edit
}
