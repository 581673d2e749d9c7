package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akuvvet/buchhaltung/pkg/telematik/layout"
)

func TestClipboard(t *testing.T) {
	l := layout.Default().Clipboard
	g := sheet("Sheet1",
		row(11, map[int]interface{}{1: "Tour", 6: "Status", 11: "Art"}),
		row(11, map[int]interface{}{1: "T1", 2: "Müller", 6: int64(1), 7: int64(12345), 11: "LHK Kühl"}),
		row(11, map[int]interface{}{1: "T2", 6: int64(3), 11: "LHK"}),
		row(11, map[int]interface{}{1: "T3", 6: 2.0, 11: "Standard"}),
		row(11, map[int]interface{}{1: "T4", 6: "1", 11: "LHK"}),
		row(11, map[int]interface{}{1: "T5", 5: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 6: int64(2)}),
	)

	got := Clipboard(g, l)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "T1\tMüller\t\t\t\t1\t12345\t\t\t\tLHK", lines[0])
	assert.Equal(t, "T3\t\t\t\t\t2.0\t\t\t\t\tMS", lines[1])
	assert.Equal(t, "T5\t\t\t\t2025-01-02 00:00:00\t2\t\t\t\t\tMS", lines[2])
	for _, line := range lines {
		assert.Len(t, strings.Split(line, "\t"), 11)
	}
}

func TestClipboardBooleanStatus(t *testing.T) {
	g := sheet("Sheet1",
		row(11, map[int]interface{}{1: "Tour", 6: "Status"}),
		row(11, map[int]interface{}{1: "T1", 6: true, 11: "LHK"}),
		row(11, map[int]interface{}{1: "T2", 6: false, 11: "LHK"}),
	)

	got := Clipboard(g, layout.Default().Clipboard)

	assert.Equal(t, "T1\t\t\t\t\tTrue\t\t\t\t\tLHK", got)
}

func TestClipboardNoMatch(t *testing.T) {
	g := sheet("Sheet1",
		row(6, map[int]interface{}{1: "Tour"}),
		row(6, map[int]interface{}{1: "T1", 6: int64(0)}),
	)
	assert.Equal(t, "", Clipboard(g, layout.Default().Clipboard))
}
