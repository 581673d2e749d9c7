package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// dateStyles caches whether a style id carries a date number format.
type dateStyles struct {
	f     *excelize.File
	cache map[int]bool
}

func newDateStyles(f *excelize.File) *dateStyles {
	return &dateStyles{f: f, cache: make(map[int]bool)}
}

func (d *dateStyles) isDate(sheetName, cellName string) bool {
	styleID, err := d.f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	if v, ok := d.cache[styleID]; ok {
		return v
	}
	v := false
	if style, err := d.f.GetStyle(styleID); err == nil && style != nil {
		v = isDateFormat(style.NumFmt, style.CustomNumFmt)
	}
	d.cache[styleID] = v
	return v
}

// isDateFormat reports whether a built-in id or custom format code renders
// dates or times.
func isDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return isDateFormatCode(*custom)
	}
	switch {
	case numFmt >= 14 && numFmt <= 22:
		return true
	case numFmt >= 45 && numFmt <= 47:
		return true
	}
	return false
}

// isDateFormatCode strips literals, colors and conditions from a format
// code and looks for date or time tokens.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\' || c == '_' || c == '*':
			i++
		default:
			b.WriteByte(c)
		}
	}
	section := strings.SplitN(b.String(), ";", 2)[0]
	return strings.ContainsAny(strings.ToLower(section), "dmyhs")
}
