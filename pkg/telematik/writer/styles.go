package writer

import "github.com/xuri/excelize/v2"

type styleKey struct {
	base   int
	fill   string
	numFmt int
}

// styleCache derives styles from a cell's existing style so repeated
// fill/format combinations share one style id.
type styleCache struct {
	f   *excelize.File
	ids map[styleKey]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: make(map[styleKey]int)}
}

// derive returns the id of base overlaid with fill (empty = keep) and the
// built-in number format numFmt (negative = keep).
func (c *styleCache) derive(base int, fill string, numFmt int) (int, error) {
	if fill == "" && numFmt < 0 {
		return base, nil
	}
	key := styleKey{base: base, fill: fill, numFmt: numFmt}
	if id, ok := c.ids[key]; ok {
		return id, nil
	}
	style, err := c.f.GetStyle(base)
	if err != nil {
		return 0, err
	}
	if fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1}
	}
	if numFmt >= 0 {
		style.NumFmt = numFmt
		style.CustomNumFmt = nil
		style.DecimalPlaces = nil
	}
	id, err := c.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	c.ids[key] = id
	return id, nil
}
