package report

import "github.com/akuvvet/buchhaltung/pkg/telematik/models"

// sheet builds a grid from rows given 1-based: rows[0] is the header row.
func sheet(name string, rows ...[]interface{}) *models.Grid {
	return models.NewGrid(name, rows)
}

// row returns a row of width n with the given 1-based column values set.
func row(n int, cols map[int]interface{}) []interface{} {
	r := make([]interface{}, n)
	for c, v := range cols {
		r[c-1] = v
	}
	return r
}
